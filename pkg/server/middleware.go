// Copyright (c) 2025, The metrics-agent Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/byteload/metrics-agent/pkg/errors"
	"github.com/google/uuid"
)

const (
	headerRequestID     = "X-Request-Id"
	headerRateLimitCost = "X-RateLimit-Cost"

	// servicesQuery is logged with each request since it changes what a
	// snapshot probes.
	servicesQuery = "services"
)

// withMiddleware applies, outermost first: metrics, API version, request id,
// panic recovery, rate limit and request logging.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	chain := s.loggingMiddleware(handler)
	chain = s.rateLimitMiddleware(chain)
	chain = s.panicRecoveryMiddleware(chain)
	chain = s.requestIDMiddleware(chain)
	chain = s.versionMiddleware(chain)
	return s.metricsMiddleware(chain)
}

func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := negotiateAPIVersion(r)
		SetAPIVersionHeader(w, v)
		next(w, r.WithContext(context.WithValue(r.Context(), contextKeyAPIVersion, v)))
	}
}

// requestIDMiddleware keeps a caller-supplied UUID or assigns a new one.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next(w, r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, id)))
	}
}

// rateLimitMiddleware takes the route's cost in tokens from the shared
// bucket. A full container inventory costs more than a snapshot.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cost := s.routeCost(r.Pattern)
		h := w.Header()
		h.Set(headerRateLimitCost, strconv.Itoa(cost))

		if !s.rateLimiter.AllowN(time.Now(), cost) {
			rateLimitRejects.Inc()
			h.Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
					"cost":  cost,
				})
			return
		}

		h.Set("X-RateLimit-Limit", strconv.Itoa(int(s.config.RateLimit)))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, int(s.rateLimiter.Tokens()))))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))

		next(w, r)
	}
}

// routeCost returns the tokens one request to pattern consumes, at least 1
// and at most the burst so that every route stays reachable.
func (s *Server) routeCost(pattern string) int {
	if pattern == exactRootPattern {
		pattern = rootPattern
	}
	cost, ok := s.config.RouteCost[pattern]
	if !ok || cost < 1 {
		return 1
	}
	if burst := s.rateLimiter.Burst(); burst > 0 && cost > burst {
		return burst
	}
	return cost
}

func (s *Server) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			panicRecoveries.Inc()

			msg := fmt.Sprint(v)
			if err, ok := v.(error); ok {
				msg = err.Error()
			}
			slog.Error("handler panicked",
				"error", msg,
				"requestID", r.Context().Value(contextKeyRequestID),
				"route", routeLabel(r),
				"method", r.Method,
			)
			WriteError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal,
				"Internal server error", true, nil)
		}()
		next(w, r)
	}
}

// loggingMiddleware logs each request with the services it asked for and
// the size of the response. Failed responses are logged at warn.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		attrs := []any{
			"requestID", r.Context().Value(contextKeyRequestID),
			"method", r.Method,
			"route", routeLabel(r),
		}
		if vals, ok := r.URL.Query()[servicesQuery]; ok {
			attrs = append(attrs, "services", vals)
		}

		next(rw, r)

		attrs = append(attrs,
			"status", rw.Status(),
			"bytes", rw.Bytes(),
			"duration", time.Since(start).String(),
		)
		level := slog.LevelDebug
		if rw.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "request completed", attrs...)
	}
}
