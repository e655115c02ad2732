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

package probe

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/byteload/metrics-agent/pkg/errors"
)

// Query is a raw platform call.
type Query[R any] func(ctx context.Context) (R, error)

// Normalizer converts a raw platform result into its schema form.
type Normalizer[R, T any] func(raw R) (T, error)

type outcome[T any] struct {
	value T
	err   error
}

// Fetch runs query and then normalize under ctx, on behalf of the named
// probe. On failure it returns the zero T and a structured error.
func Fetch[R, T any](ctx context.Context, name string, query Query[R], normalize Normalizer[R, T]) (T, error) {
	var zero T
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return zero, fail(name, start, err)
	}

	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome[T]{err: fmt.Errorf("panic in %s probe: %v", name, r)}
			}
		}()

		raw, err := query(ctx)
		if err != nil {
			done <- outcome[T]{err: err}
			return
		}

		v, err := normalize(raw)
		if err != nil {
			done <- outcome[T]{err: Malformed("%s", err.Error())}
			return
		}
		done <- outcome[T]{value: v}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return zero, fail(name, start, out.err)
		}
		probeDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		return out.value, nil
	case <-ctx.Done():
		return zero, fail(name, start, ctx.Err())
	}
}

// Malformed reports a raw result that cannot be normalized.
func Malformed(format string, args ...any) error {
	return errors.New(errors.ErrCodeUnavailable, "malformed result: "+fmt.Sprintf(format, args...))
}

func fail(name string, start time.Time, cause error) error {
	code := errors.ErrCodeUnavailable
	msg := fmt.Sprintf("%s probe failed", name)
	if stderrors.Is(cause, context.DeadlineExceeded) {
		code = errors.ErrCodeTimeout
		msg = fmt.Sprintf("%s probe timed out", name)
	}

	elapsed := time.Since(start)
	probeDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	probeFailures.WithLabelValues(name, string(code)).Inc()

	slog.Warn("probe failed",
		"probe", name,
		"code", code,
		"duration", elapsed.String(),
		"error", cause,
	)

	return errors.WrapWithContext(code, msg, cause, map[string]any{"probe": name})
}
