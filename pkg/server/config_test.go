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
	"testing"

	"github.com/byteload/metrics-agent/pkg/defaults"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "", cfg.Address)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, rate.Limit(100), cfg.RateLimit)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Equal(t, defaults.ServerReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, defaults.ServerReadHeaderTimeout, cfg.ReadHeaderTimeout)
	assert.Equal(t, defaults.ServerWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, defaults.ServerIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, defaults.ServerShutdownTimeout, cfg.ShutdownTimeout)
	assert.Nil(t, cfg.Handlers)
}
