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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Probe timeouts
		{"ProbeTimeout", ProbeTimeout, 1 * time.Second, 30 * time.Second},
		{"CPUSampleInterval", CPUSampleInterval, 100 * time.Millisecond, 5 * time.Second},

		// Handler timeouts
		{"SnapshotHandlerTimeout", SnapshotHandlerTimeout, 10 * time.Second, 60 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerReadHeaderTimeout", ServerReadHeaderTimeout, 1 * time.Second, 15 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 120 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestProbeTimeoutLessThanHandler(t *testing.T) {
	// Per-probe deadlines must fire before the request deadline so that
	// a slow probe only nulls its own field.
	if ProbeTimeout >= SnapshotHandlerTimeout {
		t.Errorf("ProbeTimeout (%v) should be less than SnapshotHandlerTimeout (%v)",
			ProbeTimeout, SnapshotHandlerTimeout)
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	if ServerReadTimeout > ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			ServerReadTimeout, ServerWriteTimeout)
	}
	if ServerReadHeaderTimeout > ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should not exceed ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
	if SnapshotHandlerTimeout >= ServerWriteTimeout {
		t.Errorf("SnapshotHandlerTimeout (%v) should be less than ServerWriteTimeout (%v)",
			SnapshotHandlerTimeout, ServerWriteTimeout)
	}
}

func TestHandlerTimeout(t *testing.T) {
	tests := []struct {
		probe       time.Duration
		wantHandler time.Duration
		wantWrite   time.Duration
	}{
		{ProbeTimeout, SnapshotHandlerTimeout, ServerWriteTimeout},
		{time.Second, SnapshotHandlerTimeout, ServerWriteTimeout},
		{40 * time.Second, 45 * time.Second, 50 * time.Second},
		{2 * time.Minute, 2*time.Minute + 5*time.Second, 2*time.Minute + 10*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.probe.String(), func(t *testing.T) {
			h := HandlerTimeout(tt.probe)
			if h != tt.wantHandler {
				t.Errorf("HandlerTimeout(%v) = %v, want %v", tt.probe, h, tt.wantHandler)
			}
			if h < tt.probe+HandlerTimeoutMargin {
				t.Errorf("HandlerTimeout(%v) = %v leaves less than %v after the probe deadline",
					tt.probe, h, HandlerTimeoutMargin)
			}
			if w := WriteTimeout(tt.probe); w != tt.wantWrite || w <= h {
				t.Errorf("WriteTimeout(%v) = %v, want %v above handler %v", tt.probe, w, tt.wantWrite, h)
			}
		})
	}
}

func TestContainerStatsConcurrency(t *testing.T) {
	if ContainerStatsConcurrency < 1 {
		t.Errorf("ContainerStatsConcurrency must be positive, got %d", ContainerStatsConcurrency)
	}
}
