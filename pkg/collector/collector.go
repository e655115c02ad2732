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

package collector

import (
	"context"

	"github.com/byteload/metrics-agent/pkg/measurement"
)

// Collector gathers one section of the host snapshot.
type Collector[T any] interface {
	Collect(ctx context.Context) (T, error)
}

// ServiceCollector additionally reports an explicit set of services.
// A nil names slice selects the configured defaults.
type ServiceCollector interface {
	Collector[[]measurement.Service]
	CollectNamed(ctx context.Context, names []string) ([]measurement.Service, error)
}

// ContainerCollector reports the container inventory with usage samples
// from Collect and without them from Brief.
type ContainerCollector interface {
	Collector[[]measurement.Container]
	Brief(ctx context.Context) ([]measurement.Container, error)
}

// Func adapts a plain function to Collector.
type Func[T any] func(ctx context.Context) (T, error)

// Collect calls f.
func (f Func[T]) Collect(ctx context.Context) (T, error) {
	return f(ctx)
}
