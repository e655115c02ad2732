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
	"github.com/byteload/metrics-agent/pkg/collector/container"
	"github.com/byteload/metrics-agent/pkg/collector/cpu"
	"github.com/byteload/metrics-agent/pkg/collector/memory"
	"github.com/byteload/metrics-agent/pkg/collector/os"
	"github.com/byteload/metrics-agent/pkg/collector/service"
	"github.com/byteload/metrics-agent/pkg/collector/storage"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/platform"
)

// DefaultServices are reported when no service list is configured.
var DefaultServices = []string{"nginx", "mysql"}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateOSCollector() Collector[*measurement.OS]
	CreateCPUCollector() Collector[*measurement.CPU]
	CreateStorageCollector() Collector[*measurement.Storage]
	CreateMemoryCollector() Collector[*measurement.Memory]
	CreateServiceCollector() ServiceCollector
	CreateContainerCollector() ContainerCollector
}

// Option is a functional option for configuring DefaultFactory.
type Option func(*DefaultFactory)

// WithPlatform sets the platform every collector queries.
func WithPlatform(p platform.Platform) Option {
	return func(f *DefaultFactory) {
		f.Platform = p
	}
}

// WithServices sets the services reported when a request names none.
func WithServices(services []string) Option {
	return func(f *DefaultFactory) {
		f.Services = services
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Platform platform.Platform
	Services []string
}

var _ Factory = (*DefaultFactory)(nil)

// NewDefaultFactory creates a factory with default settings. Without
// WithPlatform the collectors query the local host.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		Services: DefaultServices,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.Platform == nil {
		f.Platform = platform.NewHost()
	}
	return f
}

// CreateOSCollector creates an OS identification collector.
func (f *DefaultFactory) CreateOSCollector() Collector[*measurement.OS] {
	return &os.Collector{Platform: f.Platform}
}

// CreateCPUCollector creates a CPU load collector.
func (f *DefaultFactory) CreateCPUCollector() Collector[*measurement.CPU] {
	return &cpu.Collector{Platform: f.Platform}
}

// CreateStorageCollector creates a filesystem usage collector.
func (f *DefaultFactory) CreateStorageCollector() Collector[*measurement.Storage] {
	return &storage.Collector{Platform: f.Platform}
}

// CreateMemoryCollector creates a memory usage collector.
func (f *DefaultFactory) CreateMemoryCollector() Collector[*measurement.Memory] {
	return &memory.Collector{Platform: f.Platform}
}

// CreateServiceCollector creates a service state collector.
func (f *DefaultFactory) CreateServiceCollector() ServiceCollector {
	return &service.Collector{
		Platform: f.Platform,
		Defaults: f.Services,
	}
}

// CreateContainerCollector creates a container inventory collector.
func (f *DefaultFactory) CreateContainerCollector() ContainerCollector {
	return &container.Collector{Platform: f.Platform}
}
