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

package config

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk form of Config. Keys absent from the file stay
// nil and leave the current value alone.
type fileConfig struct {
	Port              *int      `json:"port" yaml:"port"`
	Address           *string   `json:"address" yaml:"address"`
	Services          *[]string `json:"services" yaml:"services"`
	ProbeTimeout      *duration `json:"probeTimeout" yaml:"probeTimeout"`
	CPUSampleInterval *duration `json:"cpuSampleInterval" yaml:"cpuSampleInterval"`
	IncludeContainers *bool     `json:"includeContainers" yaml:"includeContainers"`
	LogLevel          *string   `json:"logLevel" yaml:"logLevel"`
	RateLimit         *float64  `json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst    *int      `json:"rateLimitBurst" yaml:"rateLimitBurst"`
	ShutdownTimeout   *duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

func (f *fileConfig) apply(c *Config) {
	setIf(&c.Port, f.Port)
	setIf(&c.Address, f.Address)
	if f.Services != nil {
		c.Services = append(make([]string, 0, len(*f.Services)), *f.Services...)
	}
	setDuration(&c.ProbeTimeout, f.ProbeTimeout)
	setDuration(&c.CPUSampleInterval, f.CPUSampleInterval)
	setIf(&c.IncludeContainers, f.IncludeContainers)
	setIf(&c.LogLevel, f.LogLevel)
	setIf(&c.RateLimit, f.RateLimit)
	setIf(&c.RateLimitBurst, f.RateLimitBurst)
	setDuration(&c.ShutdownTimeout, f.ShutdownTimeout)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *duration) {
	if v != nil {
		*dst = time.Duration(*v)
	}
}

// duration is a file value in Go duration syntax ("750ms") or a number of
// seconds, the same forms the environment accepts.
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	return d.parse(strings.Trim(string(b), `"`))
}

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

func (d *duration) parse(v string) error {
	parsed, err := ParseDuration(v)
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}
