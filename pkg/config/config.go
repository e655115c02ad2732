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
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/byteload/metrics-agent/pkg/collector"
	"github.com/byteload/metrics-agent/pkg/defaults"
	"github.com/byteload/metrics-agent/pkg/errors"
	"github.com/byteload/metrics-agent/pkg/serializer"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvConfigFile        = "CONFIG_FILE"
	EnvPort              = "PORT"
	EnvAddress           = "ADDRESS"
	EnvServices          = "SERVICES"
	EnvProbeTimeout      = "PROBE_TIMEOUT"
	EnvCPUSampleInterval = "CPU_SAMPLE_INTERVAL"
	EnvIncludeContainers = "INCLUDE_CONTAINERS"
	EnvLogLevel          = "LOG_LEVEL"
	EnvRateLimit         = "RATE_LIMIT"
	EnvRateLimitBurst    = "RATE_LIMIT_BURST"
	EnvShutdownTimeout   = "SHUTDOWN_TIMEOUT"
)

// DefaultEnvFile is read when present.
const DefaultEnvFile = ".env"

// Config is the agent configuration.
type Config struct {
	Port              int           `json:"port" yaml:"port"`
	Address           string        `json:"address" yaml:"address"`
	Services          []string      `json:"services" yaml:"services"`
	ProbeTimeout      time.Duration `json:"probeTimeout" yaml:"probeTimeout"`
	CPUSampleInterval time.Duration `json:"cpuSampleInterval" yaml:"cpuSampleInterval"`
	IncludeContainers bool          `json:"includeContainers" yaml:"includeContainers"`
	LogLevel          string        `json:"logLevel" yaml:"logLevel"`
	RateLimit         float64       `json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst    int           `json:"rateLimitBurst" yaml:"rateLimitBurst"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:              3000,
		Services:          append([]string(nil), collector.DefaultServices...),
		ProbeTimeout:      defaults.ProbeTimeout,
		CPUSampleInterval: defaults.CPUSampleInterval,
		IncludeContainers: true,
		LogLevel:          "info",
		RateLimit:         100,
		RateLimitBurst:    200,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}
}

// LookupFunc reads one variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type loader struct {
	file     string
	envFiles []string
	lookup   LookupFunc
}

// Option configures Load.
type Option func(*loader)

// WithFile reads the given config file instead of CONFIG_FILE.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = path
	}
}

// WithEnvFiles replaces the default .env file list.
func WithEnvFiles(paths ...string) Option {
	return func(l *loader) {
		l.envFiles = paths
	}
}

// WithLookup replaces os.LookupEnv as the environment source.
func WithLookup(fn LookupFunc) Option {
	return func(l *loader) {
		l.lookup = fn
	}
}

// Load builds the configuration from defaults, the optional config file,
// .env and the environment, then validates it.
func Load(opts ...Option) (*Config, error) {
	l := &loader{
		envFiles: []string{DefaultEnvFile},
		lookup:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}

	dotenv, err := readEnvFiles(l.envFiles)
	if err != nil {
		return nil, err
	}

	// the process environment wins over .env
	lookup := func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg := Default()

	file := l.file
	if file == "" {
		file, _ = lookup(EnvConfigFile)
	}
	if file != "" {
		var fc fileConfig
		if err := serializer.DecodeFileInto(file, &fc); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		fc.apply(cfg)
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readEnvFiles(paths []string) (map[string]string, error) {
	res := make(map[string]string)
	for _, p := range paths {
		m, err := godotenv.Read(p)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read env file %s: %w", p, err)
		}
		for k, v := range m {
			if _, ok := res[k]; !ok {
				res[k] = v
			}
		}
	}
	return res, nil
}

// ApplyEnv overrides fields from the variables lookup knows about.
// Unparsable values are errors rather than silently ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookupNonEmpty(lookup, EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return invalid(EnvPort, v, err)
		}
		c.Port = port
	}

	if v, ok := lookup(EnvAddress); ok {
		c.Address = strings.TrimSpace(v)
	}

	// An empty SERVICES keeps the current list; a config file with
	// "services: []" reports none.
	if v, ok := lookupNonEmpty(lookup, EnvServices); ok {
		c.Services = ParseServices(v)
	}

	if err := durationVar(lookup, EnvProbeTimeout, &c.ProbeTimeout); err != nil {
		return err
	}
	if err := durationVar(lookup, EnvCPUSampleInterval, &c.CPUSampleInterval); err != nil {
		return err
	}
	if err := durationVar(lookup, EnvShutdownTimeout, &c.ShutdownTimeout); err != nil {
		return err
	}

	if v, ok := lookupNonEmpty(lookup, EnvIncludeContainers); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalid(EnvIncludeContainers, v, err)
		}
		c.IncludeContainers = b
	}

	if v, ok := lookupNonEmpty(lookup, EnvLogLevel); ok {
		c.LogLevel = v
	}

	if v, ok := lookupNonEmpty(lookup, EnvRateLimit); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return invalid(EnvRateLimit, v, err)
		}
		c.RateLimit = f
	}

	if v, ok := lookupNonEmpty(lookup, EnvRateLimitBurst); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalid(EnvRateLimitBurst, v, err)
		}
		c.RateLimitBurst = n
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Port < 1 || c.Port > 65535:
		return invalid("port", c.Port, nil)
	case c.ProbeTimeout <= 0:
		return invalid("probeTimeout", c.ProbeTimeout, nil)
	case c.CPUSampleInterval <= 0 || c.CPUSampleInterval >= c.ProbeTimeout:
		return invalid("cpuSampleInterval", c.CPUSampleInterval, fmt.Errorf("must be positive and below probeTimeout %s", c.ProbeTimeout))
	case c.ShutdownTimeout <= 0:
		return invalid("shutdownTimeout", c.ShutdownTimeout, nil)
	case c.RateLimit <= 0:
		return invalid("rateLimit", c.RateLimit, nil)
	case c.RateLimitBurst < 1:
		return invalid("rateLimitBurst", c.RateLimitBurst, nil)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("logLevel", c.LogLevel, nil)
	}

	return nil
}

// ParseServices splits a comma-separated service list. Names are trimmed
// and empty entries dropped; order and duplicates are kept. The result is
// never nil.
func ParseServices(s string) []string {
	res := make([]string, 0)
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			res = append(res, name)
		}
	}
	return res
}

// ParseDuration accepts Go duration syntax or a plain number of seconds.
func ParseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(v)
}

func durationVar(lookup LookupFunc, key string, dst *time.Duration) error {
	v, ok := lookupNonEmpty(lookup, key)
	if !ok {
		return nil
	}
	d, err := ParseDuration(v)
	if err != nil {
		return invalid(key, v, err)
	}
	*dst = d
	return nil
}

func lookupNonEmpty(lookup LookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func invalid(field string, value any, cause error) error {
	msg := fmt.Sprintf("invalid configuration value for %s: %v", field, value)
	ctx := map[string]any{"field": field, "value": value}
	if cause != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, msg, cause, ctx)
	}
	return errors.NewWithContext(errors.ErrCodeInvalidRequest, msg, ctx)
}
