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

package os

import (
	"context"

	"github.com/byteload/metrics-agent/pkg/collector/probe"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/platform"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name identifies the probe in logs and metrics.
const Name = "os"

const (
	releaseName     = "NAME"
	releaseVersion  = "VERSION_ID"
	releaseCodename = "VERSION_CODENAME"
)

var titleCaser = cases.Title(language.Und)

// Collector reports operating system identification.
type Collector struct {
	Platform platform.Platform
}

// Collect returns the OS description or a probe failure.
func (c *Collector) Collect(ctx context.Context) (*measurement.OS, error) {
	return probe.Fetch(ctx, Name, c.Platform.OSInfo, Normalize)
}

// Normalize maps raw host and release information to the schema.
func Normalize(raw *platform.OSInfo) (*measurement.OS, error) {
	if raw == nil || raw.Host == nil {
		return nil, probe.Malformed("no host information")
	}

	h := raw.Host
	res := &measurement.OS{
		Platform: h.OS,
		Distro:   raw.Release[releaseName],
		Release:  raw.Release[releaseVersion],
		Codename: raw.Release[releaseCodename],
		Kernel:   h.KernelVersion,
		Arch:     h.KernelArch,
	}

	if res.Distro == "" && h.Platform != "" {
		res.Distro = titleCaser.String(h.Platform)
	}
	if res.Release == "" {
		res.Release = h.PlatformVersion
	}

	return res, nil
}
