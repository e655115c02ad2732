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

// Package platformtest provides an in-memory platform.Platform for tests.
package platformtest

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/byteload/metrics-agent/pkg/platform"
	"github.com/shirou/gopsutil/v3/disk"
)

// ErrNotConfigured is returned by Fake methods without a configured func.
var ErrNotConfigured = errors.New("platformtest: query not configured")

// Fake dispatches each query to the matching func field.
// Unset fields fail with ErrNotConfigured.
type Fake struct {
	OSInfoFunc             func(ctx context.Context) (*platform.OSInfo, error)
	CPULoadFunc            func(ctx context.Context) (*platform.CPUSample, error)
	FilesystemSizesFunc    func(ctx context.Context) ([]disk.UsageStat, error)
	MemoryStatsFunc        func(ctx context.Context) (*platform.MemoryStats, error)
	ServicesFunc           func(ctx context.Context, names []string) ([]platform.ServiceState, error)
	ContainerInventoryFunc func(ctx context.Context) ([]platform.ContainerRecord, error)
	ContainersBriefFunc    func(ctx context.Context) ([]platform.ContainerRecord, error)

	calls atomic.Int64
}

var _ platform.Platform = (*Fake)(nil)

// Calls returns how many queries have been made.
func (f *Fake) Calls() int64 {
	return f.calls.Load()
}

func (f *Fake) OSInfo(ctx context.Context) (*platform.OSInfo, error) {
	f.calls.Add(1)
	if f.OSInfoFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.OSInfoFunc(ctx)
}

func (f *Fake) CPULoad(ctx context.Context) (*platform.CPUSample, error) {
	f.calls.Add(1)
	if f.CPULoadFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.CPULoadFunc(ctx)
}

func (f *Fake) FilesystemSizes(ctx context.Context) ([]disk.UsageStat, error) {
	f.calls.Add(1)
	if f.FilesystemSizesFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.FilesystemSizesFunc(ctx)
}

func (f *Fake) MemoryStats(ctx context.Context) (*platform.MemoryStats, error) {
	f.calls.Add(1)
	if f.MemoryStatsFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.MemoryStatsFunc(ctx)
}

func (f *Fake) Services(ctx context.Context, names []string) ([]platform.ServiceState, error) {
	f.calls.Add(1)
	if f.ServicesFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.ServicesFunc(ctx, names)
}

func (f *Fake) ContainerInventory(ctx context.Context) ([]platform.ContainerRecord, error) {
	f.calls.Add(1)
	if f.ContainerInventoryFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.ContainerInventoryFunc(ctx)
}

func (f *Fake) ContainersBrief(ctx context.Context) ([]platform.ContainerRecord, error) {
	f.calls.Add(1)
	if f.ContainersBriefFunc == nil {
		return nil, ErrNotConfigured
	}
	return f.ContainersBriefFunc(ctx)
}

// Block returns a query func that waits for ctx to end and then returns its
// error, simulating a hung source.
func Block[T any]() func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		<-ctx.Done()
		var zero T
		return zero, ctx.Err()
	}
}

// Hang returns a query func that ignores ctx and waits on release.
func Hang[T any](release <-chan struct{}) func(ctx context.Context) (T, error) {
	return func(context.Context) (T, error) {
		<-release
		var zero T
		return zero, errors.New("platformtest: released")
	}
}

// Fail returns a query func that always fails with err.
func Fail[T any](err error) func(ctx context.Context) (T, error) {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}

// Value returns a query func that always succeeds with v.
func Value[T any](v T) func(ctx context.Context) (T, error) {
	return func(context.Context) (T, error) {
		return v, nil
	}
}
