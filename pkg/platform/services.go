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

package platform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/shirou/gopsutil/v3/process"
)

const (
	unitSuffix      = ".service"
	unitLoaded      = "loaded"
	unitActive      = "active"
	unitSubRunning  = "running"
	propertyMainPID = "MainPID"
)

// Services reports the state of each named service, in the order given.
// Processes whose executable name equals the service name or starts with it
// are attributed to the service and their CPU and memory usage summed. When
// systemd is reachable over D-Bus, a loaded unit named after the service
// decides whether it is running.
func (h *Host) Services(ctx context.Context, names []string) ([]ServiceState, error) {
	states := make([]ServiceState, len(names))
	for i, n := range names {
		states[i].Name = n
	}
	if len(names) == 0 {
		return states, nil
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		pname, err := p.NameWithContext(ctx)
		if err != nil || pname == "" {
			continue
		}

		for i := range states {
			if !MatchesService(states[i].Name, pname) {
				continue
			}
			addProcess(ctx, &states[i], p)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	applySystemdStates(ctx, states)

	return states, nil
}

// MatchesService reports whether a process name belongs to a service.
// "mysql" matches "mysql" and "mysqld"; "sql" does not match "mysqld".
func MatchesService(service, processName string) bool {
	service = strings.TrimSuffix(service, unitSuffix)
	if service == "" {
		return false
	}
	return processName == service || strings.HasPrefix(processName, service)
}

func addProcess(ctx context.Context, s *ServiceState, p *process.Process) {
	s.Running = true
	s.PIDs = append(s.PIDs, p.Pid)

	if c, err := p.CPUPercentWithContext(ctx); err == nil {
		s.CPUPercent += c
	}
	if m, err := p.MemoryPercentWithContext(ctx); err == nil {
		s.MemPercent += float64(m)
	}
}

// UnitName maps a service name to its systemd unit.
func UnitName(service string) string {
	if strings.HasSuffix(service, unitSuffix) {
		return service
	}
	return service + unitSuffix
}

func applySystemdStates(ctx context.Context, states []ServiceState) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		slog.Debug("systemd unavailable, using process table only", "error", err)
		return
	}
	defer conn.Close()

	units := make([]string, len(states))
	for i := range states {
		units[i] = UnitName(states[i].Name)
	}

	statuses, err := conn.ListUnitsByNamesContext(ctx, units)
	if err != nil {
		slog.Debug("failed to list systemd units", "error", err)
		return
	}

	for _, st := range statuses {
		for i := range states {
			if units[i] != st.Name {
				continue
			}
			if !ApplyUnitStatus(&states[i], st) {
				continue
			}

			prop, err := conn.GetServicePropertyContext(ctx, st.Name, propertyMainPID)
			if err != nil {
				slog.Debug("failed to read main pid", "unit", st.Name, "error", err)
				continue
			}
			if pid, ok := prop.Value.Value().(uint32); ok {
				states[i].MainPID = pid
			}
		}
	}
}

// ApplyUnitStatus records a systemd unit's state on s. Units that are not
// loaded leave s untouched and report false.
func ApplyUnitStatus(s *ServiceState, st dbus.UnitStatus) bool {
	if st.LoadState != unitLoaded {
		return false
	}
	s.Unit = st.Name
	s.Running = st.ActiveState == unitActive && st.SubState == unitSubRunning
	return true
}
