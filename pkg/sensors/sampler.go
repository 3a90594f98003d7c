// HT32 Panel Core
// Copyright (c) 2026 The HT32 Panel Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of HT32 Panel Core.
//
// HT32 Panel Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// HT32 Panel Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with HT32 Panel Core.  If not, see <http://www.gnu.org/licenses/>.

package sensors

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	gopssensors "github.com/shirou/gopsutil/v4/sensors"
)

// temperature sensor keys tried in order of preference
var tempKeys = []string{"coretemp", "k10temp", "zenpower", "cpu_thermal", "acpitz"}

// Sampler collects system metrics via gopsutil. It keeps the previous
// network counters so rates can be derived between calls. Not safe for
// concurrent use; the scheduler is its only caller.
type Sampler struct {
	netInterface string
	diskPath     string
	prevRx       uint64
	prevTx       uint64
	prevAt       time.Time
}

// NewSampler creates a sampler. netInterface may be empty to aggregate all
// interfaces; diskPath defaults to the root filesystem.
func NewSampler(netInterface, diskPath string) *Sampler {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Sampler{
		netInterface: netInterface,
		diskPath:     diskPath,
	}
}

// SetNetInterface switches the monitored network interface. Rate history
// is reset so the next sample reports zero rather than a bogus delta.
func (s *Sampler) SetNetInterface(name string) {
	s.netInterface = name
	s.prevAt = time.Time{}
}

// Sample reads all metrics and returns a snapshot. Individual sensor
// failures are logged and leave that field zeroed; only a total failure
// returns an error.
func (s *Sampler) Sample() (Snapshot, error) {
	now := time.Now()
	snap := Snapshot{Timestamp: now}

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		snap.CPUPercent = pcts[0]
	} else if err != nil {
		log.Debug().Err(err).Msg("cpu sample failed")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemPercent = vm.UsedPercent
	} else {
		log.Debug().Err(err).Msg("memory sample failed")
	}

	if du, err := disk.Usage(s.diskPath); err == nil {
		snap.DiskPercent = du.UsedPercent
	} else {
		log.Debug().Err(err).Msg("disk sample failed")
	}

	snap.TempC = s.cpuTemp()

	if info, err := host.Info(); err == nil {
		snap.Hostname = info.Hostname
		snap.Uptime = time.Duration(info.Uptime) * time.Second
	} else {
		log.Debug().Err(err).Msg("host info failed")
	}

	rx, tx, ok := s.netCounters()
	if ok {
		if !s.prevAt.IsZero() {
			elapsed := now.Sub(s.prevAt).Seconds()
			if elapsed > 0 && rx >= s.prevRx && tx >= s.prevTx {
				snap.NetRxBps = uint64(float64(rx-s.prevRx) / elapsed)
				snap.NetTxBps = uint64(float64(tx-s.prevTx) / elapsed)
			}
		}
		s.prevRx, s.prevTx, s.prevAt = rx, tx, now
	}

	return snap, nil
}

func (s *Sampler) netCounters() (rx, tx uint64, ok bool) {
	counters, err := gopsnet.IOCounters(true)
	if err != nil {
		log.Debug().Err(err).Msg("net sample failed")
		return 0, 0, false
	}
	for i := range counters {
		c := &counters[i]
		if s.netInterface != "" && c.Name != s.netInterface {
			continue
		}
		if s.netInterface == "" && c.Name == "lo" {
			continue
		}
		rx += c.BytesRecv
		tx += c.BytesSent
		ok = true
	}
	return rx, tx, ok
}

func (s *Sampler) cpuTemp() float64 {
	temps, err := gopssensors.SensorsTemperatures()
	if err != nil || len(temps) == 0 {
		return 0
	}
	for _, key := range tempKeys {
		for i := range temps {
			if strings.Contains(temps[i].SensorKey, key) && temps[i].Temperature > 0 {
				return temps[i].Temperature
			}
		}
	}
	// no preferred sensor, take the hottest reading as a fallback
	var maxTemp float64
	for i := range temps {
		if temps[i].Temperature > maxTemp {
			maxTemp = temps[i].Temperature
		}
	}
	return maxTemp
}

// ListInterfaces returns the names of all network interfaces.
func ListInterfaces() ([]string, error) {
	ifaces, err := gopsnet.Interfaces()
	if err != nil {
		return nil, err //nolint:wrapcheck // boundary passthrough
	}
	names := make([]string, 0, len(ifaces))
	for i := range ifaces {
		names = append(names, ifaces[i].Name)
	}
	return names, nil
}
