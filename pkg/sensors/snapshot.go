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

// Package sensors samples live system metrics into immutable snapshots
// consumed by the face renderer.
package sensors

import (
	"fmt"
	"time"
)

// Snapshot is one immutable sample of system state. Faces read it, never
// mutate it.
type Snapshot struct {
	Timestamp   time.Time
	Hostname    string
	Uptime      time.Duration
	CPUPercent  float64
	MemPercent  float64
	DiskPercent float64
	TempC       float64
	NetRxBps    uint64
	NetTxBps    uint64
}

// FormatRate renders a byte rate as a human-readable string, e.g. "1.2 MB/s".
func FormatRate(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= 1e9:
		return fmt.Sprintf("%.1f GB/s", bytesPerSec/1e9)
	case bytesPerSec >= 1e6:
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/1e6)
	case bytesPerSec >= 1e3:
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/1e3)
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
}

// FormatRateCompact renders a byte rate in the short form used by the
// denser faces, e.g. "1.2M".
func FormatRateCompact(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= 1e9:
		return fmt.Sprintf("%.1fG", bytesPerSec/1e9)
	case bytesPerSec >= 1e6:
		return fmt.Sprintf("%.1fM", bytesPerSec/1e6)
	case bytesPerSec >= 1e3:
		return fmt.Sprintf("%.1fK", bytesPerSec/1e3)
	default:
		return fmt.Sprintf("%.0fB", bytesPerSec)
	}
}

// FormatUptime renders an uptime as "Xd Yh Zm", dropping leading zero units.
func FormatUptime(d time.Duration) string {
	secs := int64(d.Seconds())
	days := secs / 86400
	hours := secs % 86400 / 3600
	mins := secs % 3600 / 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
