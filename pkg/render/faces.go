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

package render

import (
	"fmt"

	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/sensors"
)

// DisplayConfig is the snapshot of display settings one frame reflects.
type DisplayConfig struct {
	Theme       pixel.Palette
	Face        Face
	Orientation Orientation
}

// Render produces a full native-orientation framebuffer for the given
// configuration and metrics snapshot. Faces never fail; out-of-range
// metrics are clamped before use.
func Render(cfg DisplayConfig, snap sensors.Snapshot) []uint16 {
	snap.CPUPercent = clampPct(snap.CPUPercent)
	snap.MemPercent = clampPct(snap.MemPercent)
	snap.DiskPercent = clampPct(snap.DiskPercent)
	if snap.TempC < 0 {
		snap.TempC = 0
	} else if snap.TempC > 150 {
		snap.TempC = 150
	}

	w, h := cfg.Orientation.Dims()
	c := NewCanvas(w, h)
	c.Fill(pixel.Color(cfg.Theme, pixel.RoleBackground))

	switch cfg.Face {
	case FaceArcs:
		renderArcs(c, cfg.Theme, snap)
	case FaceClocks:
		renderClocks(c, cfg.Theme, snap)
	case FaceDigits:
		renderDigits(c, cfg.Theme, snap)
	case FaceProfessional:
		renderProfessional(c, cfg.Theme, snap)
	default:
		renderAscii(c, cfg.Theme, snap)
	}

	return Remap(c, cfg.Orientation)
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// levelColor picks the gauge color for a percentage: accent normally,
// warn above 75, crit above 90.
func levelColor(theme pixel.Palette, pct float64) uint16 {
	switch {
	case pct > 90:
		return pixel.Color(theme, pixel.RoleCrit)
	case pct > 75:
		return pixel.Color(theme, pixel.RoleWarn)
	default:
		return pixel.Color(theme, pixel.RoleAccent)
	}
}

func pctLabel(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}
