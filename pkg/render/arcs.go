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

// gauge sweep: 270 degrees starting at the lower-left
const (
	gaugeStartDeg = 225
	gaugeSweepDeg = 270
)

// drawGauge draws one circular gauge with the value arc over a dim track,
// the percentage in the middle and a label underneath.
func drawGauge(c *Canvas, theme pixel.Palette, cx, cy, radius int, pct float64, label, value string) {
	track := pixel.Color(theme, pixel.RoleAccent)
	rOut := float64(radius)
	rIn := rOut - float64(radius)/4

	c.DrawArc(cx, cy, rIn, rOut, gaugeStartDeg, gaugeSweepDeg, dim(track))
	c.DrawArc(cx, cy, rIn, rOut, gaugeStartDeg, gaugeSweepDeg*pct/100, levelColor(theme, pct))

	fg := pixel.Color(theme, pixel.RoleForeground)
	c.DrawText(cx-TextWidth(value, 1)/2, cy-GlyphHeight/2, 1, fg, value)
	c.DrawText(cx-TextWidth(label, 1)/2, cy+radius-GlyphHeight, 1, track, label)
}

// dim halves each channel of an RGB565 color.
func dim(c uint16) uint16 {
	r, g, b := pixel.Expand565(c)
	return pixel.ToRGB565(r/2, g/2, b/2)
}

// renderArcs draws a 2x2 grid of gauges for CPU, memory, disk and
// temperature.
func renderArcs(c *Canvas, theme pixel.Palette, snap sensors.Snapshot) {
	gauges := []struct {
		label string
		value string
		pct   float64
	}{
		{"CPU", pctLabel(snap.CPUPercent), snap.CPUPercent},
		{"MEM", pctLabel(snap.MemPercent), snap.MemPercent},
		{"DISK", pctLabel(snap.DiskPercent), snap.DiskPercent},
		{"TEMP", fmt.Sprintf("%.0f°", snap.TempC), clampPct(snap.TempC)},
	}

	cols, rows := 2, 2
	if c.H > c.W {
		// portrait stacks the gauges vertically
		cols, rows = 1, 4
	}
	cellW := c.W / cols
	cellH := c.H / rows
	radius := cellW / 2
	if cellH/2 < radius {
		radius = cellH / 2
	}
	radius -= 8

	for i, g := range gauges {
		cx := i%cols*cellW + cellW/2
		cy := i/cols*cellH + cellH/2
		drawGauge(c, theme, cx, cy, radius, g.pct, g.label, g.value)
	}
}
