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

// renderProfessional draws the composite dashboard: a header bar with
// hostname and time, a grid of gauges, and a network/uptime column.
func renderProfessional(c *Canvas, theme pixel.Palette, snap sensors.Snapshot) {
	fg := pixel.Color(theme, pixel.RoleForeground)
	accent := pixel.Color(theme, pixel.RoleAccent)
	bg := pixel.Color(theme, pixel.RoleBackground)

	headerH := GlyphHeight*2 + 8
	c.FillRect(0, 0, c.W, headerH, accent)
	c.DrawText(6, 4, 2, bg, snap.Hostname)
	clock := snap.Timestamp.Format("15:04")
	c.DrawText(c.W-TextWidth(clock, 2)-6, 4, 2, bg, clock)

	body := c.H - headerH
	gaugeArea := c.W * 2 / 3
	if c.H > c.W {
		gaugeArea = c.W
	}

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

	cellW := gaugeArea / 2
	cellH := body / 2
	radius := cellW / 2
	if cellH/2 < radius {
		radius = cellH / 2
	}
	radius -= 6
	for i, g := range gauges {
		cx := i%2*cellW + cellW/2
		cy := headerH + i/2*cellH + cellH/2
		drawGauge(c, theme, cx, cy, radius, g.pct, g.label, g.value)
	}

	if gaugeArea >= c.W {
		return
	}

	// right-hand column: network rates and uptime
	x := gaugeArea + 8
	y := headerH + 10
	rows := []struct {
		label string
		value string
	}{
		{"NET RX", sensors.FormatRate(float64(snap.NetRxBps))},
		{"NET TX", sensors.FormatRate(float64(snap.NetTxBps))},
		{"UPTIME", sensors.FormatUptime(snap.Uptime)},
	}
	for _, row := range rows {
		c.DrawText(x, y, 1, accent, row.label)
		y += GlyphHeight + 3
		c.DrawText(x, y, 1, fg, row.value)
		y += GlyphHeight + 9
	}
}
