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

// renderAscii draws a plain monospace readout of every metric, one line
// per value.
func renderAscii(c *Canvas, theme pixel.Palette, snap sensors.Snapshot) {
	fg := pixel.Color(theme, pixel.RoleForeground)
	accent := pixel.Color(theme, pixel.RoleAccent)

	const margin = 8
	y := margin

	c.DrawText(margin, y, 2, accent, snap.Hostname)
	y += GlyphHeight*2 + 6

	c.DrawText(margin, y, 3, fg, snap.Timestamp.Format("15:04"))
	y += GlyphHeight*3 + 10

	lines := []struct {
		label string
		value string
		pct   float64
	}{
		{"CPU", pctLabel(snap.CPUPercent), snap.CPUPercent},
		{"MEM", pctLabel(snap.MemPercent), snap.MemPercent},
		{"DSK", pctLabel(snap.DiskPercent), snap.DiskPercent},
		{"TMP", fmt.Sprintf("%.0f°C", snap.TempC), snap.TempC},
		{"RX", sensors.FormatRateCompact(float64(snap.NetRxBps)), -1},
		{"TX", sensors.FormatRateCompact(float64(snap.NetTxBps)), -1},
	}

	lineH := GlyphHeight*2 + 4
	for _, ln := range lines {
		if y+lineH > c.H-margin {
			break
		}
		c.DrawText(margin, y, 2, accent, ln.label)
		color := fg
		if ln.pct >= 0 {
			color = levelColor(theme, ln.pct)
		}
		c.DrawText(margin+TextWidth("WWW ", 2), y, 2, color, ln.value)
		y += lineH
	}

	if y+GlyphHeight+2 <= c.H-2 {
		c.DrawText(margin, c.H-margin-GlyphHeight, 1, accent,
			"UP "+sensors.FormatUptime(snap.Uptime))
	}
}
