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

// digitLayout computes the seven-segment geometry the digits face uses,
// shared with its tests.
func digitLayout(c *Canvas, n int) (digitW, digitH, thick, gap, x0, y0 int) {
	digitH = c.H * 6 / 10
	digitW = digitH / 2
	thick = digitH / 10
	if thick < 3 {
		thick = 3
	}
	gap = digitW / 4
	total := n*digitW + (n-1)*gap
	x0 = (c.W - total) / 2
	y0 = (c.H - digitH) / 2
	return digitW, digitH, thick, gap, x0, y0
}

// renderDigits draws the CPU load as large seven-segment digits.
func renderDigits(c *Canvas, theme pixel.Palette, snap sensors.Snapshot) {
	accent := pixel.Color(theme, pixel.RoleAccent)
	fg := pixel.Color(theme, pixel.RoleForeground)

	value := int(snap.CPUPercent + 0.5)
	if value > 100 {
		value = 100
	}
	text := fmt.Sprintf("%d", value)

	digitW, digitH, thick, gap, x0, y0 := digitLayout(c, len(text))
	for i, ch := range text {
		c.Draw7Seg(x0+i*(digitW+gap), y0, digitW, digitH, thick, int(ch-'0'), fg)
	}

	c.DrawText(x0, y0-GlyphHeight*2-6, 2, accent, "CPU")
	c.DrawText(x0+len(text)*(digitW+gap), y0+digitH-GlyphHeight*2, 2, accent, "%")

	footer := fmt.Sprintf("%s  %.0f°C", snap.Timestamp.Format("15:04"), snap.TempC)
	c.DrawText((c.W-TextWidth(footer, 1))/2, c.H-GlyphHeight-6, 1, accent, footer)
}
