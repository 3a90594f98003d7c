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
	"math"

	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/sensors"
)

// renderClocks draws an analog clock from the snapshot's wall-clock time,
// ringed by a CPU load arc.
func renderClocks(c *Canvas, theme pixel.Palette, snap sensors.Snapshot) {
	fg := pixel.Color(theme, pixel.RoleForeground)
	accent := pixel.Color(theme, pixel.RoleAccent)

	cx, cy := c.W/2, c.H/2
	outer := c.H/2 - 6
	if c.W < c.H {
		outer = c.W/2 - 6
	}

	// outer ring is the CPU gauge
	c.DrawArc(cx, cy, float64(outer-3), float64(outer),
		gaugeStartDeg, gaugeSweepDeg, dim(accent))
	c.DrawArc(cx, cy, float64(outer-3), float64(outer),
		gaugeStartDeg, gaugeSweepDeg*snap.CPUPercent/100, levelColor(theme, snap.CPUPercent))

	dial := outer - 8
	c.DrawCircle(cx, cy, dial, accent)

	// hour ticks
	for i := 0; i < 12; i++ {
		a := float64(i) * 30 * math.Pi / 180
		x0 := cx + int(math.Round(float64(dial-5)*math.Sin(a)))
		y0 := cy - int(math.Round(float64(dial-5)*math.Cos(a)))
		x1 := cx + int(math.Round(float64(dial-1)*math.Sin(a)))
		y1 := cy - int(math.Round(float64(dial-1)*math.Cos(a)))
		c.DrawLine(x0, y0, x1, y1, accent)
	}

	now := snap.Timestamp
	hour := float64(now.Hour()%12) + float64(now.Minute())/60
	minute := float64(now.Minute()) + float64(now.Second())/60
	second := float64(now.Second())

	drawHand(c, cx, cy, hour/12*360, float64(dial)*0.5, fg)
	drawHand(c, cx, cy, minute/60*360, float64(dial)*0.75, fg)
	drawHand(c, cx, cy, second/60*360, float64(dial)*0.85, levelColor(theme, snap.CPUPercent))

	c.FillRect(cx-1, cy-1, 3, 3, fg)

	label := pctLabel(snap.CPUPercent)
	c.DrawText(cx-TextWidth(label, 1)/2, cy+dial/2, 1, accent, label)
}

func drawHand(c *Canvas, cx, cy int, deg, length float64, color uint16) {
	a := deg * math.Pi / 180
	x := cx + int(math.Round(length*math.Sin(a)))
	y := cy - int(math.Round(length*math.Cos(a)))
	c.DrawLine(cx, cy, x, y, color)
}
