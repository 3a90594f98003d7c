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

// Package render turns metrics snapshots and display configuration into
// RGB565 framebuffers for the panel.
package render

import "math"

// Canvas is a w×h RGB565 pixel buffer with simple raster primitives.
// All drawing is clipped to the canvas bounds.
type Canvas struct {
	Pix []uint16
	W   int
	H   int
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{W: w, H: h, Pix: make([]uint16, w*h)}
}

func (c *Canvas) Fill(color uint16) {
	for i := range c.Pix {
		c.Pix[i] = color
	}
}

func (c *Canvas) SetPixel(x, y int, color uint16) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	c.Pix[y*c.W+x] = color
}

func (c *Canvas) FillRect(x, y, w, h int, color uint16) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.SetPixel(xx, yy, color)
		}
	}
}

// DrawLine rasterizes a line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color uint16) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.SetPixel(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawArc fills an annular arc between rIn and rOut. Angles are degrees
// clockwise from twelve o'clock; sweep is capped at a full turn so render
// time stays bounded regardless of input.
func (c *Canvas) DrawArc(cx, cy int, rIn, rOut, startDeg, sweepDeg float64, color uint16) {
	if sweepDeg <= 0 || rOut <= 0 {
		return
	}
	if sweepDeg > 360 {
		sweepDeg = 360
	}
	if rIn < 0 {
		rIn = 0
	}
	// two angle steps per degree covers every pixel at the panel's radii
	steps := int(sweepDeg * 2)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		a := (startDeg + sweepDeg*float64(i)/float64(steps)) * math.Pi / 180
		sin, cos := math.Sin(a), math.Cos(a)
		for r := rIn; r <= rOut; r += 0.5 {
			x := cx + int(math.Round(r*sin))
			y := cy - int(math.Round(r*cos))
			c.SetPixel(x, y, color)
		}
	}
}

// DrawCircle draws a one-pixel circle outline.
func (c *Canvas) DrawCircle(cx, cy, r int, color uint16) {
	c.DrawArc(cx, cy, float64(r), float64(r), 0, 360, color)
}

// DrawText renders s with the builtin 5x7 font at integer scale. Returns
// the x coordinate one pixel past the rendered text.
func (c *Canvas) DrawText(x, y, scale int, color uint16, s string) int {
	if scale < 1 {
		scale = 1
	}
	for _, ch := range s {
		c.drawChar(x, y, scale, color, ch)
		x += (glyphWidth + 1) * scale
	}
	return x
}

// TextWidth returns the pixel width of s at the given scale.
func TextWidth(s string, scale int) int {
	if scale < 1 {
		scale = 1
	}
	n := len([]rune(s))
	if n == 0 {
		return 0
	}
	return n*(glyphWidth+1)*scale - scale
}

func (c *Canvas) drawChar(x, y, scale int, color uint16, ch rune) {
	g := lookupGlyph(ch)
	for row := 0; row < glyphHeight; row++ {
		bits := g[row]
		for col := 0; col < glyphWidth; col++ {
			if bits&(1<<(glyphWidth-1-col)) != 0 {
				c.FillRect(x+col*scale, y+row*scale, scale, scale, color)
			}
		}
	}
}

// seven segment layout:
//
//	 aaa
//	f   b
//	 ggg
//	e   c
//	 ddd
var segDigits = [10]uint8{
	0b0111111, // 0: abcdef
	0b0000110, // 1: bc
	0b1011011, // 2: abdeg
	0b1001111, // 3: abcdg
	0b1100110, // 4: bcfg
	0b1101101, // 5: acdfg
	0b1111101, // 6: acdefg
	0b0000111, // 7: abc
	0b1111111, // 8
	0b1101111, // 9: abcdfg
}

// Draw7Seg renders digit d (0-9) as seven-segment bars inside a w×h box
// with the given segment thickness.
func (c *Canvas) Draw7Seg(x, y, w, h, thick, d int, color uint16) {
	if d < 0 || d > 9 {
		return
	}
	segs := segDigits[d]
	mid := y + (h-thick)/2
	// a, g, d horizontals
	if segs&0b0000001 != 0 {
		c.FillRect(x+thick, y, w-2*thick, thick, color)
	}
	if segs&0b1000000 != 0 {
		c.FillRect(x+thick, mid, w-2*thick, thick, color)
	}
	if segs&0b0001000 != 0 {
		c.FillRect(x+thick, y+h-thick, w-2*thick, thick, color)
	}
	// f, b upper verticals
	if segs&0b0100000 != 0 {
		c.FillRect(x, y+thick, thick, mid-y-thick, color)
	}
	if segs&0b0000010 != 0 {
		c.FillRect(x+w-thick, y+thick, thick, mid-y-thick, color)
	}
	// e, c lower verticals
	if segs&0b0010000 != 0 {
		c.FillRect(x, mid+thick, thick, y+h-thick-(mid+thick), color)
	}
	if segs&0b0000100 != 0 {
		c.FillRect(x+w-thick, mid+thick, thick, y+h-thick-(mid+thick), color)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
