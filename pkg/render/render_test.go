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
	"testing"
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() sensors.Snapshot {
	return sensors.Snapshot{
		Timestamp:   time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Hostname:    "panelbox",
		Uptime:      26 * time.Hour,
		CPUPercent:  42,
		MemPercent:  61.5,
		DiskPercent: 80.2,
		TempC:       55,
		NetRxBps:    1_200_000,
		NetTxBps:    64_000,
	}
}

func TestRenderOutputLengthAllFacesAllOrientations(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	for _, face := range Faces() {
		for _, o := range Orientations() {
			cfg := DisplayConfig{Theme: pixel.PaletteNord, Face: face, Orientation: o}
			fb := Render(cfg, snap)
			require.Len(t, fb, FramePixels, "face %s orientation %s", face, o)
		}
	}
}

func TestOrientationDims(t *testing.T) {
	t.Parallel()

	for _, o := range []Orientation{Landscape, LandscapeFlipped} {
		w, h := o.Dims()
		assert.Equal(t, PanelWidth, w)
		assert.Equal(t, PanelHeight, h)
	}
	for _, o := range []Orientation{Portrait, PortraitFlipped} {
		w, h := o.Dims()
		assert.Equal(t, PanelHeight, w)
		assert.Equal(t, PanelWidth, h)
	}
}

func TestRemapCornerPixels(t *testing.T) {
	t.Parallel()

	const marker = uint16(0xBEEF)

	// landscape is the identity
	c := NewCanvas(PanelWidth, PanelHeight)
	c.SetPixel(0, 0, marker)
	fb := Remap(c, Landscape)
	assert.Equal(t, marker, fb[0])

	// flipped landscape mirrors both axes
	fb = Remap(c, LandscapeFlipped)
	assert.Equal(t, marker, fb[(PanelHeight-1)*PanelWidth+PanelWidth-1])

	// portrait origin lands on the panel's bottom-left corner
	p := NewCanvas(PanelHeight, PanelWidth)
	p.SetPixel(0, 0, marker)
	fb = Remap(p, Portrait)
	assert.Equal(t, marker, fb[(PanelHeight-1)*PanelWidth])

	fb = Remap(p, PortraitFlipped)
	assert.Equal(t, marker, fb[PanelWidth-1])
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	cfg := DisplayConfig{Theme: pixel.PaletteTokyoNight, Face: FaceProfessional, Orientation: Landscape}
	snap := testSnapshot()
	assert.Equal(t, Render(cfg, snap), Render(cfg, snap))
}

func TestRenderClampsOutOfRangeMetrics(t *testing.T) {
	t.Parallel()

	snap := testSnapshot()
	snap.CPUPercent = -40
	snap.MemPercent = 250
	snap.TempC = 9999

	for _, face := range Faces() {
		cfg := DisplayConfig{Theme: pixel.PaletteHacker, Face: face, Orientation: Landscape}
		fb := Render(cfg, snap)
		require.Len(t, fb, FramePixels, "face %s", face)
	}
}

// A digits-face frame with CPU at 42% must show "42" in the theme
// foreground at the seven-segment layout positions.
func TestDigitsFaceRendersCPUGlyphs(t *testing.T) {
	t.Parallel()

	cfg := DisplayConfig{Theme: pixel.PaletteNord, Face: FaceDigits, Orientation: Landscape}
	snap := testSnapshot()
	fb := Render(cfg, snap)

	fg := pixel.Color(pixel.PaletteNord, pixel.RoleForeground)

	c := &Canvas{W: PanelWidth, H: PanelHeight, Pix: fb}
	digitW, digitH, thick, gap, x0, y0 := digitLayout(c, 2)

	// '4' lights segment f (upper-left vertical), '2' does not
	fourFX := x0 + thick/2
	fourFY := y0 + digitH/4
	assert.Equal(t, fg, fb[fourFY*PanelWidth+fourFX], "segment f of '4' should be lit")

	twoX0 := x0 + digitW + gap
	twoFX := twoX0 + thick/2
	assert.NotEqual(t, fg, fb[fourFY*PanelWidth+twoFX], "segment f of '2' should be dark")

	// '2' lights segment a (top bar), '4' does not
	topY := y0 + thick/2
	assert.Equal(t, fg, fb[topY*PanelWidth+twoX0+digitW/2], "segment a of '2' should be lit")
	assert.NotEqual(t, fg, fb[topY*PanelWidth+x0+digitW/2], "segment a of '4' should be dark")
}

func TestDigitsFaceDistinguishesValues(t *testing.T) {
	t.Parallel()

	cfg := DisplayConfig{Theme: pixel.PaletteNord, Face: FaceDigits, Orientation: Landscape}
	a := testSnapshot()
	b := testSnapshot()
	b.CPUPercent = 88
	assert.NotEqual(t, Render(cfg, a), Render(cfg, b))
}

func TestRenderBackgroundUsesThemeColor(t *testing.T) {
	t.Parallel()

	for _, p := range pixel.Palettes() {
		cfg := DisplayConfig{Theme: p, Face: FaceAscii, Orientation: Landscape}
		fb := Render(cfg, testSnapshot())
		// the corner is outside every ascii face element
		assert.Equal(t, pixel.Color(p, pixel.RoleBackground), fb[FramePixels-1],
			fmt.Sprintf("palette %s", p))
	}
}
