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

package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRGB565KnownValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint16(0x0000), ToRGB565(0, 0, 0))
	assert.Equal(t, uint16(0xFFFF), ToRGB565(255, 255, 255))
	assert.Equal(t, uint16(0xF800), ToRGB565(255, 0, 0))
	assert.Equal(t, uint16(0x07E0), ToRGB565(0, 255, 0))
	assert.Equal(t, uint16(0x001F), ToRGB565(0, 0, 255))
}

func TestFromRGB888MatchesChannels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ToRGB565(0x12, 0x34, 0x56), FromRGB888(0x123456))
	assert.Equal(t, ToRGB565(0xFF, 0x6B, 0x35), FromRGB888(0xFF6B35))
}

func TestColorUnknownPaletteFallsBack(t *testing.T) {
	t.Parallel()

	got := Color(Palette("no-such-theme"), RoleForeground)
	assert.Equal(t, Color(DefaultPalette, RoleForeground), got)
}

func TestColorUnknownRoleReturnsForeground(t *testing.T) {
	t.Parallel()

	got := Color(PaletteNord, Role(99))
	assert.Equal(t, Color(PaletteNord, RoleForeground), got)
}

func TestParsePalette(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Palette
		ok   bool
	}{
		{"nord", PaletteNord, true},
		{"NORD", PaletteNord, true},
		{"solarized_dark", PaletteSolarizedDark, true},
		{"solarizeddark", PaletteSolarizedDark, true},
		{"tokyo-night", PaletteTokyoNight, true},
		{" ember ", PaletteEmber, true},
		{"matrix", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePalette(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestEveryPaletteDefinesDistinctBackgroundAndForeground(t *testing.T) {
	t.Parallel()

	for _, p := range Palettes() {
		bg := Color(p, RoleBackground)
		fg := Color(p, RoleForeground)
		assert.NotEqual(t, bg, fg, "palette %s", p)
	}
}
