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

// Package pixel converts colors to the RGB565 format the panel expects and
// holds the named theme palettes shared by every face.
package pixel

import "strings"

// Palette names one of the fixed color themes.
type Palette string

const (
	PaletteEmber          Palette = "ember"
	PaletteHacker         Palette = "hacker"
	PaletteNord           Palette = "nord"
	PaletteSolarizedDark  Palette = "solarized-dark"
	PaletteSolarizedLight Palette = "solarized-light"
	PaletteTokyoNight     Palette = "tokyonight"
)

// DefaultPalette is used whenever a lookup falls outside the known set.
const DefaultPalette = PaletteEmber

// Role selects one of the colors a palette provides.
type Role int

const (
	RoleBackground Role = iota
	RoleForeground
	RoleAccent
	RoleWarn
	RoleCrit
)

// ToRGB565 truncates 8-bit channels to the panel's 5-6-5 layout.
func ToRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// FromRGB888 converts a packed 0xRRGGBB value.
func FromRGB888(rgb uint32) uint16 {
	return ToRGB565(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
}

// Expand565 approximates an RGB565 value back to 8-bit channels by
// replicating the high bits into the truncated low bits.
func Expand565(c uint16) (r, g, b uint8) {
	r5 := uint8(c >> 11 & 0x1F)
	g6 := uint8(c >> 5 & 0x3F)
	b5 := uint8(c & 0x1F)
	r = r5<<3 | r5>>2
	g = g6<<2 | g6>>4
	b = b5<<3 | b5>>2
	return r, g, b
}

type colors struct {
	background uint32
	foreground uint32
	accent     uint32
	warn       uint32
	crit       uint32
}

var palettes = map[Palette]colors{
	PaletteEmber: {
		background: 0x1A1A2E,
		foreground: 0xFF6B35,
		accent:     0xFFC15E,
		warn:       0xFFA500,
		crit:       0xE63946,
	},
	PaletteHacker: {
		background: 0x000000,
		foreground: 0x00FF00,
		accent:     0x00AA00,
		warn:       0xAAFF00,
		crit:       0xFF3300,
	},
	PaletteNord: {
		background: 0x2E3440,
		foreground: 0x88C0D0,
		accent:     0x81A1C1,
		warn:       0xEBCB8B,
		crit:       0xBF616A,
	},
	PaletteSolarizedDark: {
		background: 0x002B36,
		foreground: 0x268BD2,
		accent:     0x859900,
		warn:       0xB58900,
		crit:       0xDC322F,
	},
	PaletteSolarizedLight: {
		background: 0xFDF6E3,
		foreground: 0x268BD2,
		accent:     0x859900,
		warn:       0xB58900,
		crit:       0xDC322F,
	},
	PaletteTokyoNight: {
		background: 0x1A1B26,
		foreground: 0x7AA2F7,
		accent:     0xBB9AF7,
		warn:       0xE0AF68,
		crit:       0xF7768E,
	},
}

// Color returns the RGB565 value for a (palette, role) pair. Unknown
// palettes fall back to the default palette; unknown roles return its
// foreground. The lookup is total and never fails.
func Color(p Palette, role Role) uint16 {
	c, ok := palettes[p]
	if !ok {
		c = palettes[DefaultPalette]
	}
	switch role {
	case RoleBackground:
		return FromRGB888(c.background)
	case RoleForeground:
		return FromRGB888(c.foreground)
	case RoleAccent:
		return FromRGB888(c.accent)
	case RoleWarn:
		return FromRGB888(c.warn)
	case RoleCrit:
		return FromRGB888(c.crit)
	default:
		return FromRGB888(c.foreground)
	}
}

// Palettes returns the known palette names in a stable order.
func Palettes() []Palette {
	return []Palette{
		PaletteEmber,
		PaletteHacker,
		PaletteNord,
		PaletteSolarizedDark,
		PaletteSolarizedLight,
		PaletteTokyoNight,
	}
}

// ParsePalette normalizes a user-supplied theme name.
func ParsePalette(s string) (Palette, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	switch Palette(name) {
	case PaletteEmber, PaletteHacker, PaletteNord,
		PaletteSolarizedDark, PaletteSolarizedLight, PaletteTokyoNight:
		return Palette(name), true
	}
	// accept the unhyphenated spellings the old daemon allowed
	switch name {
	case "solarizeddark":
		return PaletteSolarizedDark, true
	case "solarizedlight":
		return PaletteSolarizedLight, true
	case "tokyo-night":
		return PaletteTokyoNight, true
	}
	return "", false
}
