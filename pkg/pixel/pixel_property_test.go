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

	"pgregory.net/rapid"
)

// TestPropertyToRGB565Deterministic verifies the same triple always encodes
// to the same value and the result stays within 16 bits of channel layout.
func TestPropertyToRGB565Deterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		r := rapid.Uint8().Draw(t, "r")
		g := rapid.Uint8().Draw(t, "g")
		b := rapid.Uint8().Draw(t, "b")

		first := ToRGB565(r, g, b)
		second := ToRGB565(r, g, b)
		if first != second {
			t.Fatalf("non-deterministic encode: %04x vs %04x", first, second)
		}

		if first>>11 != uint16(r>>3) {
			t.Fatalf("red channel mismatch: %04x from r=%d", first, r)
		}
		if first>>5&0x3F != uint16(g>>2) {
			t.Fatalf("green channel mismatch: %04x from g=%d", first, g)
		}
		if first&0x1F != uint16(b>>3) {
			t.Fatalf("blue channel mismatch: %04x from b=%d", first, b)
		}
	})
}

// TestPropertyRoundTripStable verifies re-encoding the expanded
// approximation of an encoded color yields the same RGB565 word.
func TestPropertyRoundTripStable(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		r := rapid.Uint8().Draw(t, "r")
		g := rapid.Uint8().Draw(t, "g")
		b := rapid.Uint8().Draw(t, "b")

		encoded := ToRGB565(r, g, b)
		er, eg, eb := Expand565(encoded)
		again := ToRGB565(er, eg, eb)
		if encoded != again {
			t.Fatalf("round trip unstable: %04x -> (%d,%d,%d) -> %04x",
				encoded, er, eg, eb, again)
		}
	})
}
