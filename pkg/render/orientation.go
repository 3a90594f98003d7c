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

import "strings"

// Panel native resolution. The device always receives frames in this
// orientation; logical canvases are remapped onto it.
const (
	PanelWidth  = 320
	PanelHeight = 170
	FramePixels = PanelWidth * PanelHeight
)

// Orientation selects how rendered content maps onto the panel.
type Orientation uint8

const (
	Landscape Orientation = iota
	Portrait
	LandscapeFlipped
	PortraitFlipped
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case LandscapeFlipped:
		return "landscape-flipped"
	case PortraitFlipped:
		return "portrait-flipped"
	default:
		return "landscape"
	}
}

// Code returns the byte the LCD orientation command carries.
func (o Orientation) Code() uint8 {
	return uint8(o)
}

// Dims returns the logical canvas dimensions for this orientation.
func (o Orientation) Dims() (w, h int) {
	if o == Portrait || o == PortraitFlipped {
		return PanelHeight, PanelWidth
	}
	return PanelWidth, PanelHeight
}

// ParseOrientation normalizes a user-supplied orientation name.
func ParseOrientation(s string) (Orientation, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "landscape":
		return Landscape, true
	case "portrait":
		return Portrait, true
	case "landscape-flipped", "landscape-inverted":
		return LandscapeFlipped, true
	case "portrait-flipped", "portrait-inverted":
		return PortraitFlipped, true
	}
	return Landscape, false
}

// Orientations returns all orientation values.
func Orientations() []Orientation {
	return []Orientation{Landscape, Portrait, LandscapeFlipped, PortraitFlipped}
}

// Remap projects a logical canvas onto the panel's native landscape
// buffer. The canvas dimensions must match o.Dims(); content is rotated
// and mirrored so it reads correctly with the panel mounted per o.
func Remap(c *Canvas, o Orientation) []uint16 {
	out := make([]uint16, FramePixels)
	switch o {
	case Landscape:
		copy(out, c.Pix)
	case LandscapeFlipped:
		for y := 0; y < c.H; y++ {
			for x := 0; x < c.W; x++ {
				out[(PanelHeight-1-y)*PanelWidth+(PanelWidth-1-x)] = c.Pix[y*c.W+x]
			}
		}
	case Portrait:
		// logical top edge lands on the panel's right edge
		for y := 0; y < c.H; y++ {
			for x := 0; x < c.W; x++ {
				nx := y
				ny := PanelHeight - 1 - x
				out[ny*PanelWidth+nx] = c.Pix[y*c.W+x]
			}
		}
	case PortraitFlipped:
		for y := 0; y < c.H; y++ {
			for x := 0; x < c.W; x++ {
				nx := PanelWidth - 1 - y
				ny := x
				out[ny*PanelWidth+nx] = c.Pix[y*c.W+x]
			}
		}
	}
	return out
}

// Face selects a display layout.
type Face string

const (
	FaceAscii        Face = "ascii"
	FaceArcs         Face = "arcs"
	FaceClocks       Face = "clocks"
	FaceDigits       Face = "digits"
	FaceProfessional Face = "professional"
)

// ParseFace normalizes a user-supplied face name.
func ParseFace(s string) (Face, bool) {
	name := Face(strings.ToLower(strings.TrimSpace(s)))
	switch name {
	case FaceAscii, FaceArcs, FaceClocks, FaceDigits, FaceProfessional:
		return name, true
	}
	return "", false
}

// Faces returns the available face names in a stable order.
func Faces() []Face {
	return []Face{FaceAscii, FaceArcs, FaceClocks, FaceDigits, FaceProfessional}
}
