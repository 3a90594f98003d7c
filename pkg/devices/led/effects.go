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

package led

import "math"

// phase step per tick at speed 1; speed scales linearly. Denominators are
// multiples of 60 so every speed 1-5 divides its period evenly.
const (
	rainbowStep   = 1.0 / 240
	breathingStep = 1.0 / 480
	cycleStep     = 1.0 / 960
)

// Advance steps the animation phase by one tick. Phase is normalized to
// [0,1) and wraps; Solid, Auto and Off hold their phase. Intensity never
// affects phase.
func Advance(s Settings) Settings {
	s.Clamp()
	switch s.Effect {
	case EffectRainbow:
		s.Phase = wrap(s.Phase + rainbowStep*float64(s.Speed))
	case EffectBreathing:
		s.Phase = wrap(s.Phase + breathingStep*float64(s.Speed))
	case EffectColorCycle:
		s.Phase = wrap(s.Phase + cycleStep*float64(s.Speed))
	}
	return s
}

// Period returns the number of ticks one full cycle of the effect takes,
// or 0 for effects that do not animate.
func Period(s Settings) int {
	s.Clamp()
	switch s.Effect {
	case EffectRainbow:
		return int(math.Round(1 / (rainbowStep * float64(s.Speed))))
	case EffectBreathing:
		return int(math.Round(1 / (breathingStep * float64(s.Speed))))
	case EffectColorCycle:
		return int(math.Round(1 / (cycleStep * float64(s.Speed))))
	default:
		return 0
	}
}

// Level derives the packet's phase byte: the hue angle for the rotating
// effects, a triangle brightness envelope for breathing, and a flat
// intensity-scaled level for solid.
func Level(s Settings) uint8 {
	s.Clamp()
	switch s.Effect {
	case EffectRainbow, EffectColorCycle:
		return uint8(s.Phase * 256)
	case EffectBreathing:
		env := 2 * s.Phase
		if s.Phase >= 0.5 {
			env = 2 - 2*s.Phase
		}
		return uint8(env * float64(s.Intensity) * 51)
	case EffectSolid:
		return s.Intensity * 51
	default:
		return 0
	}
}

func wrap(phase float64) float64 {
	phase -= math.Floor(phase)
	if phase >= 1 {
		phase = 0
	}
	return phase
}
