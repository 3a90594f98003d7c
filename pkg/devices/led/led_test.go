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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampForcesRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   uint8
		want uint8
	}{
		{0, 1}, {1, 1}, {3, 3}, {5, 5}, {6, 5}, {255, 5},
	}
	for _, tt := range tests {
		s := Settings{Effect: EffectSolid, Intensity: tt.in, Speed: tt.in}
		s.Clamp()
		assert.Equal(t, tt.want, s.Intensity, "intensity %d", tt.in)
		assert.Equal(t, tt.want, s.Speed, "speed %d", tt.in)
	}
}

func TestEncodePacketLayout(t *testing.T) {
	t.Parallel()

	s := Settings{Effect: EffectRainbow, Intensity: 3, Speed: 4, Phase: 0.5}
	p := EncodePacket(s)
	require.Len(t, p, PacketSize)

	assert.EqualValues(t, packetHeader, p[0])
	assert.EqualValues(t, EffectRainbow, p[1])
	assert.EqualValues(t, 3, p[2])
	assert.EqualValues(t, 4, p[3])
	assert.EqualValues(t, 128, p[4])
	assert.Equal(t, checksum(p), p[5])
}

func TestEncodeOffIdempotent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, EncodeOff(), EncodeOff())
	// off via EncodePacket matches the distinguished command
	assert.Equal(t, EncodeOff(), EncodePacket(Settings{Effect: EffectOff, Intensity: 5, Speed: 5}))
}

func TestEncodePacketClampsWireFields(t *testing.T) {
	t.Parallel()

	p := EncodePacket(Settings{Effect: EffectSolid, Intensity: 200, Speed: 0})
	assert.EqualValues(t, 5, p[2])
	assert.EqualValues(t, 1, p[3])
}

func TestAdvanceRainbowWrapsAfterOnePeriod(t *testing.T) {
	t.Parallel()

	for speed := uint8(1); speed <= 5; speed++ {
		s := Settings{Effect: EffectRainbow, Intensity: 3, Speed: speed}
		period := Period(s)
		require.Positive(t, period, "speed %d", speed)
		for i := 0; i < period; i++ {
			s = Advance(s)
		}
		dist := math.Min(s.Phase, 1-s.Phase)
		assert.InDelta(t, 0, dist, 1e-9, "speed %d phase %v", speed, s.Phase)
	}
}

func TestAdvanceMonotonicHue(t *testing.T) {
	t.Parallel()

	s := Settings{Effect: EffectRainbow, Intensity: 3, Speed: 3}
	prev := s.Phase
	for i := 0; i < 10; i++ {
		s = Advance(s)
		assert.Greater(t, s.Phase, prev, "tick %d", i)
		prev = s.Phase
	}
}

func TestAdvanceHoldsPhaseForStaticEffects(t *testing.T) {
	t.Parallel()

	for _, e := range []Effect{EffectOff, EffectSolid, EffectAuto} {
		s := Settings{Effect: e, Intensity: 3, Speed: 5, Phase: 0.25}
		assert.Equal(t, 0.25, Advance(s).Phase, "effect %s", e)
	}
}

func TestBreathingEnvelopeTriangle(t *testing.T) {
	t.Parallel()

	base := Settings{Effect: EffectBreathing, Intensity: 5, Speed: 1}

	base.Phase = 0
	assert.EqualValues(t, 0, Level(base))
	base.Phase = 0.5
	assert.EqualValues(t, 255, Level(base))
	base.Phase = 0.25
	half := Level(base)
	base.Phase = 0.75
	assert.Equal(t, half, Level(base), "envelope should be symmetric")
}

func TestLevelIntensityScalesBrightnessNotPhase(t *testing.T) {
	t.Parallel()

	dimmed := Settings{Effect: EffectBreathing, Intensity: 1, Speed: 3, Phase: 0.5}
	bright := Settings{Effect: EffectBreathing, Intensity: 5, Speed: 3, Phase: 0.5}
	assert.Less(t, Level(dimmed), Level(bright))
	assert.Equal(t, Advance(dimmed).Phase, Advance(bright).Phase)
}

func TestParseEffect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Effect
		ok   bool
	}{
		{"rainbow", EffectRainbow, true},
		{"Breathing", EffectBreathing, true},
		{"color_cycle", EffectColorCycle, true},
		{"cycle", EffectColorCycle, true},
		{"OFF", EffectOff, true},
		{"disco", EffectOff, false},
	}
	for _, tt := range tests {
		got, ok := ParseEffect(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
