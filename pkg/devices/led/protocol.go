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

// Package led frames effect commands into the serial packets the strip
// controller accepts and animates effect state between ticks.
//
// Packet layout (6 bytes at 10000 baud):
//
//	0  header 0xFA
//	1  effect
//	2  intensity 1-5 (0 when off)
//	3  speed 1-5 (0 when off)
//	4  phase level (hue or brightness envelope, effect dependent)
//	5  additive checksum of bytes 0-4
package led

import "strings"

const (
	// PacketSize is the fixed serial packet length.
	PacketSize = 6
	// BaudRate of the strip controller's UART.
	BaudRate = 10000

	packetHeader = 0xFA
)

// Effect names an LED animation pattern. The byte value is the wire
// encoding.
type Effect uint8

const (
	EffectOff        Effect = 0x00
	EffectRainbow    Effect = 0x01
	EffectBreathing  Effect = 0x02
	EffectColorCycle Effect = 0x03
	EffectSolid      Effect = 0x04
	EffectAuto       Effect = 0x05
)

func (e Effect) String() string {
	switch e {
	case EffectRainbow:
		return "rainbow"
	case EffectBreathing:
		return "breathing"
	case EffectColorCycle:
		return "color-cycle"
	case EffectSolid:
		return "solid"
	case EffectAuto:
		return "auto"
	default:
		return "off"
	}
}

// ParseEffect normalizes a user-supplied effect name.
func ParseEffect(s string) (Effect, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "off":
		return EffectOff, true
	case "rainbow":
		return EffectRainbow, true
	case "breathing", "breathe":
		return EffectBreathing, true
	case "color-cycle", "colorcycle", "cycle":
		return EffectColorCycle, true
	case "solid":
		return EffectSolid, true
	case "auto":
		return EffectAuto, true
	}
	return EffectOff, false
}

// Effects returns the selectable effects in a stable order.
func Effects() []Effect {
	return []Effect{
		EffectOff, EffectRainbow, EffectBreathing,
		EffectColorCycle, EffectSolid, EffectAuto,
	}
}

// Settings is the LED effect state. Phase is the only field mutated
// between ticks; everything else changes through configuration commands.
type Settings struct {
	Phase     float64
	Effect    Effect
	Intensity uint8
	Speed     uint8
}

// Clamp forces intensity and speed into 1..5. Out-of-range values from
// any boundary are corrected here, never stored.
func (s *Settings) Clamp() {
	s.Intensity = clampRange(s.Intensity)
	s.Speed = clampRange(s.Speed)
}

func clampRange(v uint8) uint8 {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

func checksum(p []byte) byte {
	var sum byte
	for _, b := range p[:PacketSize-1] {
		sum += b
	}
	return sum
}

// EncodePacket frames the current effect state. Pure; no I/O.
func EncodePacket(s Settings) []byte {
	if s.Effect == EffectOff {
		return EncodeOff()
	}
	s.Clamp()
	p := []byte{packetHeader, byte(s.Effect), s.Intensity, s.Speed, Level(s), 0}
	p[PacketSize-1] = checksum(p)
	return p
}

// EncodeOff frames the distinguished idempotent off command.
func EncodeOff() []byte {
	p := []byte{packetHeader, byte(EffectOff), 0, 0, 0, 0}
	p[PacketSize-1] = checksum(p)
	return p
}
