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

// Package lcd frames framebuffers and control commands into the fixed-size
// HID reports the HT32 panel accepts, and owns the USB device handle.
//
// Report layout (64 bytes, confirmed against the vendor firmware):
//
//	0     magic 0x55
//	1     command
//	2-3   sequence index, little endian
//	4     payload length
//	5-62  payload, zero padded
//	63    additive checksum of bytes 0-62
package lcd

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// ReportSize is the fixed HID report size the device accepts.
	ReportSize = 64
	// PayloadSize is the pixel data capacity of one report.
	PayloadSize = ReportSize - 6

	reportMagic = 0x55

	cmdHandshake   = 0xA0
	cmdFrameStart  = 0xA1
	cmdFrameData   = 0xA2
	cmdOrientation = 0xA3

	// FrameBytes is the size of one full RGB565 frame on the wire.
	FrameBytes  = 320 * 170 * 2
	framePixels = 320 * 170
)

// handshake payload, the ASCII device family name
var handshakeMagic = []byte{'H', 'T', '3', '2'}

// ErrBadFrameSize reports a framebuffer that violates the codec's input
// contract. It is a programming error, distinct from device I/O failures,
// and is never retried.
var ErrBadFrameSize = errors.New("lcd: framebuffer is not 320x170")

func checksum(report []byte) byte {
	var sum byte
	for _, b := range report[:ReportSize-1] {
		sum += b
	}
	return sum
}

func newReport(cmd byte, seq uint16, payload []byte) []byte {
	report := make([]byte, ReportSize)
	report[0] = reportMagic
	report[1] = cmd
	binary.LittleEndian.PutUint16(report[2:4], seq)
	report[4] = byte(len(payload))
	copy(report[5:], payload)
	report[ReportSize-1] = checksum(report)
	return report
}

// EncodeFrame splits a native-orientation framebuffer into an ordered
// report sequence. The first report carries the frame-start command so the
// device can distinguish a new frame from a continued transfer. Encoding
// is pure; it performs no I/O.
func EncodeFrame(fb []uint16) ([][]byte, error) {
	if len(fb) != framePixels {
		return nil, fmt.Errorf("%w: got %d pixels", ErrBadFrameSize, len(fb))
	}

	// pixels travel big endian
	raw := make([]byte, FrameBytes)
	for i, px := range fb {
		binary.BigEndian.PutUint16(raw[i*2:], px)
	}

	count := (FrameBytes + PayloadSize - 1) / PayloadSize
	reports := make([][]byte, 0, count)
	for seq := 0; seq < count; seq++ {
		start := seq * PayloadSize
		end := start + PayloadSize
		if end > FrameBytes {
			end = FrameBytes
		}
		cmd := byte(cmdFrameData)
		if seq == 0 {
			cmd = cmdFrameStart
		}
		reports = append(reports, newReport(cmd, uint16(seq), raw[start:end]))
	}
	return reports, nil
}

// EncodeOrientation builds the orientation control report. code is the
// device's 0-3 orientation value.
func EncodeOrientation(code uint8) []byte {
	return newReport(cmdOrientation, 0, []byte{code})
}

// EncodeHandshake builds the session-open report. The device ignores all
// traffic until it sees one.
func EncodeHandshake() []byte {
	return newReport(cmdHandshake, 0, handshakeMagic)
}
