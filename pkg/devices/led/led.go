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
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// minimum gap between packets so the 10000 baud line never saturates
const minPacketInterval = 10 * time.Millisecond

// Device is an exclusive handle on the strip controller's serial port.
// Not safe for concurrent use; the session manager is its only writer.
type Device struct {
	port     serial.Port
	path     string
	lastSend time.Time
}

// Open claims the serial device at path.
func Open(path string) (*Device, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("led device path: %w", err)
	}

	port, err := serial.Open(path, &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open led serial port: %w", err)
	}

	if err := port.SetReadTimeout(50 * time.Millisecond); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set led read timeout: %w", err)
	}

	log.Info().Str("path", path).Int("baud", BaudRate).Msg("opened led device")
	return &Device{port: port, path: path}, nil
}

func (d *Device) Close() error {
	if d.port == nil {
		return nil
	}
	err := d.port.Close()
	d.port = nil
	if err != nil {
		return fmt.Errorf("close led: %w", err)
	}
	return nil
}

// WritePacket sends one framed packet, pacing writes to respect the line
// rate.
func (d *Device) WritePacket(p []byte) error {
	if since := time.Since(d.lastSend); since < minPacketInterval {
		time.Sleep(minPacketInterval - since)
	}
	n, err := d.port.Write(p)
	d.lastSend = time.Now()
	if err != nil {
		return fmt.Errorf("led write: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("led write: short write %d of %d", n, len(p))
	}
	return nil
}
