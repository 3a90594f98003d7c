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

package lcd

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	hid "github.com/sstallion/go-hid"
)

// USB identifiers of the panel's Holtek controller.
const (
	VendorID  = 0x04D9
	ProductID = 0xFD01
)

const defaultWriteTimeout = 2 * time.Second

// ErrWriteTimeout reports a device write that did not complete within the
// bounded wait. The session manager treats it like any other write fault.
var ErrWriteTimeout = errors.New("lcd: write timed out")

// ErrClosed reports a write against a closed handle.
var ErrClosed = errors.New("lcd: device closed")

// reportWriter is the part of hid.Device the handle uses. Tests
// substitute fakes.
type reportWriter interface {
	Write(b []byte) (int, error)
	Close() error
}

// Device is an exclusive handle on the panel's HID interface. It is not
// safe for concurrent use; the session manager is its only writer.
type Device struct {
	dev          reportWriter
	pending      chan error
	writeTimeout time.Duration
}

// Open claims the panel. Only one open handle may exist at a time; the
// kernel enforces exclusivity on the hidraw node.
func Open() (*Device, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hid init: %w", err)
	}
	dev, err := hid.OpenFirst(VendorID, ProductID)
	if err != nil {
		return nil, fmt.Errorf("open lcd %04x:%04x: %w", VendorID, ProductID, err)
	}
	info, err := dev.GetDeviceInfo()
	if err == nil {
		log.Info().
			Str("product", info.ProductStr).
			Str("serial", info.SerialNbr).
			Msg("opened lcd device")
	}
	return &Device{dev: dev, writeTimeout: defaultWriteTimeout}, nil
}

func (d *Device) Close() error {
	if d.dev == nil {
		return nil
	}
	// closing the hidraw node errors out a wedged write; the abandoned
	// goroutine sends into its buffered channel and exits
	err := d.dev.Close()
	d.dev = nil
	d.pending = nil
	if err != nil {
		return fmt.Errorf("close lcd: %w", err)
	}
	return nil
}

// Handshake opens the drawing session on the device.
func (d *Device) Handshake() error {
	return d.writeReport(EncodeHandshake())
}

// SetOrientation tells the device's scan-out which way it is mounted.
func (d *Device) SetOrientation(code uint8) error {
	return d.writeReport(EncodeOrientation(code))
}

// WriteFrame encodes and transfers one full frame. A failure partway
// through abandons the rest of the transfer; the device discards the
// incomplete frame when the next frame-start report arrives.
func (d *Device) WriteFrame(fb []uint16) error {
	reports, err := EncodeFrame(fb)
	if err != nil {
		return err
	}
	for _, report := range reports {
		if err := d.writeReport(report); err != nil {
			return err
		}
	}
	return nil
}

// writeReport performs one bounded-wait report write. hidapi has no write
// timeout of its own, so a wedged transfer is abandoned from our side; the
// kernel write still completes or errors in the background. hidapi handles
// do not tolerate concurrent writes, so after a timeout the handle refuses
// further reports until the abandoned write has drained.
func (d *Device) writeReport(report []byte) error {
	if d.dev == nil {
		return ErrClosed
	}
	if d.pending != nil {
		select {
		case <-d.pending:
			d.pending = nil
		default:
			return ErrWriteTimeout
		}
	}

	buf := make([]byte, 1+ReportSize)
	copy(buf[1:], report) // report ID 0

	// dev is captured so a write outliving this call never sees the
	// handle nilled by Close
	dev := d.dev
	done := make(chan error, 1)
	go func() {
		_, err := dev.Write(buf)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("lcd write: %w", err)
		}
		return nil
	case <-time.After(d.writeTimeout):
		d.pending = done
		return ErrWriteTimeout
	}
}
