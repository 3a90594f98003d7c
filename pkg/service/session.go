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

package service

import (
	"errors"
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/lcd"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// LCDLink is the panel handle the session manager drives. *lcd.Device
// satisfies it; tests substitute fakes.
type LCDLink interface {
	Handshake() error
	SetOrientation(code uint8) error
	WriteFrame(fb []uint16) error
	Close() error
}

// LEDLink is the strip handle the session manager drives.
type LEDLink interface {
	WritePacket(p []byte) error
	Close() error
}

const (
	// consecutive write faults before a handle is declared dead
	faultThreshold = 3

	backoffInitial = time.Second
	backoffMax     = 30 * time.Second
)

// ErrNotConnected reports a submit against a session with no live handle.
// Callers skip the write and carry on; the reconnect loop owns recovery.
var ErrNotConnected = errors.New("device not connected")

// lcdSession owns the panel handle's lifecycle: open, handshake,
// orientation replay, fault counting and backoff. All methods must be
// called from the scheduler goroutine only.
type lcdSession struct {
	clock       clockwork.Clock
	open        func() (LCDLink, error)
	dev         LCDLink
	nextRetry   time.Time
	backoff     time.Duration
	faults      int
	orientation uint8
}

func newLCDSession(clock clockwork.Clock, open func() (LCDLink, error)) *lcdSession {
	return &lcdSession{
		clock:   clock,
		open:    open,
		backoff: backoffInitial,
	}
}

func (s *lcdSession) connected() bool {
	return s.dev != nil
}

// maintain attempts a reconnect when the session is down and its backoff
// has elapsed. Returns true if the session transitioned to connected.
func (s *lcdSession) maintain() bool {
	if s.dev != nil || s.clock.Now().Before(s.nextRetry) {
		return false
	}

	dev, err := s.open()
	if err != nil {
		log.Debug().Err(err).Msg("lcd reconnect failed")
		s.scheduleRetry()
		return false
	}

	// a fresh handle needs the drawing session reopened and the mount
	// orientation replayed before any frame data
	if err := dev.Handshake(); err != nil {
		log.Warn().Err(err).Msg("lcd handshake failed")
		_ = dev.Close()
		s.scheduleRetry()
		return false
	}
	if err := dev.SetOrientation(s.orientation); err != nil {
		log.Warn().Err(err).Msg("lcd orientation replay failed")
		_ = dev.Close()
		s.scheduleRetry()
		return false
	}

	s.dev = dev
	s.faults = 0
	s.backoff = backoffInitial
	log.Info().Msg("lcd session established")
	return true
}

// submitFrame writes one frame. Returns true if the session transitioned
// to disconnected.
func (s *lcdSession) submitFrame(fb []uint16) (dropped bool, err error) {
	if s.dev == nil {
		return false, ErrNotConnected
	}
	if err := s.dev.WriteFrame(fb); err != nil {
		// a malformed framebuffer is a programming error, not a device
		// fault; the handle stays up and nothing is retried
		if errors.Is(err, lcd.ErrBadFrameSize) {
			log.Error().Err(err).Msg("rejected malformed framebuffer")
			return false, err
		}
		return s.fault(err), err
	}
	s.faults = 0
	return false, nil
}

// setOrientation records the mount orientation and pushes it to the
// device when one is attached. The recorded value is replayed on every
// reconnect.
func (s *lcdSession) setOrientation(code uint8) (dropped bool, err error) {
	s.orientation = code
	if s.dev == nil {
		return false, ErrNotConnected
	}
	if err := s.dev.SetOrientation(code); err != nil {
		return s.fault(err), err
	}
	s.faults = 0
	return false, nil
}

func (s *lcdSession) fault(err error) (dropped bool) {
	s.faults++
	log.Warn().Err(err).Int("faults", s.faults).Msg("lcd write fault")
	if s.faults < faultThreshold {
		return false
	}
	s.drop()
	return true
}

func (s *lcdSession) drop() {
	if s.dev != nil {
		_ = s.dev.Close()
		s.dev = nil
	}
	s.faults = 0
	s.nextRetry = s.clock.Now().Add(s.backoff)
	log.Info().Dur("retry_in", s.backoff).Msg("lcd session dropped")
}

func (s *lcdSession) scheduleRetry() {
	s.nextRetry = s.clock.Now().Add(s.backoff)
	s.backoff *= 2
	if s.backoff > backoffMax {
		s.backoff = backoffMax
	}
}

func (s *lcdSession) close() {
	if s.dev != nil {
		_ = s.dev.Close()
		s.dev = nil
	}
}

// ledSession mirrors lcdSession for the serial strip controller. Kept
// separate rather than generic: the two links share no setup sequence.
type ledSession struct {
	clock     clockwork.Clock
	open      func() (LEDLink, error)
	dev       LEDLink
	nextRetry time.Time
	backoff   time.Duration
	faults    int
}

func newLEDSession(clock clockwork.Clock, open func() (LEDLink, error)) *ledSession {
	return &ledSession{
		clock:   clock,
		open:    open,
		backoff: backoffInitial,
	}
}

func (s *ledSession) connected() bool {
	return s.dev != nil
}

func (s *ledSession) maintain() bool {
	if s.dev != nil || s.clock.Now().Before(s.nextRetry) {
		return false
	}

	dev, err := s.open()
	if err != nil {
		log.Debug().Err(err).Msg("led reconnect failed")
		s.nextRetry = s.clock.Now().Add(s.backoff)
		s.backoff *= 2
		if s.backoff > backoffMax {
			s.backoff = backoffMax
		}
		return false
	}

	s.dev = dev
	s.faults = 0
	s.backoff = backoffInitial
	log.Info().Msg("led session established")
	return true
}

func (s *ledSession) submitPacket(p []byte) (dropped bool, err error) {
	if s.dev == nil {
		return false, ErrNotConnected
	}
	if err := s.dev.WritePacket(p); err != nil {
		s.faults++
		log.Warn().Err(err).Int("faults", s.faults).Msg("led write fault")
		if s.faults < faultThreshold {
			return false, err
		}
		_ = s.dev.Close()
		s.dev = nil
		s.faults = 0
		s.nextRetry = s.clock.Now().Add(s.backoff)
		log.Info().Dur("retry_in", s.backoff).Msg("led session dropped")
		return true, err
	}
	s.faults = 0
	return false, nil
}

func (s *ledSession) close() {
	if s.dev != nil {
		_ = s.dev.Close()
		s.dev = nil
	}
}
