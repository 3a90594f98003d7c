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
	"sync"
	"testing"
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/lcd"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFakeWrite = errors.New("fake write error")

// fakeLCD is driven from the scheduler goroutine while tests inspect it,
// so all fields sit behind the mutex.
type fakeLCD struct {
	mu           sync.Mutex
	frames       [][]uint16
	orientations []uint8
	handshakes   int
	failNext     int
	failFrames   bool
	badFrames    bool
	closed       bool
}

func (f *fakeLCD) Handshake() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handshakes++
	return nil
}

func (f *fakeLCD) SetOrientation(code uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext > 0 {
		f.failNext--
		return errFakeWrite
	}
	f.orientations = append(f.orientations, code)
	return nil
}

func (f *fakeLCD) WriteFrame(fb []uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.badFrames {
		return lcd.ErrBadFrameSize
	}
	if f.failFrames {
		return errFakeWrite
	}
	if f.failNext > 0 {
		f.failNext--
		return errFakeWrite
	}
	buf := make([]uint16, len(fb))
	copy(buf, fb)
	f.frames = append(f.frames, buf)
	return nil
}

func (f *fakeLCD) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeLCD) setFailNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = n
}

func (f *fakeLCD) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func (f *fakeLCD) firstFrameLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return 0
	}
	return len(f.frames[0])
}

func (f *fakeLCD) handshakeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handshakes
}

func (f *fakeLCD) orientationCodes() []uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uint8, len(f.orientations))
	copy(out, f.orientations)
	return out
}

func (f *fakeLCD) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeLED struct {
	packets  chan []byte
	mu       sync.Mutex
	failNext int
	closed   bool
}

func newFakeLED() *fakeLED {
	return &fakeLED{packets: make(chan []byte, 100)}
}

func (f *fakeLED) WritePacket(p []byte) error {
	f.mu.Lock()
	if f.failNext > 0 {
		f.failNext--
		f.mu.Unlock()
		return errFakeWrite
	}
	f.mu.Unlock()
	buf := make([]byte, len(p))
	copy(buf, p)
	f.packets <- buf
	return nil
}

func (f *fakeLED) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeLED) setFailNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = n
}

func (f *fakeLED) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestLCDSessionConnectSequence(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	dev := &fakeLCD{}
	sess := newLCDSession(clock, func() (LCDLink, error) { return dev, nil })
	sess.orientation = 2

	require.True(t, sess.maintain())
	assert.True(t, sess.connected())
	assert.Equal(t, 1, dev.handshakeCount())
	codes := dev.orientationCodes()
	require.Len(t, codes, 1, "orientation replayed on connect")
	assert.EqualValues(t, 2, codes[0])
}

func TestLCDSessionDropsAfterThreeFaults(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	dev := &fakeLCD{}
	sess := newLCDSession(clock, func() (LCDLink, error) { return dev, nil })
	require.True(t, sess.maintain())

	fb := make([]uint16, 4)
	dev.setFailNext(3)

	dropped, err := sess.submitFrame(fb)
	require.Error(t, err)
	assert.False(t, dropped, "first fault keeps the handle")
	dropped, err = sess.submitFrame(fb)
	require.Error(t, err)
	assert.False(t, dropped, "second fault keeps the handle")
	dropped, err = sess.submitFrame(fb)
	require.Error(t, err)
	assert.True(t, dropped, "third consecutive fault drops the handle")

	assert.False(t, sess.connected())
	assert.True(t, dev.isClosed())

	_, err = sess.submitFrame(fb)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestLCDSessionSuccessResetsFaultCount(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	dev := &fakeLCD{}
	sess := newLCDSession(clock, func() (LCDLink, error) { return dev, nil })
	require.True(t, sess.maintain())

	fb := make([]uint16, 4)

	// two faults, then recovery, then two more faults: never dropped
	for round := 0; round < 2; round++ {
		dev.setFailNext(2)
		for i := 0; i < 2; i++ {
			dropped, err := sess.submitFrame(fb)
			require.Error(t, err)
			assert.False(t, dropped)
		}
		dropped, err := sess.submitFrame(fb)
		require.NoError(t, err)
		assert.False(t, dropped)
	}
	assert.True(t, sess.connected())
}

func TestLCDSessionBadFrameIsNotAFault(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	dev := &fakeLCD{badFrames: true}
	sess := newLCDSession(clock, func() (LCDLink, error) { return dev, nil })
	require.True(t, sess.maintain())

	// a contract violation surfaces every time but never drops the handle
	fb := make([]uint16, 4)
	for i := 0; i < faultThreshold+1; i++ {
		dropped, err := sess.submitFrame(fb)
		assert.ErrorIs(t, err, lcd.ErrBadFrameSize, "attempt %d", i)
		assert.False(t, dropped, "attempt %d", i)
	}
	assert.True(t, sess.connected())
	assert.False(t, dev.isClosed())
}

func TestLCDSessionWaitsOutBackoff(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	dev := &fakeLCD{}
	sess := newLCDSession(clock, func() (LCDLink, error) { return dev, nil })
	require.True(t, sess.maintain())

	dev.setFailNext(3)
	fb := make([]uint16, 4)
	for i := 0; i < 3; i++ {
		_, _ = sess.submitFrame(fb)
	}
	require.False(t, sess.connected())

	// retry not due yet
	assert.False(t, sess.maintain())

	clock.Advance(backoffInitial)
	require.True(t, sess.maintain())
	assert.True(t, sess.connected())
	assert.Equal(t, 2, dev.handshakeCount(), "reconnect performs a fresh handshake")
}

func TestLCDSessionBackoffDoublesToCap(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	sess := newLCDSession(clock, func() (LCDLink, error) { return nil, errFakeWrite })

	want := []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		16 * time.Second, 30 * time.Second, 30 * time.Second,
	}
	for i, exp := range want {
		assert.False(t, sess.maintain(), "attempt %d", i)
		gap := sess.nextRetry.Sub(clock.Now())
		assert.Equal(t, exp, gap, "attempt %d backoff", i)
		clock.Advance(gap)
	}
}

func TestLEDSessionDropsAfterThreeFaults(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	dev := newFakeLED()
	sess := newLEDSession(clock, func() (LEDLink, error) { return dev, nil })
	require.True(t, sess.maintain())

	dev.setFailNext(3)
	p := []byte{1, 2, 3}
	for i := 0; i < 2; i++ {
		dropped, err := sess.submitPacket(p)
		require.Error(t, err)
		assert.False(t, dropped)
	}
	dropped, err := sess.submitPacket(p)
	require.Error(t, err)
	assert.True(t, dropped)
	assert.True(t, dev.isClosed())

	_, err = sess.submitPacket(p)
	assert.ErrorIs(t, err, ErrNotConnected)

	clock.Advance(backoffInitial)
	assert.True(t, sess.maintain())
	dropped, err = sess.submitPacket(p)
	require.NoError(t, err)
	assert.False(t, dropped)
}
