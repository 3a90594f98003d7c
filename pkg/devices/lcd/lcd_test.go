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
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingWriter wedges every Write until release is closed, counting
// calls so tests can assert no two writes ever overlap on the handle.
type blockingWriter struct {
	release chan struct{}
	writes  atomic.Int32
	closed  atomic.Bool
}

func newBlockingWriter() *blockingWriter {
	return &blockingWriter{release: make(chan struct{})}
}

func (w *blockingWriter) Write(b []byte) (int, error) {
	w.writes.Add(1)
	<-w.release
	return len(b), nil
}

func (w *blockingWriter) Close() error {
	w.closed.Store(true)
	return nil
}

func TestWriteTimeoutRefusesWritesUntilDrained(t *testing.T) {
	t.Parallel()

	w := newBlockingWriter()
	dev := &Device{dev: w, writeTimeout: 5 * time.Millisecond}

	assert.ErrorIs(t, dev.Handshake(), ErrWriteTimeout)

	// the wedged write is still in flight; no second write may be issued
	assert.ErrorIs(t, dev.Handshake(), ErrWriteTimeout)
	assert.EqualValues(t, 1, w.writes.Load())

	close(w.release)
	deadline := time.Now().Add(5 * time.Second)
	for {
		err := dev.Handshake()
		if err == nil {
			break
		}
		require.ErrorIs(t, err, ErrWriteTimeout)
		require.True(t, time.Now().Before(deadline), "wedged write never drained")
		time.Sleep(time.Millisecond)
	}
	assert.EqualValues(t, 2, w.writes.Load())
}

func TestCloseWithWedgedWriteInFlight(t *testing.T) {
	t.Parallel()

	w := newBlockingWriter()
	dev := &Device{dev: w, writeTimeout: 5 * time.Millisecond}

	require.ErrorIs(t, dev.Handshake(), ErrWriteTimeout)
	require.NoError(t, dev.Close())
	assert.True(t, w.closed.Load())

	// a closed handle refuses writes instead of dereferencing nil
	assert.ErrorIs(t, dev.Handshake(), ErrClosed)
	assert.ErrorIs(t, dev.SetOrientation(1), ErrClosed)

	// the abandoned write finishes against its captured handle
	close(w.release)
	assert.EqualValues(t, 1, w.writes.Load())
}
