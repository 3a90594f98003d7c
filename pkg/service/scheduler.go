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

	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/render"
	"github.com/HT32PanelProject/ht32panel-core/pkg/sensors"
	"github.com/HT32PanelProject/ht32panel-core/pkg/service/state"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// strip animation cadence; the display cadence comes from config
const ledTickInterval = 150 * time.Millisecond

// MetricsSource feeds the renderer. *sensors.Sampler satisfies it.
type MetricsSource interface {
	Sample() (sensors.Snapshot, error)
	SetNetInterface(name string)
}

// Scheduler runs the single goroutine that owns both device sessions.
// Every render, device write and settings change happens on that
// goroutine, so the sessions need no locking and a frame can never be
// rendered with half-applied settings.
type Scheduler struct {
	clock     clockwork.Clock
	st        *state.State
	sampler   MetricsSource
	lcd       *lcdSession
	led       *ledSession
	deltas    chan state.Delta
	done      chan struct{}
	lcdTicker clockwork.Ticker
	display   render.DisplayConfig
	ledNow    led.Settings
	refresh   time.Duration
}

// NewScheduler wires the tick loop without starting it. The initial
// display and led settings come from config via state.
func NewScheduler(
	clock clockwork.Clock,
	st *state.State,
	sampler MetricsSource,
	openLCD func() (LCDLink, error),
	openLED func() (LEDLink, error),
) *Scheduler {
	sched := &Scheduler{
		clock:   clock,
		st:      st,
		sampler: sampler,
		lcd:     newLCDSession(clock, openLCD),
		led:     newLEDSession(clock, openLED),
		deltas:  make(chan state.Delta, 16),
		done:    make(chan struct{}),
		display: st.Display(),
		ledNow:  st.LedSettings(),
		refresh: st.Refresh(),
	}
	sched.lcd.orientation = sched.display.Orientation.Code()
	return sched
}

// Deltas is the submission side of the settings queue. Submissions are
// applied at the next tick boundary.
func (s *Scheduler) Deltas() chan<- state.Delta {
	return s.deltas
}

// Start launches the tick loop.
func (s *Scheduler) Start() {
	go s.run()
}

// Done is closed when the tick loop has exited and both device handles
// are released.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) run() {
	defer close(s.done)
	defer s.lcd.close()
	defer s.led.close()

	if s.refresh <= 0 {
		s.refresh = time.Second
	}

	s.lcdTicker = s.clock.NewTicker(s.refresh)
	defer s.lcdTicker.Stop()
	ledTicker := s.clock.NewTicker(ledTickInterval)
	defer ledTicker.Stop()

	ctx := s.st.GetContext()

	// first frame without waiting a full refresh period
	s.lcdTick()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("scheduler stopping")
			return
		case <-s.lcdTicker.Chan():
			s.lcdTick()
		case <-ledTicker.Chan():
			s.ledTick()
		}
	}
}

func (s *Scheduler) lcdTick() {
	s.applyDeltas()

	if s.lcd.maintain() {
		s.st.SetLCDConnected(true)
	}

	snap, err := s.sampler.Sample()
	if err != nil {
		// keep drawing the last good snapshot rather than blanking
		log.Warn().Err(err).Msg("sensor sample failed")
		snap = s.st.Snapshot()
		snap.Timestamp = s.clock.Now()
	} else {
		s.st.SetSnapshot(snap)
	}

	if !s.lcd.connected() {
		return
	}

	fb := render.Render(s.display, snap)
	if dropped, err := s.lcd.submitFrame(fb); err != nil {
		if dropped {
			s.st.SetLCDConnected(false)
		}
		return
	}
	// first confirmed write after reconnect flips the flag
	s.st.SetLCDConnected(true)
}

func (s *Scheduler) ledTick() {
	s.applyDeltas()

	if s.led.maintain() {
		s.st.SetLEDConnected(true)
	}

	s.ledNow = led.Advance(s.ledNow)
	s.st.SetLedSettings(s.ledNow)

	if !s.led.connected() {
		return
	}

	if dropped, err := s.led.submitPacket(led.EncodePacket(s.ledNow)); err != nil {
		if dropped {
			s.st.SetLEDConnected(false)
		}
		return
	}
	s.st.SetLEDConnected(true)
}

// applyDeltas drains the settings queue. Runs only at tick boundaries;
// mid-cycle submissions wait for the next tick.
func (s *Scheduler) applyDeltas() {
	for {
		select {
		case d := <-s.deltas:
			s.applyDelta(d)
		default:
			return
		}
	}
}

func (s *Scheduler) applyDelta(d state.Delta) {
	if d.Display != nil {
		if d.Display.Orientation != s.display.Orientation {
			dropped, err := s.lcd.setOrientation(d.Display.Orientation.Code())
			if dropped {
				s.st.SetLCDConnected(false)
			}
			if err != nil && !errors.Is(err, ErrNotConnected) {
				log.Warn().Err(err).Msg("orientation change not delivered")
			}
		}
		s.display = *d.Display
		s.st.SetDisplay(s.display)
	}
	if d.Refresh != nil && *d.Refresh > 0 && *d.Refresh != s.refresh {
		s.refresh = *d.Refresh
		s.st.SetRefresh(s.refresh)
		if s.lcdTicker != nil {
			s.lcdTicker.Reset(s.refresh)
		}
	}
	if d.Led != nil {
		next := *d.Led
		next.Clamp()
		// changing the pattern restarts it; intensity and speed tweaks
		// keep the current phase
		if next.Effect != s.ledNow.Effect {
			next.Phase = 0
		} else {
			next.Phase = s.ledNow.Phase
		}
		s.ledNow = next
		s.st.SetLedSettings(s.ledNow)
	}
	if d.NetInterface != nil {
		s.sampler.SetNetInterface(*d.NetInterface)
	}
}
