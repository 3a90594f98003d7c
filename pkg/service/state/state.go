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

package state

import (
	"context"
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/notifications"
	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/helpers/syncutil"
	"github.com/HT32PanelProject/ht32panel-core/pkg/render"
	"github.com/HT32PanelProject/ht32panel-core/pkg/sensors"
)

// Delta carries a settings change from the API into the tick loop. Nil
// fields are left unchanged; the loop applies deltas only at tick
// boundaries so a frame is never rendered with half-applied settings.
type Delta struct {
	Display      *render.DisplayConfig
	Refresh      *time.Duration
	Led          *led.Settings
	NetInterface *string
}

// State holds the runtime state of the panel service.
//
// LOCKING RULES: the mu mutex protects all mutable fields. Never send to
// the notifications channel while holding the lock: lock, modify, copy
// what the payload needs, unlock, then notify.
type State struct {
	ctx           context.Context
	ctxCancelFunc context.CancelFunc
	Notifications chan<- models.Notification
	display       render.DisplayConfig
	ledSettings   led.Settings
	snapshot      sensors.Snapshot
	refresh       time.Duration
	mu            syncutil.RWMutex
	lcdConnected  bool
	ledConnected  bool
}

func NewState() (state *State, notificationCh <-chan models.Notification) {
	// headroom so a slow websocket client cannot stall device loops
	ns := make(chan models.Notification, 100)
	ctx, ctxCancelFunc := context.WithCancel(context.Background())
	return &State{
		Notifications: ns,
		ctx:           ctx,
		ctxCancelFunc: ctxCancelFunc,
	}, ns
}

func (s *State) GetContext() context.Context {
	return s.ctx
}

// Stop cancels the service context, ending the tick and reconnect loops.
func (s *State) Stop() {
	s.ctxCancelFunc()
}

func (s *State) SetDisplay(cfg render.DisplayConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = cfg
}

func (s *State) Display() render.DisplayConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

func (s *State) SetRefresh(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = d
}

func (s *State) Refresh() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *State) SetLedSettings(ls led.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledSettings = ls
}

func (s *State) LedSettings() led.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledSettings
}

func (s *State) SetSnapshot(snap sensors.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
}

func (s *State) Snapshot() sensors.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// SetLCDConnected records the panel link state and notifies subscribers
// when it changes.
func (s *State) SetLCDConnected(connected bool) {
	s.mu.Lock()
	changed := s.lcdConnected != connected
	s.lcdConnected = connected
	var payload models.StatusResponse
	if changed {
		payload = s.statusLocked()
	}
	s.mu.Unlock()

	if changed {
		notifications.DevicesChanged(s.Notifications, payload)
	}
}

// SetLEDConnected records the strip link state and notifies subscribers
// when it changes.
func (s *State) SetLEDConnected(connected bool) {
	s.mu.Lock()
	changed := s.ledConnected != connected
	s.ledConnected = connected
	var payload models.StatusResponse
	if changed {
		payload = s.statusLocked()
	}
	s.mu.Unlock()

	if changed {
		notifications.DevicesChanged(s.Notifications, payload)
	}
}

func (s *State) LCDConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lcdConnected
}

func (s *State) LEDConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledConnected
}

// Status reports a consistent view of the whole service for the API.
func (s *State) Status() models.StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

func (s *State) statusLocked() models.StatusResponse {
	return models.StatusResponse{
		LCDConnected: s.lcdConnected,
		LEDConnected: s.ledConnected,
		Display: models.DisplayStatus{
			Orientation: s.display.Orientation.String(),
			Face:        string(s.display.Face),
			Theme:       string(s.display.Theme),
			RefreshRate: int(s.refresh / time.Second),
		},
		Led: models.LedStatus{
			Effect:    s.ledSettings.Effect.String(),
			Intensity: int(s.ledSettings.Intensity),
			Speed:     int(s.ledSettings.Speed),
		},
		Metrics: models.MetricsStatus{
			Hostname:    s.snapshot.Hostname,
			CPUPercent:  s.snapshot.CPUPercent,
			MemPercent:  s.snapshot.MemPercent,
			DiskPercent: s.snapshot.DiskPercent,
			TempC:       s.snapshot.TempC,
			NetRxBps:    s.snapshot.NetRxBps,
			NetTxBps:    s.snapshot.NetTxBps,
		},
	}
}
