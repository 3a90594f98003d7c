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

// Package service runs the panel daemon: the tick loop that renders
// system metrics to the front panel LCD and animates the LED strip, the
// device session managers, and the local API.
package service

import (
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/api"
	"github.com/HT32PanelProject/ht32panel-core/pkg/config"
	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/lcd"
	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/sensors"
	"github.com/HT32PanelProject/ht32panel-core/pkg/service/state"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Start brings up the daemon and returns a function that shuts it down.
func Start(cfg *config.Instance) (func() error, error) {
	st, ns := state.NewState()
	st.SetDisplay(cfg.DisplayConfig())
	st.SetRefresh(cfg.RefreshInterval())
	st.SetLedSettings(cfg.LedSettings())

	sampler := sensors.NewSampler(cfg.NetInterface(), cfg.DiskPath())

	openLCD := func() (LCDLink, error) {
		dev, err := lcd.Open()
		if err != nil {
			return nil, err
		}
		return dev, nil
	}
	// the path is re-read per attempt so a settings change takes effect
	// on the next reconnect
	openLED := func() (LEDLink, error) {
		dev, err := led.Open(cfg.LedDevice())
		if err != nil {
			return nil, err
		}
		return dev, nil
	}

	sched := NewScheduler(clockwork.NewRealClock(), st, sampler, openLCD, openLED)
	sched.Start()

	go api.Start(cfg, st, sched.Deltas(), ns)

	log.Info().Msg("panel service started")

	return func() error {
		st.Stop()
		select {
		case <-sched.Done():
		case <-time.After(5 * time.Second):
			log.Warn().Msg("scheduler did not stop in time")
		}
		return nil
	}, nil
}
