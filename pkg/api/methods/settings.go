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

package methods

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models/requests"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/notifications"
	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/render"
	"github.com/HT32PanelProject/ht32panel-core/pkg/sensors"
	"github.com/HT32PanelProject/ht32panel-core/pkg/service/state"
	"github.com/rs/zerolog/log"
)

//nolint:gocritic // single-use parameter in API handler
func HandleSettings(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings request")

	dc := env.Config.DisplayConfig()
	ls := env.Config.LedSettings()

	// offered so clients can show a picker for the monitored interface
	ifaces, err := sensors.ListInterfaces()
	if err != nil {
		log.Warn().Err(err).Msg("error listing network interfaces")
		ifaces = []string{}
	}

	return models.SettingsResponse{
		Orientation:  dc.Orientation.String(),
		Face:         string(dc.Face),
		Theme:        string(dc.Theme),
		RefreshRate:  int(env.Config.RefreshInterval() / time.Second),
		LedEffect:    ls.Effect.String(),
		LedDevice:    env.Config.LedDevice(),
		LedIntensity: int(ls.Intensity),
		LedSpeed:     int(ls.Speed),
		NetInterface: env.Config.NetInterface(),
		Interfaces:   ifaces,
		DebugLogging: env.Config.DebugLogging(),
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleSettingsUpdate(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings update request")

	if !env.IsLocal {
		return nil, ErrNotAllowed
	}

	if len(env.Params) == 0 {
		return nil, ErrMissingParams
	}

	var params models.UpdateSettingsParams
	if err := json.Unmarshal(env.Params, &params); err != nil {
		return nil, ErrInvalidParams
	}

	var delta state.Delta
	display := env.State.Display()
	displayChanged := false

	if params.Orientation != nil {
		o, ok := render.ParseOrientation(*params.Orientation)
		if !ok {
			return nil, ErrInvalidParams
		}
		log.Info().Str("orientation", o.String()).Msg("update")
		env.Config.SetOrientation(o)
		display.Orientation = o
		displayChanged = true
	}

	if params.Face != nil {
		f, ok := render.ParseFace(*params.Face)
		if !ok {
			return nil, ErrInvalidParams
		}
		log.Info().Str("face", string(f)).Msg("update")
		env.Config.SetFace(f)
		display.Face = f
		displayChanged = true
	}

	if params.Theme != nil {
		p, ok := pixel.ParsePalette(*params.Theme)
		if !ok {
			return nil, ErrInvalidParams
		}
		log.Info().Str("theme", string(p)).Msg("update")
		env.Config.SetTheme(p)
		display.Theme = p
		displayChanged = true
	}

	if displayChanged {
		delta.Display = &display
	}

	if params.RefreshRate != nil {
		if *params.RefreshRate < 1 || *params.RefreshRate > 60 {
			return nil, ErrInvalidParams
		}
		log.Info().Int("refreshRate", *params.RefreshRate).Msg("update")
		env.Config.SetRefreshRate(*params.RefreshRate)
		refresh := env.Config.RefreshInterval()
		delta.Refresh = &refresh
	}

	ledChanged := false
	settings := env.State.LedSettings()

	if params.LedEffect != nil {
		e, ok := led.ParseEffect(*params.LedEffect)
		if !ok {
			return nil, ErrInvalidParams
		}
		log.Info().Str("ledEffect", e.String()).Msg("update")
		settings.Effect = e
		ledChanged = true
	}
	if params.LedIntensity != nil {
		if *params.LedIntensity < 1 || *params.LedIntensity > 5 {
			return nil, ErrInvalidParams
		}
		log.Info().Int("ledIntensity", *params.LedIntensity).Msg("update")
		settings.Intensity = uint8(*params.LedIntensity) //nolint:gosec // range checked
		ledChanged = true
	}
	if params.LedSpeed != nil {
		if *params.LedSpeed < 1 || *params.LedSpeed > 5 {
			return nil, ErrInvalidParams
		}
		log.Info().Int("ledSpeed", *params.LedSpeed).Msg("update")
		settings.Speed = uint8(*params.LedSpeed) //nolint:gosec // range checked
		ledChanged = true
	}

	if ledChanged {
		env.Config.SetLedSettings(settings)
		delta.Led = &settings
	}

	if params.LedDevice != nil {
		log.Info().Str("ledDevice", *params.LedDevice).Msg("update")
		// the running handle is untouched; the next reconnect opens the
		// new path
		env.Config.SetLedDevice(*params.LedDevice)
	}

	if params.NetInterface != nil {
		log.Info().Str("netInterface", *params.NetInterface).Msg("update")
		env.Config.SetNetInterface(*params.NetInterface)
		delta.NetInterface = params.NetInterface
	}

	if params.DebugLogging != nil {
		log.Info().Bool("debugLogging", *params.DebugLogging).Msg("update")
		env.Config.SetDebugLogging(*params.DebugLogging)
	}

	if err := env.Config.Save(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	env.Deltas <- delta
	notifications.SettingsChanged(env.State.Notifications)

	return NoContent{}, nil
}
