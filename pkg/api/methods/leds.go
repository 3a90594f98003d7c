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

	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models/requests"
	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/service/state"
	"github.com/rs/zerolog/log"
)

//nolint:gocritic // single-use parameter in API handler
func HandleLedSet(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received led set request")

	if len(env.Params) == 0 {
		return nil, ErrMissingParams
	}

	var params models.LedSetParams
	if err := json.Unmarshal(env.Params, &params); err != nil {
		return nil, ErrInvalidParams
	}

	settings := env.State.LedSettings()

	if params.Effect != nil {
		e, ok := led.ParseEffect(*params.Effect)
		if !ok {
			return nil, ErrInvalidParams
		}
		settings.Effect = e
	}
	if params.Intensity != nil {
		if *params.Intensity < 1 || *params.Intensity > 5 {
			return nil, ErrInvalidParams
		}
		settings.Intensity = uint8(*params.Intensity) //nolint:gosec // range checked
	}
	if params.Speed != nil {
		if *params.Speed < 1 || *params.Speed > 5 {
			return nil, ErrInvalidParams
		}
		settings.Speed = uint8(*params.Speed) //nolint:gosec // range checked
	}

	env.Config.SetLedSettings(settings)
	if err := env.Config.Save(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	env.Deltas <- state.Delta{Led: &settings}

	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleLedOff(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received led off request")

	settings := env.State.LedSettings()
	settings.Effect = led.EffectOff

	env.Config.SetLedSettings(settings)
	if err := env.Config.Save(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	env.Deltas <- state.Delta{Led: &settings}

	return NoContent{}, nil
}
