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

// Package methods implements the JSON-RPC method handlers of the local
// API.
package methods

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models/requests"
	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/render"
	"github.com/HT32PanelProject/ht32panel-core/pkg/service/state"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingParams = errors.New("missing params")
	ErrInvalidParams = errors.New("invalid params")
	ErrNotAllowed    = errors.New("not allowed from remote")
)

// NoContent is the result payload of methods with nothing to report.
type NoContent struct{}

//nolint:gocritic // single-use parameter in API handler
func HandleDisplayOrientation(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received display orientation request")

	if len(env.Params) == 0 {
		return nil, ErrMissingParams
	}

	var params models.DisplayOrientationParams
	if err := json.Unmarshal(env.Params, &params); err != nil {
		return nil, ErrInvalidParams
	}

	o, ok := render.ParseOrientation(params.Orientation)
	if !ok {
		return nil, ErrInvalidParams
	}

	env.Config.SetOrientation(o)
	if err := env.Config.Save(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	dc := env.State.Display()
	dc.Orientation = o
	env.Deltas <- state.Delta{Display: &dc}

	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleDisplayFace(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received display face request")

	if len(env.Params) == 0 {
		return nil, ErrMissingParams
	}

	var params models.DisplayFaceParams
	if err := json.Unmarshal(env.Params, &params); err != nil {
		return nil, ErrInvalidParams
	}

	f, ok := render.ParseFace(params.Face)
	if !ok {
		return nil, ErrInvalidParams
	}

	env.Config.SetFace(f)
	if err := env.Config.Save(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	dc := env.State.Display()
	dc.Face = f
	env.Deltas <- state.Delta{Display: &dc}

	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleDisplayTheme(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received display theme request")

	if len(env.Params) == 0 {
		return nil, ErrMissingParams
	}

	var params models.DisplayThemeParams
	if err := json.Unmarshal(env.Params, &params); err != nil {
		return nil, ErrInvalidParams
	}

	p, ok := pixel.ParsePalette(params.Theme)
	if !ok {
		return nil, ErrInvalidParams
	}

	env.Config.SetTheme(p)
	if err := env.Config.Save(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	dc := env.State.Display()
	dc.Theme = p
	env.Deltas <- state.Delta{Display: &dc}

	return NoContent{}, nil
}
