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
	"runtime"

	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models/requests"
	"github.com/HT32PanelProject/ht32panel-core/pkg/config"
	"github.com/rs/zerolog/log"
)

//nolint:gocritic // single-use parameter in API handler
func HandleStatus(env requests.RequestEnv) (any, error) {
	log.Debug().Msg("received status request")
	return env.State.Status(), nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleVersion(_ requests.RequestEnv) (any, error) {
	log.Debug().Msg("received version request")
	return models.VersionResponse{
		Version:  config.AppVersion,
		Platform: runtime.GOOS,
	}, nil
}
