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

// Package requests defines the environment handed to API method handlers.
package requests

import (
	"github.com/HT32PanelProject/ht32panel-core/pkg/config"
	"github.com/HT32PanelProject/ht32panel-core/pkg/service/state"
	"github.com/google/uuid"
)

// RequestEnv gives a method handler everything it may touch. Settings
// changes go through Deltas so the tick loop applies them at a tick
// boundary; handlers never write to a device directly.
type RequestEnv struct {
	Config  *config.Instance
	State   *state.State
	Deltas  chan<- state.Delta
	Params  []byte
	ID      uuid.UUID
	IsLocal bool
}
