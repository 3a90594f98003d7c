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

// Package notifications wraps state changes into API notification payloads.
package notifications

import "github.com/HT32PanelProject/ht32panel-core/pkg/api/models"

func DevicesChanged(ns chan<- models.Notification, payload models.StatusResponse) {
	ns <- models.Notification{
		Method: models.NotificationDevicesChanged,
		Params: payload,
	}
}

func SettingsChanged(ns chan<- models.Notification) {
	ns <- models.Notification{
		Method: models.NotificationSettingsChanged,
	}
}
