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

// Package models defines the JSON-RPC 2.0 payload types of the local API.
package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	// notifications
	NotificationDevicesChanged  = "devices.changed"
	NotificationSettingsChanged = "settings.changed"
)

const (
	// display
	MethodDisplayOrientation = "display.orientation"
	MethodDisplayFace        = "display.face"
	MethodDisplayTheme       = "display.theme"
	// led
	MethodLedSet = "led.set"
	MethodLedOff = "led.off"
	// settings
	MethodSettings       = "settings"
	MethodSettingsUpdate = "settings.update"
	// utils
	MethodStatus  = "status"
	MethodVersion = "version"
)

type Notification struct {
	Params any    `json:"params,omitempty"`
	Method string `json:"method"`
}

type RequestObject struct {
	ID      *uuid.UUID      `json:"id,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
}

type ErrorObject struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseObject struct {
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
}

type DisplayOrientationParams struct {
	Orientation string `json:"orientation"`
}

type DisplayFaceParams struct {
	Face string `json:"face"`
}

type DisplayThemeParams struct {
	Theme string `json:"theme"`
}

type LedSetParams struct {
	Effect    *string `json:"effect,omitempty"`
	Intensity *int    `json:"intensity,omitempty"`
	Speed     *int    `json:"speed,omitempty"`
}

type DisplayStatus struct {
	Orientation string `json:"orientation"`
	Face        string `json:"face"`
	Theme       string `json:"theme"`
	RefreshRate int    `json:"refreshRate"`
}

type LedStatus struct {
	Effect    string `json:"effect"`
	Intensity int    `json:"intensity"`
	Speed     int    `json:"speed"`
}

type MetricsStatus struct {
	Hostname    string  `json:"hostname"`
	CPUPercent  float64 `json:"cpuPercent"`
	MemPercent  float64 `json:"memPercent"`
	DiskPercent float64 `json:"diskPercent"`
	TempC       float64 `json:"tempC"`
	NetRxBps    uint64  `json:"netRxBps"`
	NetTxBps    uint64  `json:"netTxBps"`
}

type StatusResponse struct {
	Display      DisplayStatus `json:"display"`
	Metrics      MetricsStatus `json:"metrics"`
	Led          LedStatus     `json:"led"`
	LCDConnected bool          `json:"lcdConnected"`
	LEDConnected bool          `json:"ledConnected"`
}

type SettingsResponse struct {
	Orientation  string   `json:"orientation"`
	Face         string   `json:"face"`
	Theme        string   `json:"theme"`
	LedEffect    string   `json:"ledEffect"`
	LedDevice    string   `json:"ledDevice"`
	NetInterface string   `json:"netInterface"`
	Interfaces   []string `json:"interfaces"`
	RefreshRate  int      `json:"refreshRate"`
	LedIntensity int      `json:"ledIntensity"`
	LedSpeed     int      `json:"ledSpeed"`
	DebugLogging bool     `json:"debugLogging"`
}

type UpdateSettingsParams struct {
	Orientation  *string `json:"orientation,omitempty"`
	Face         *string `json:"face,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	RefreshRate  *int    `json:"refreshRate,omitempty"`
	LedEffect    *string `json:"ledEffect,omitempty"`
	LedDevice    *string `json:"ledDevice,omitempty"`
	LedIntensity *int    `json:"ledIntensity,omitempty"`
	LedSpeed     *int    `json:"ledSpeed,omitempty"`
	NetInterface *string `json:"netInterface,omitempty"`
	DebugLogging *bool   `json:"debugLogging,omitempty"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}
