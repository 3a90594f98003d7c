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

// Package cli implements the command line surface shared by all entry
// points: one-shot API calls against a running daemon plus common setup.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/HT32PanelProject/ht32panel-core/pkg/api/client"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models"
	"github.com/HT32PanelProject/ht32panel-core/pkg/config"
	"github.com/HT32PanelProject/ht32panel-core/pkg/helpers"
	"github.com/rs/zerolog/log"
)

type Flags struct {
	Status         *bool
	SetFace        *string
	SetTheme       *string
	SetOrientation *string
	SetLed         *string
	LedOff         *bool
	API            *string
	Version        *bool
}

// SetupFlags defines all common CLI flags between platforms.
func SetupFlags() *Flags {
	return &Flags{
		Status: flag.Bool(
			"status",
			false,
			"print daemon and device status",
		),
		SetFace: flag.String(
			"set-face",
			"",
			"set the display face (ascii, arcs, clocks, digits, professional)",
		),
		SetTheme: flag.String(
			"set-theme",
			"",
			"set the display color theme",
		),
		SetOrientation: flag.String(
			"set-orientation",
			"",
			"set the display orientation (landscape, portrait, ...-flipped)",
		),
		SetLed: flag.String(
			"set-led",
			"",
			"set the led strip, as effect[:intensity[:speed]]",
		),
		LedOff: flag.Bool(
			"led-off",
			false,
			"turn the led strip off",
		),
		API: flag.String(
			"api",
			"",
			"send method and params to API and print response",
		),
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup. Add any custom flags before running this.
func (f *Flags) Pre() {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("HT32 Panel v%s (%s)\n", config.AppVersion, runtime.GOOS)
		os.Exit(0)
	}
}

func call(cfg *config.Instance, method, params string) {
	resp, err := client.LocalClient(context.Background(), cfg, method, params)
	if err != nil {
		log.Error().Err(err).Str("method", method).Msg("api call failed")
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	_, _ = fmt.Println(resp)
	os.Exit(0)
}

func ledParams(arg string) (string, error) {
	parts := strings.Split(arg, ":")
	if len(parts) > 3 {
		return "", fmt.Errorf("too many parts in %q", arg)
	}

	params := models.LedSetParams{}
	if parts[0] != "" {
		params.Effect = &parts[0]
	}
	if len(parts) > 1 {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", fmt.Errorf("bad intensity %q: %w", parts[1], err)
		}
		params.Intensity = &n
	}
	if len(parts) > 2 {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return "", fmt.Errorf("bad speed %q: %w", parts[2], err)
		}
		params.Speed = &n
	}

	data, err := json.Marshal(&params)
	if err != nil {
		return "", fmt.Errorf("encoding params: %w", err)
	}
	return string(data), nil
}

// Post actions all remaining common flags that require the environment
// to be set up. Logging is allowed.
func (f *Flags) Post(cfg *config.Instance) {
	switch {
	case *f.Status:
		call(cfg, models.MethodStatus, "")
	case *f.SetFace != "":
		data, _ := json.Marshal(&models.DisplayFaceParams{Face: *f.SetFace})
		call(cfg, models.MethodDisplayFace, string(data))
	case *f.SetTheme != "":
		data, _ := json.Marshal(&models.DisplayThemeParams{Theme: *f.SetTheme})
		call(cfg, models.MethodDisplayTheme, string(data))
	case *f.SetOrientation != "":
		data, _ := json.Marshal(&models.DisplayOrientationParams{Orientation: *f.SetOrientation})
		call(cfg, models.MethodDisplayOrientation, string(data))
	case *f.SetLed != "":
		params, err := ledParams(*f.SetLed)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		call(cfg, models.MethodLedSet, params)
	case *f.LedOff:
		call(cfg, models.MethodLedOff, "")
	case *f.API != "":
		// raw method:params escape hatch
		method, params, _ := strings.Cut(*f.API, ":")
		call(cfg, method, params)
	}
}

// Setup initializes logging and loads the config instance.
func Setup(defaultConfig config.Values, writers []io.Writer) *config.Instance {
	if err := helpers.InitLogging(writers); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	configDir, err := helpers.ConfigDir()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(configDir, defaultConfig)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	return cfg
}
