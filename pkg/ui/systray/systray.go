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

// Package systray provides the desktop tray applet for controlling the
// panel daemon.
package systray

import (
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"runtime"

	"fyne.io/systray"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/client"
	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models"
	"github.com/HT32PanelProject/ht32panel-core/pkg/config"
	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/helpers"
	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/render"
	"github.com/rs/zerolog/log"
)

func openCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

func callMethod(cfg *config.Instance, method, params string) {
	if _, err := client.LocalClient(context.Background(), cfg, method, params); err != nil {
		log.Error().Err(err).Str("method", method).Msg("tray api call failed")
	}
}

//nolint:funlen // menu construction is one long linear block
func onReady(cfg *config.Instance, icon []byte) func() {
	return func() {
		if len(icon) > 0 {
			systray.SetIcon(icon)
		}
		if runtime.GOOS != "darwin" {
			systray.SetTitle("HT32 Panel")
		}
		systray.SetTooltip("HT32 Panel")

		mFace := systray.AddMenuItem("Face", "Choose the display face")
		faceItems := make(map[*systray.MenuItem]render.Face)
		for _, f := range render.Faces() {
			faceItems[mFace.AddSubMenuItem(string(f), "")] = f
		}

		mTheme := systray.AddMenuItem("Theme", "Choose the color theme")
		themeItems := make(map[*systray.MenuItem]pixel.Palette)
		for _, p := range pixel.Palettes() {
			themeItems[mTheme.AddSubMenuItem(string(p), "")] = p
		}

		mOrientation := systray.AddMenuItem("Orientation", "Match how the panel is mounted")
		orientationItems := make(map[*systray.MenuItem]render.Orientation)
		for _, o := range render.Orientations() {
			orientationItems[mOrientation.AddSubMenuItem(o.String(), "")] = o
		}

		mLed := systray.AddMenuItem("LED Strip", "Choose the strip effect")
		ledItems := make(map[*systray.MenuItem]led.Effect)
		for _, e := range led.Effects() {
			ledItems[mLed.AddSubMenuItem(e.String(), "")] = e
		}

		systray.AddSeparator()
		mEditConfig := systray.AddMenuItem("Edit Config", "Edit the daemon config file")
		mOpenLog := systray.AddMenuItem("View Log", "View the daemon log file")

		systray.AddSeparator()
		mVersion := systray.AddMenuItem("Version "+config.AppVersion, "")
		mVersion.Disable()

		systray.AddSeparator()
		mQuit := systray.AddMenuItem("Quit", "Quit and stop the panel service")

		clicks := make(chan func())
		register := func(ch <-chan struct{}, fn func()) {
			go func() {
				for range ch {
					clicks <- fn
				}
			}()
		}

		for item, f := range faceItems {
			face := f
			register(item.ClickedCh, func() {
				data, _ := json.Marshal(&models.DisplayFaceParams{Face: string(face)})
				callMethod(cfg, models.MethodDisplayFace, string(data))
			})
		}
		for item, p := range themeItems {
			theme := p
			register(item.ClickedCh, func() {
				data, _ := json.Marshal(&models.DisplayThemeParams{Theme: string(theme)})
				callMethod(cfg, models.MethodDisplayTheme, string(data))
			})
		}
		for item, o := range orientationItems {
			orientation := o
			register(item.ClickedCh, func() {
				data, _ := json.Marshal(&models.DisplayOrientationParams{
					Orientation: orientation.String(),
				})
				callMethod(cfg, models.MethodDisplayOrientation, string(data))
			})
		}
		for item, e := range ledItems {
			effect := e
			register(item.ClickedCh, func() {
				if effect == led.EffectOff {
					callMethod(cfg, models.MethodLedOff, "")
					return
				}
				name := effect.String()
				data, _ := json.Marshal(&models.LedSetParams{Effect: &name})
				callMethod(cfg, models.MethodLedSet, string(data))
			})
		}
		register(mEditConfig.ClickedCh, func() {
			if err := exec.Command(openCommand(), cfg.Path()).Start(); err != nil {
				log.Error().Err(err).Msg("failed to open config file")
			}
		})
		register(mOpenLog.ClickedCh, func() {
			dir, err := helpers.DataDir()
			if err != nil {
				log.Error().Err(err).Msg("failed to resolve data dir")
				return
			}
			logPath := filepath.Join(dir, helpers.LogFile)
			if err := exec.Command(openCommand(), logPath).Start(); err != nil {
				log.Error().Err(err).Msg("failed to open log file")
			}
		})

		go func() {
			for {
				select {
				case fn := <-clicks:
					fn()
				case <-mQuit.ClickedCh:
					systray.Quit()
					return
				}
			}
		}()
	}
}

// Run blocks serving the tray applet until Quit is selected.
func Run(cfg *config.Instance, icon []byte, onExit func()) {
	systray.Run(onReady(cfg, icon), onExit)
}

// Quit closes the tray applet from outside (e.g. on SIGTERM).
func Quit() {
	systray.Quit()
}
