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

// Package config loads, validates and persists the daemon's settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HT32PanelProject/ht32panel-core/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "HT32PANEL_CFG"
	CfgFile       = "config.toml"
)

type Values struct {
	Display      Display `toml:"display"`
	Led          Led     `toml:"led"`
	Service      Service `toml:"service,omitempty"`
	Sensors      Sensors `toml:"sensors,omitempty"`
	ConfigSchema int     `toml:"config_schema"`
	DebugLogging bool    `toml:"debug_logging"`
}

type Display struct {
	Orientation string `toml:"orientation"`
	Face        string `toml:"face"`
	Theme       string `toml:"theme"`
	RefreshRate int    `toml:"refresh_rate"`
}

type Led struct {
	Device    string `toml:"device"`
	Effect    string `toml:"effect"`
	Intensity int    `toml:"intensity"`
	Speed     int    `toml:"speed"`
}

type Service struct {
	APIPort int `toml:"api_port,omitempty"`
}

type Sensors struct {
	NetInterface string `toml:"net_interface,omitempty"`
	DiskPath     string `toml:"disk_path,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Display: Display{
		Orientation: "landscape",
		Face:        "professional",
		Theme:       "ember",
		RefreshRate: 1,
	},
	Led: Led{
		Device:    "/dev/ttyUSB0",
		Effect:    "rainbow",
		Intensity: 3,
		Speed:     3,
	},
	Service: Service{
		APIPort: 7497,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

//nolint:gocritic // defaults copied on purpose
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		if mkErr := os.MkdirAll(filepath.Dir(cfgPath), 0o750); mkErr != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", mkErr)
		}
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, saveErr
		}
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errNoConfigPath
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	newVals := c.defaults
	if err := toml.Unmarshal(data, &newVals); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Warn().Msgf(
			"config schema mismatch: disk has %d, supported is %d",
			newVals.ConfigSchema, SchemaVersion,
		)
	}

	c.sanitize(&newVals)
	c.vals = newVals

	c.applyLogLevel()

	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked()
}

func (c *Instance) saveLocked() error {
	if c.cfgPath == "" {
		return errNoConfigPath
	}

	log.Debug().Msg("saving config to disk")

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

var errNoConfigPath = fmt.Errorf("config path not set")

// sanitize clamps out-of-range numeric values back to their defaults so a
// hand-edited file cannot push invalid settings into the device loops.
func (c *Instance) sanitize(v *Values) {
	if v.Display.RefreshRate < 1 || v.Display.RefreshRate > 60 {
		log.Warn().Msgf(
			"invalid display refresh rate %d, using %d",
			v.Display.RefreshRate, c.defaults.Display.RefreshRate,
		)
		v.Display.RefreshRate = c.defaults.Display.RefreshRate
	}
	v.Led.Intensity = clampRange(v.Led.Intensity, 1, 5)
	v.Led.Speed = clampRange(v.Led.Speed, 1, 5)
	if v.Service.APIPort <= 0 || v.Service.APIPort > 65535 {
		v.Service.APIPort = c.defaults.Service.APIPort
	}
}

func clampRange(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func (c *Instance) applyLogLevel() {
	if c.vals.DebugLogging {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Path returns the config file location.
func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
	c.applyLogLevel()
}

func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Service.APIPort
}

func (c *Instance) NetInterface() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Sensors.NetInterface
}

func (c *Instance) SetNetInterface(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Sensors.NetInterface = name
}

func (c *Instance) DiskPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Sensors.DiskPath == "" {
		return "/"
	}
	return c.vals.Sensors.DiskPath
}

func (c *Instance) LedDevice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Led.Device
}

func (c *Instance) SetLedDevice(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Led.Device = path
}
