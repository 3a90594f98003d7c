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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, CfgFile))
	assert.Equal(t, time.Second, cfg.RefreshInterval())
	assert.Equal(t, BaseDefaults.Service.APIPort, cfg.APIPort())

	dc := cfg.DisplayConfig()
	assert.Equal(t, render.Landscape, dc.Orientation)
	assert.Equal(t, render.FaceProfessional, dc.Face)
	assert.Equal(t, pixel.PaletteEmber, dc.Theme)
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	cfg.SetOrientation(render.Portrait)
	cfg.SetFace(render.FaceClocks)
	cfg.SetTheme(pixel.PaletteNord)
	cfg.SetLedSettings(led.Settings{Effect: led.EffectBreathing, Intensity: 2, Speed: 4})
	cfg.SetRefreshRate(5)
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	dc := reloaded.DisplayConfig()
	assert.Equal(t, render.Portrait, dc.Orientation)
	assert.Equal(t, render.FaceClocks, dc.Face)
	assert.Equal(t, pixel.PaletteNord, dc.Theme)
	assert.Equal(t, 5*time.Second, reloaded.RefreshInterval())

	ls := reloaded.LedSettings()
	assert.Equal(t, led.EffectBreathing, ls.Effect)
	assert.EqualValues(t, 2, ls.Intensity)
	assert.EqualValues(t, 4, ls.Speed)
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, CfgFile)

	raw := `
config_schema = 1

[display]
orientation = "landscape"
face = "ascii"
theme = "nord"
refresh_rate = 999

[led]
device = "/dev/ttyUSB0"
effect = "rainbow"
intensity = 9
speed = 0

[service]
api_port = -1
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.RefreshInterval())
	assert.Equal(t, BaseDefaults.Service.APIPort, cfg.APIPort())

	ls := cfg.LedSettings()
	assert.EqualValues(t, 5, ls.Intensity)
	assert.EqualValues(t, 1, ls.Speed)
}

func TestUnknownNamesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, CfgFile)

	raw := `
config_schema = 1

[display]
orientation = "diagonal"
face = "cuckoo"
theme = "hotdog-stand"
refresh_rate = 2

[led]
device = "/dev/ttyUSB0"
effect = "disco"
intensity = 3
speed = 3
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	dc := cfg.DisplayConfig()
	assert.Equal(t, render.Landscape, dc.Orientation)
	assert.Equal(t, render.FaceProfessional, dc.Face)
	assert.Equal(t, pixel.DefaultPalette, dc.Theme)

	assert.Equal(t, led.EffectOff, cfg.LedSettings().Effect)
}

func TestCfgEnvOverridesPath(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "elsewhere", "panel.toml")
	t.Setenv(CfgEnv, custom)

	cfg, err := NewConfig(t.TempDir(), BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, custom, cfg.Path())
	assert.FileExists(t, custom)
}
