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
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/render"
	"github.com/rs/zerolog/log"
)

// DisplayConfig resolves the display section into renderer types, falling
// back to defaults for values that no longer parse.
func (c *Instance) DisplayConfig() render.DisplayConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	o, ok := render.ParseOrientation(c.vals.Display.Orientation)
	if !ok {
		log.Warn().Msgf("unknown orientation %q, using landscape", c.vals.Display.Orientation)
		o = render.Landscape
	}
	f, ok := render.ParseFace(c.vals.Display.Face)
	if !ok {
		log.Warn().Msgf("unknown face %q, using default", c.vals.Display.Face)
		f = render.FaceProfessional
	}
	p, ok := pixel.ParsePalette(c.vals.Display.Theme)
	if !ok {
		log.Warn().Msgf("unknown theme %q, using default", c.vals.Display.Theme)
		p = pixel.DefaultPalette
	}

	return render.DisplayConfig{
		Theme:       p,
		Face:        f,
		Orientation: o,
	}
}

func (c *Instance) SetOrientation(o render.Orientation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Display.Orientation = o.String()
}

func (c *Instance) SetFace(f render.Face) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Display.Face = string(f)
}

func (c *Instance) SetTheme(p pixel.Palette) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Display.Theme = string(p)
}

// RefreshInterval returns the display redraw cadence.
func (c *Instance) RefreshInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rate := c.vals.Display.RefreshRate
	if rate < 1 || rate > 60 {
		rate = c.defaults.Display.RefreshRate
	}
	return time.Duration(rate) * time.Second
}

func (c *Instance) SetRefreshRate(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Display.RefreshRate = clampRange(seconds, 1, 60)
}

// LedSettings resolves the led section into strip settings. Unknown effect
// names fall back to off so a bad config never leaves the strip animating
// something unintended.
func (c *Instance) LedSettings() led.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := led.ParseEffect(c.vals.Led.Effect)
	if !ok {
		log.Warn().Msgf("unknown led effect %q, turning strip off", c.vals.Led.Effect)
		e = led.EffectOff
	}

	s := led.Settings{
		Effect:    e,
		Intensity: uint8(clampRange(c.vals.Led.Intensity, 1, 5)), //nolint:gosec // clamped
		Speed:     uint8(clampRange(c.vals.Led.Speed, 1, 5)),     //nolint:gosec // clamped
	}
	return s
}

func (c *Instance) SetLedSettings(s led.Settings) {
	s.Clamp()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Led.Effect = s.Effect.String()
	c.vals.Led.Intensity = int(s.Intensity)
	c.vals.Led.Speed = int(s.Speed)
}
