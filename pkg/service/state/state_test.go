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

package state

import (
	"testing"
	"time"

	"github.com/HT32PanelProject/ht32panel-core/pkg/api/models"
	"github.com/HT32PanelProject/ht32panel-core/pkg/devices/led"
	"github.com/HT32PanelProject/ht32panel-core/pkg/pixel"
	"github.com/HT32PanelProject/ht32panel-core/pkg/render"
	"github.com/HT32PanelProject/ht32panel-core/pkg/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusReflectsSettings(t *testing.T) {
	t.Parallel()

	st, _ := NewState()
	st.SetDisplay(render.DisplayConfig{
		Theme:       pixel.PaletteNord,
		Face:        render.FaceArcs,
		Orientation: render.Portrait,
	})
	st.SetRefresh(2 * time.Second)
	st.SetLedSettings(led.Settings{Effect: led.EffectBreathing, Intensity: 2, Speed: 4})

	status := st.Status()
	assert.Equal(t, "portrait", status.Display.Orientation)
	assert.Equal(t, "arcs", status.Display.Face)
	assert.Equal(t, "nord", status.Display.Theme)
	assert.Equal(t, 2, status.Display.RefreshRate)
	assert.Equal(t, "breathing", status.Led.Effect)
	assert.False(t, status.LCDConnected)
	assert.False(t, status.LEDConnected)
}

func TestStatusCarriesMetricsSnapshot(t *testing.T) {
	t.Parallel()

	st, _ := NewState()
	st.SetSnapshot(sensors.Snapshot{
		Hostname:   "panelbox",
		CPUPercent: 42.5,
		TempC:      61.25,
		NetRxBps:   1_500_000,
		NetTxBps:   250_000,
	})

	metrics := st.Status().Metrics
	assert.Equal(t, "panelbox", metrics.Hostname)
	assert.InDelta(t, 42.5, metrics.CPUPercent, 1e-9)
	assert.InDelta(t, 61.25, metrics.TempC, 1e-9)
	assert.EqualValues(t, 1_500_000, metrics.NetRxBps)
	assert.EqualValues(t, 250_000, metrics.NetTxBps)
}

func TestConnectionChangeNotifies(t *testing.T) {
	t.Parallel()

	st, ns := NewState()

	st.SetLCDConnected(true)
	notif := <-ns
	assert.Equal(t, models.NotificationDevicesChanged, notif.Method)
	payload, ok := notif.Params.(models.StatusResponse)
	require.True(t, ok)
	assert.True(t, payload.LCDConnected)

	// no change, no notification
	st.SetLCDConnected(true)
	select {
	case notif := <-ns:
		t.Fatalf("unexpected notification: %v", notif)
	default:
	}

	st.SetLCDConnected(false)
	notif = <-ns
	payload, ok = notif.Params.(models.StatusResponse)
	require.True(t, ok)
	assert.False(t, payload.LCDConnected)
}

func TestStopCancelsContext(t *testing.T) {
	t.Parallel()

	st, _ := NewState()
	select {
	case <-st.GetContext().Done():
		t.Fatal("context done before Stop")
	default:
	}

	st.Stop()

	select {
	case <-st.GetContext().Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled by Stop")
	}
}
