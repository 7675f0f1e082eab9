// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/flashlight_controller/internal/config"
	"github.com/relabs-tech/flashlight_controller/internal/energy"
	"github.com/relabs-tech/flashlight_controller/internal/telemetry"
)

// lineSlice replays lines, one per call, then reports no frame.
type lineSlice []string

func (l *lineSlice) NextLine() (string, bool) {
	if len(*l) == 0 {
		return "", false
	}
	line := (*l)[0]
	*l = (*l)[1:]
	return line, true
}

func TestRunConsolePrintsTicks(t *testing.T) {
	cfg := config.Default()
	cfg.EnemyCount = 0
	engine := newEngine(cfg, nil)

	src := &lineSlice{"2.3|2.3|0|100|100|100", "2.3|2.3|0|100|400|100"}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, runConsole(ctx, &out, src, engine, 5*time.Millisecond))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "[TICK     1]"))
	assert.Contains(t, lines[1], "on=true")
}

func TestPrintEvents(t *testing.T) {
	var out bytes.Buffer
	printSnapshot(&out, telemetry.Snapshot{
		Tick:       3,
		Rotations:  1,
		Hits:       []string{"e1"},
		LEDChanged: true,
		Energy:     energy.State{LED: true},
	})

	s := out.String()
	assert.Contains(t, s, "[TICK     3]")
	assert.Contains(t, s, "[EVENT] stick rotation")
	assert.Contains(t, s, "[EVENT] enemy e1 hit")
	assert.Contains(t, s, "[EVENT] energy LED on=true")
}

func countOn(img *image1bit.VerticalLSB) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.At(x, y) == image1bit.On {
				n++
			}
		}
	}
	return n
}

func TestRenderStatus(t *testing.T) {
	waiting := renderStatus(telemetry.Snapshot{}, false)
	assert.Greater(t, countOn(waiting), 0)
	assert.Equal(t, image1bit.Off, waiting.At(5, barTop+3))

	full := renderStatus(telemetry.Snapshot{Energy: energy.State{Level: 100}, Health: 100}, true)
	empty := renderStatus(telemetry.Snapshot{Energy: energy.State{Level: 0}, Health: 100}, true)

	assert.Equal(t, image1bit.On, full.At(displayW-2, barTop+3))
	assert.Equal(t, image1bit.Off, empty.At(5, barTop+3))
	assert.Equal(t, image1bit.On, empty.At(0, barTop+3))
	assert.Greater(t, countOn(full), countOn(empty))
}

func TestDisplayData(t *testing.T) {
	var d DisplayData
	_, have := d.get()
	assert.False(t, have)

	d.set(telemetry.Snapshot{Tick: 9})
	s, have := d.get()
	assert.True(t, have)
	assert.Equal(t, uint64(9), s.Tick)
}

func TestNewRandIsSeeded(t *testing.T) {
	a, b := newRand(42), newRand(42)
	assert.Equal(t, a.Float64(), b.Float64())
}
