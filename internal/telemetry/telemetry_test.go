// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/flashlight_controller/internal/energy"
)

func TestEvents(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := Snapshot{
		Time:       now,
		Rotations:  2,
		Hits:       []string{"a", "b"},
		LEDChanged: true,
		Energy:     energy.State{LED: true},
	}

	events := s.Events()
	require.Len(t, events, 5)
	assert.Equal(t, EventRotation, events[0].Kind)
	assert.Equal(t, EventRotation, events[1].Kind)
	assert.Equal(t, Event{Time: now, Kind: EventHit, EnemyID: "a"}, events[2])
	assert.Equal(t, "b", events[3].EnemyID)
	assert.Equal(t, Event{Time: now, Kind: EventLED, On: true}, events[4])

	assert.Empty(t, Snapshot{}.Events())
}

func TestSnapshotJSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Snapshot{Health: 90, Energy: energy.State{Level: 55}})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, 90.0, m["health"])
	assert.Equal(t, 55.0, m["energy"].(map[string]any)["level"])
	assert.Contains(t, m, "signals")
	assert.NotContains(t, m, "hits", "empty hits omitted")
}

func TestLEDOffEventKeepsOnField(t *testing.T) {
	events := Snapshot{LEDChanged: true}.Events()
	require.Len(t, events, 1)

	b, err := json.Marshal(events[0])
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, EventLED, m["kind"])
	assert.Contains(t, m, "on")
	assert.Equal(t, false, m["on"])
}

func TestThrottle(t *testing.T) {
	th := throttle{interval: 100 * time.Millisecond}
	t0 := time.Unix(1000, 0)

	assert.True(t, th.allow(t0))
	assert.False(t, th.allow(t0.Add(50*time.Millisecond)))
	assert.True(t, th.allow(t0.Add(100*time.Millisecond)))
	assert.False(t, th.allow(t0.Add(150*time.Millisecond)))
	assert.True(t, th.allow(t0.Add(time.Second)))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(Snapshot{}))
	p.Close()
}
