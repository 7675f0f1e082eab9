// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"time"

	"github.com/relabs-tech/flashlight_controller/internal/controller"
	"github.com/relabs-tech/flashlight_controller/internal/enemy"
	"github.com/relabs-tech/flashlight_controller/internal/energy"
	"github.com/relabs-tech/flashlight_controller/internal/orientation"
	"github.com/relabs-tech/flashlight_controller/internal/signal"
)

// Snapshot is the full game state after one tick, suitable for JSON and MQTT.
type Snapshot struct {
	Time time.Time `json:"time"`
	Tick uint64    `json:"tick"`

	HaveFrame        bool                   `json:"have_frame"` // a line was parsed this tick
	Frame            controller.SensorFrame `json:"frame"`
	Baseline         float64                `json:"baseline"`
	BaselineCaptured bool                   `json:"baseline_captured"`
	Signals          signal.Signals         `json:"signals"`

	Energy energy.State     `json:"energy"`
	Aim    orientation.Pose `json:"aim"`
	Health float64          `json:"health"`

	Rotations  int      `json:"rotations"`      // rotation events this tick
	Hits       []string `json:"hits,omitempty"` // enemy IDs hit this tick
	LEDChanged bool     `json:"led_changed"`

	Enemies []EnemyStatus `json:"enemies"`
}

// EnemyStatus is the externally visible state of one enemy.
type EnemyStatus struct {
	ID        string       `json:"id"`
	State     string       `json:"state"`
	Bearing   float64      `json:"bearing"`
	Position  enemy.Vec3   `json:"position"`
	Params    enemy.Params `json:"params"`
	Collision bool         `json:"collision"`
	Hits      int          `json:"hits"`
}

// Event kinds.
const (
	EventRotation = "rotation"
	EventHit      = "hit"
	EventLED      = "led"
)

// Event is a discrete occurrence published on the events topic.
type Event struct {
	Time    time.Time `json:"time"`
	Kind    string    `json:"kind"`
	EnemyID string    `json:"enemy_id,omitempty"`
	On      bool      `json:"on"`
}

// Events lists the discrete events contained in s.
func (s Snapshot) Events() []Event {
	var events []Event
	for i := 0; i < s.Rotations; i++ {
		events = append(events, Event{Time: s.Time, Kind: EventRotation})
	}
	for _, id := range s.Hits {
		events = append(events, Event{Time: s.Time, Kind: EventHit, EnemyID: id})
	}
	if s.LEDChanged {
		events = append(events, Event{Time: s.Time, Kind: EventLED, On: s.Energy.LED})
	}
	return events
}
