// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package energy

import (
	"math"

	"github.com/relabs-tech/flashlight_controller/internal/signal"
)

// Config holds the tuning constants of the flashlight energy budget.
type Config struct {
	TriggerBuffer  float64 // a signal must exceed this to switch the light on
	DrainPeriod    float64 // seconds of on-time per drain step
	DrainAmount    float64
	RechargeAmount float64 // per stick rotation
	MaxLevel       float64
	IntensityStep  float64 // per tick
	MaxIntensity   float64
}

// DefaultConfig returns the values the controller was tuned with.
func DefaultConfig() Config {
	return Config{
		TriggerBuffer:  0.22,
		DrainPeriod:    0.75,
		DrainAmount:    5.0,
		RechargeAmount: 10.0,
		MaxLevel:       100.0,
		IntensityStep:  0.5,
		MaxIntensity:   2.0,
	}
}

// State is the output of one Update.
type State struct {
	Level     float64 `json:"level"`
	On        bool    `json:"on"`
	LED       bool    `json:"led"` // energy fully drained
	Intensity float64 `json:"intensity"`
}

// Economy drains energy while the flashlight is lit and refills it on stick
// rotations. It is not safe for concurrent use.
type Economy struct {
	cfg         Config
	level       float64
	accumulator float64
	on          bool
	intensity   float64
}

// New returns an economy with a full energy level.
func New(cfg Config) *Economy {
	return &Economy{cfg: cfg, level: cfg.MaxLevel}
}

// Update advances the economy by dt seconds given the current signals.
// The light is on while any signal exceeds the trigger buffer and energy
// remains. On-time accumulates towards the drain period; a partially
// filled accumulator carries over while the light is off.
func (e *Economy) Update(s signal.Signals, dt float64) State {
	e.on = s.AnyAbove(e.cfg.TriggerBuffer) && e.level > 0

	if e.on {
		e.accumulator += dt
		e.intensity = math.Min(e.intensity+e.cfg.IntensityStep, e.cfg.MaxIntensity)
	} else {
		e.intensity = math.Max(e.intensity-e.cfg.IntensityStep, 0)
	}

	if e.accumulator >= e.cfg.DrainPeriod {
		e.level = math.Max(e.level-e.cfg.DrainAmount, 0)
		e.accumulator = 0
	}

	return e.State()
}

// Recharge adds one rotation's worth of energy, capped at the maximum.
func (e *Economy) Recharge() {
	e.level = math.Min(e.level+e.cfg.RechargeAmount, e.cfg.MaxLevel)
}

// State returns the current state without advancing time.
func (e *Economy) State() State {
	return State{
		Level:     e.level,
		On:        e.on,
		LED:       e.level <= 0,
		Intensity: e.intensity,
	}
}
