// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package game

import (
	"math"

	"github.com/relabs-tech/flashlight_controller/internal/controller"
	"github.com/relabs-tech/flashlight_controller/internal/signal"
)

// SharedSignalState is the single source of truth for controller input.
// The engine owns it and hands it to each component explicitly.
type SharedSignalState struct {
	Frame            controller.SensorFrame
	HaveFrame        bool // a line was accepted this tick
	Baseline         float64
	BaselineCaptured bool
	Signals          signal.Signals
}

// Player is the damage sink for enemies.
type Player struct {
	Health float64
}

// Damage lowers health, never below zero.
func (p *Player) Damage(amount float64) {
	p.Health = math.Max(p.Health-amount, 0)
}

func (p *Player) Alive() bool { return p.Health > 0 }
