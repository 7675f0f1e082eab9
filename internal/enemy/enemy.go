// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package enemy

import (
	"math"

	"github.com/google/uuid"
)

// Arrival distances.
const (
	TargetReach = 0.085
	StartReach  = 0.1

	retreatSpeedFactor = 10.0
)

// State of the movement state machine.
type State int

const (
	Retreating State = iota
	Idle             // retreating and back at start, waiting out the cooldown
	Approaching
	Attacking // approaching and at the target, dealing damage
)

func (s State) String() string {
	switch s {
	case Retreating:
		return "retreating"
	case Idle:
		return "idle"
	case Approaching:
		return "approaching"
	case Attacking:
		return "attacking"
	}
	return "unknown"
}

// Vec3 is a point in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lerp moves t of the way from v to to; t is clamped to [0, 1].
func (v Vec3) Lerp(to Vec3, t float64) Vec3 {
	t = math.Max(0, math.Min(1, t))
	return Vec3{
		X: v.X + (to.X-v.X)*t,
		Y: v.Y + (to.Y-v.Y)*t,
		Z: v.Z + (to.Z-v.Z)*t,
	}
}

func (v Vec3) Distance(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DamageSink receives damage dealt by enemies.
type DamageSink interface {
	Damage(amount float64)
}

// Enemy approaches its target, damages the player once there, and retreats
// to its start when hit. Every hit escalates its parameters.
type Enemy struct {
	ID string

	start    Vec3
	target   Vec3
	position Vec3
	params   Params
	rng      Rand

	movingToTarget bool
	collision      bool
	idleTimer      float64
	damageTimer    float64
	hits           int
}

// New spawns an enemy at start. It begins retreating (already home) with
// collision enabled, so it first waits out its cooldown.
func New(start, target Vec3, r Rand) *Enemy {
	return &Enemy{
		ID:        uuid.NewString(),
		start:     start,
		target:    target,
		position:  start,
		params:    InitialParams(r),
		rng:       r,
		collision: true,
	}
}

func (e *Enemy) Position() Vec3       { return e.position }
func (e *Enemy) Start() Vec3          { return e.start }
func (e *Enemy) Target() Vec3         { return e.target }
func (e *Enemy) Params() Params       { return e.params }
func (e *Enemy) Collision() bool      { return e.collision }
func (e *Enemy) MovingToTarget() bool { return e.movingToTarget }
func (e *Enemy) Hits() int            { return e.hits }

// State derives the current state from movement and position.
func (e *Enemy) State() State {
	if e.movingToTarget {
		if e.position.Distance(e.target) <= TargetReach {
			return Attacking
		}
		return Approaching
	}
	if e.position.Distance(e.start) <= StartReach {
		return Idle
	}
	return Retreating
}

// Update advances the enemy by dt seconds. Damage ticks go to sink.
func (e *Enemy) Update(dt float64, sink DamageSink) {
	if e.movingToTarget {
		e.position = e.position.Lerp(e.target, e.params.Speed*dt)

		if e.position.Distance(e.target) <= TargetReach {
			e.damageTimer += dt
			if e.damageTimer >= e.params.DamageTickPeriod {
				e.damageTimer = 0
				sink.Damage(e.params.DamagePerTick)
			}
		}
		return
	}

	e.position = e.position.Lerp(e.start, e.params.Speed*retreatSpeedFactor*dt)

	if e.position.Distance(e.start) <= StartReach {
		e.idleTimer += dt
		if e.idleTimer >= e.params.Cooldown {
			e.movingToTarget = true
			e.collision = true
			e.idleTimer = 0
		}
	}
}

// Hit sends the enemy back to its start and escalates it. Hits while
// collision is disabled are ignored.
func (e *Enemy) Hit() bool {
	if !e.collision {
		return false
	}
	e.movingToTarget = false
	e.collision = false
	e.params = Escalate(e.params, e.rng)
	e.hits++
	return true
}
