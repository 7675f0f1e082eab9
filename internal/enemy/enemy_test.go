// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package enemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type damageRecorder struct {
	calls []float64
}

func (d *damageRecorder) Damage(amount float64) { d.calls = append(d.calls, amount) }

var (
	home = Vec3{X: 0, Y: 0, Z: 10}
	goal = Vec3{X: 0, Y: 0, Z: 1}
)

// runUntil advances e in dt steps until cond holds or the step budget runs out.
func runUntil(e *Enemy, dt float64, sink DamageSink, cond func() bool) int {
	for i := 0; i < 100000; i++ {
		if cond() {
			return i
		}
		e.Update(dt, sink)
	}
	return -1
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -4, 2}
	assert.Equal(t, Vec3{5, -2, 1}, a.Lerp(b, 0.5))
	assert.Equal(t, b, a.Lerp(b, 3), "t clamps at 1")
	assert.Equal(t, a, a.Lerp(b, -1), "t clamps at 0")
	assert.InDelta(t, 5.0, Vec3{3, 4, 0}.Distance(Vec3{}), 1e-9)
}

func TestNewEnemyStartsIdleAtHome(t *testing.T) {
	e := New(home, goal, fixedRand(0))

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, Idle, e.State())
	assert.True(t, e.Collision())
	assert.False(t, e.MovingToTarget())
	assert.Equal(t, home, e.Position())

	other := New(home, goal, fixedRand(0))
	assert.NotEqual(t, e.ID, other.ID)
}

func TestCooldownThenApproach(t *testing.T) {
	e := New(home, goal, fixedRand(0)) // cooldown 2s
	sink := &damageRecorder{}

	e.Update(1, sink)
	assert.False(t, e.MovingToTarget())
	e.Update(1, sink)
	assert.True(t, e.MovingToTarget())
	assert.True(t, e.Collision())
}

func TestApproachIsExponentialDecay(t *testing.T) {
	e := New(home, goal, fixedRand(0))
	sink := &damageRecorder{}
	e.Update(2, sink)
	require.True(t, e.MovingToTarget())

	d0 := e.Position().Distance(goal)
	e.Update(1, sink)
	d1 := e.Position().Distance(goal)
	e.Update(1, sink)
	d2 := e.Position().Distance(goal)

	assert.InDelta(t, d0*(1-0.07), d1, 1e-9)
	assert.Greater(t, d0-d1, d1-d2, "moves faster far from the target")
}

func TestDamageTicksAtTarget(t *testing.T) {
	e := New(home, goal, fixedRand(0))
	sink := &damageRecorder{}

	steps := runUntil(e, 0.1, sink, func() bool { return e.State() == Attacking })
	require.GreaterOrEqual(t, steps, 0)
	require.Empty(t, sink.calls)

	// the arrival tick already counted 0.1s; 3.0s period means 29 more ticks
	for i := 0; i < 28; i++ {
		e.Update(0.1, sink)
	}
	assert.Empty(t, sink.calls)
	for i := 0; i < 2 && len(sink.calls) == 0; i++ {
		e.Update(0.1, sink)
	}
	require.Len(t, sink.calls, 1)
	assert.Equal(t, InitialDamagePerTick, sink.calls[0])

	// stays at the target dealing damage until hit
	for i := 0; i < 300; i++ {
		e.Update(0.1, sink)
	}
	assert.Equal(t, Attacking, e.State())
	assert.GreaterOrEqual(t, len(sink.calls), 10)
}

func TestHitRetreatsAndEscalates(t *testing.T) {
	e := New(home, goal, fixedRand(0))
	sink := &damageRecorder{}
	require.GreaterOrEqual(t, runUntil(e, 0.1, sink, func() bool { return e.State() == Attacking }), 0)

	before := e.Params()
	require.True(t, e.Hit())
	assert.Equal(t, Retreating, e.State())
	assert.False(t, e.Collision())
	assert.Equal(t, 1, e.Hits())
	assert.Greater(t, e.Params().DamagePerTick, before.DamagePerTick)
	assert.Less(t, e.Params().DamageTickPeriod, before.DamageTickPeriod)

	assert.False(t, e.Hit(), "no collision while retreating")
	assert.Equal(t, 1, e.Hits())

	// retreat is ten times faster than the approach
	e.Update(0.1, sink)
	moved := goal.Distance(e.Position())
	assert.InDelta(t, 9*e.Params().Speed*10*0.1, moved, 0.2)

	require.GreaterOrEqual(t, runUntil(e, 0.1, sink, func() bool { return e.State() == Idle }), 0)
	assert.False(t, e.Collision())

	// cooldown 2 - 0.25 = 1.75s at start, then back on the attack
	require.GreaterOrEqual(t, runUntil(e, 0.1, sink, e.MovingToTarget), 0)
	assert.True(t, e.Collision())
	assert.Equal(t, Approaching, e.State())
}

func TestHitWhileIdleAtStart(t *testing.T) {
	e := New(home, goal, fixedRand(0))
	require.True(t, e.Hit())
	assert.Equal(t, Idle, e.State())
	assert.False(t, e.Collision())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "retreating", Retreating.String())
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "approaching", Approaching.String())
	assert.Equal(t, "attacking", Attacking.String())
	assert.Equal(t, "unknown", State(42).String())
}
