// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package enemy

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedRand always returns the same draw.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestRangeAcceptsEitherOrder(t *testing.T) {
	assert.Equal(t, 0.5, Range(fixedRand(0), 1.2, 0.5))
	assert.Equal(t, 0.5, Range(fixedRand(0), 0.5, 1.2))
	assert.InDelta(t, 0.85, Range(fixedRand(0.5), 1.2, 0.5), 1e-9)
	assert.InDelta(t, 0.85, Range(fixedRand(0.5), 0.5, 1.2), 1e-9)
}

func TestInitialParams(t *testing.T) {
	p := InitialParams(fixedRand(0))
	assert.Equal(t, Params{Speed: 0.07, Cooldown: 2, DamageTickPeriod: 3, DamagePerTick: 0.25}, p)

	p = InitialParams(fixedRand(0.5))
	assert.InDelta(t, 0.125, p.Speed, 1e-9)
	assert.InDelta(t, 4.5, p.Cooldown, 1e-9)
}

func TestEscalateOneHit(t *testing.T) {
	before := InitialParams(fixedRand(0.5))
	after := Escalate(before, fixedRand(0.5))

	assert.InDelta(t, before.Speed+0.025, after.Speed, 1e-9)
	assert.InDelta(t, before.Cooldown-0.625, after.Cooldown, 1e-9)
	assert.InDelta(t, before.DamagePerTick+0.325, after.DamagePerTick, 1e-9)
	assert.InDelta(t, before.DamageTickPeriod-0.075, after.DamageTickPeriod, 1e-9)

	assert.Greater(t, after.DamagePerTick, before.DamagePerTick)
	assert.Less(t, after.DamageTickPeriod, before.DamageTickPeriod)
	assert.Greater(t, after.Speed, before.Speed)
}

func TestEscalateMonotonicWithRandomDraws(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	p := InitialParams(r)

	for i := 0; i < 200; i++ {
		next := Escalate(p, r)

		assert.Greater(t, next.Speed, p.Speed)
		if p.DamagePerTick < MaxDamagePerTick {
			assert.Greater(t, next.DamagePerTick, p.DamagePerTick)
		}
		assert.LessOrEqual(t, next.DamagePerTick, MaxDamagePerTick)
		if p.DamageTickPeriod > MinDamageTickPeriod {
			assert.Less(t, next.DamageTickPeriod, p.DamageTickPeriod)
		} else {
			assert.Equal(t, MinDamageTickPeriod, next.DamageTickPeriod)
		}
		assert.GreaterOrEqual(t, next.DamageTickPeriod, MinDamageTickPeriod)

		p = next
	}
}

func TestEscalateSaturates(t *testing.T) {
	p := InitialParams(fixedRand(1))
	for i := 0; i < 100; i++ {
		p = Escalate(p, fixedRand(1))
	}
	assert.Equal(t, MaxDamagePerTick, p.DamagePerTick)
	assert.Equal(t, MinDamageTickPeriod, p.DamageTickPeriod)

	p = Escalate(p, fixedRand(1))
	assert.Equal(t, MaxDamagePerTick, p.DamagePerTick)
}

func TestCooldownRerollRange(t *testing.T) {
	// 1.2 - 0.25 = 0.95 drops below the reroll threshold; a draw of 0
	// lands on the low end of [0.5, 1.2]
	p := Escalate(Params{Cooldown: 1.2, DamageTickPeriod: 3}, fixedRand(0))
	assert.Equal(t, 0.5, p.Cooldown)

	// exactly at the threshold also rerolls
	p = Escalate(Params{Cooldown: 1.25, DamageTickPeriod: 3}, fixedRand(0))
	assert.Equal(t, 0.5, p.Cooldown)

	// just above the threshold keeps the reduced value
	p = Escalate(Params{Cooldown: 1.5, DamageTickPeriod: 3}, fixedRand(0))
	assert.InDelta(t, 1.25, p.Cooldown, 1e-9)

	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 500; i++ {
		p = Escalate(Params{Cooldown: 0.9, DamageTickPeriod: 3}, r)
		assert.GreaterOrEqual(t, p.Cooldown, 0.5)
		assert.Less(t, p.Cooldown, 1.2)
	}
}

func TestCooldownRerollMayLengthen(t *testing.T) {
	// the reroll can raise the cooldown above its pre-hit value
	p := Escalate(Params{Cooldown: 0.6, DamageTickPeriod: 3}, fixedRand(0.99))
	assert.Greater(t, p.Cooldown, 0.6)
}
