// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package enemy

import "math"

// Params are the aggression parameters of one enemy.
type Params struct {
	Speed            float64 `json:"speed"`              // interpolation rate towards the target, 1/s
	Cooldown         float64 `json:"cooldown"`           // seconds idle at start after a hit
	DamageTickPeriod float64 `json:"damage_tick_period"` // seconds between damage ticks
	DamagePerTick    float64 `json:"damage_per_tick"`
}

// Rand is the random source used for initial values and escalation.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Range returns a value in [min(a,b), max(a,b)). The bounds may be given
// in either order.
func Range(r Rand, a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return lo + r.Float64()*(hi-lo)
}

// Initial parameter values for a freshly spawned enemy.
const (
	InitialDamageTickPeriod = 3.0
	InitialDamagePerTick    = 0.25
)

// InitialParams draws the starting speed and cooldown.
func InitialParams(r Rand) Params {
	return Params{
		Speed:            Range(r, 0.07, 0.18),
		Cooldown:         Range(r, 2.0, 7.0),
		DamageTickPeriod: InitialDamageTickPeriod,
		DamagePerTick:    InitialDamagePerTick,
	}
}

// Escalation limits.
const (
	MaxDamagePerTick    = 20.0
	MinDamageTickPeriod = 0.75
	CooldownRerollBelow = 1.0
)

// rule adjusts one parameter by a random step and then applies its limit.
type rule struct {
	field func(*Params) *float64
	step  [2]float64 // random step range
	sign  float64    // +1 grows the parameter, -1 shrinks it
	limit func(v float64, r Rand) float64
}

// The cooldown reroll bounds are tuned as (1.2, 0.5), max before min.
// Range resolves them as [0.5, 1.2).
var rules = []rule{
	{
		field: func(p *Params) *float64 { return &p.Speed },
		step:  [2]float64{0.01, 0.04},
		sign:  +1,
	},
	{
		field: func(p *Params) *float64 { return &p.Cooldown },
		step:  [2]float64{0.25, 1.0},
		sign:  -1,
		limit: func(v float64, r Rand) float64 {
			if v <= CooldownRerollBelow {
				return Range(r, 1.2, 0.5)
			}
			return v
		},
	},
	{
		field: func(p *Params) *float64 { return &p.DamagePerTick },
		step:  [2]float64{0.15, 0.5},
		sign:  +1,
		limit: func(v float64, _ Rand) float64 { return math.Min(v, MaxDamagePerTick) },
	},
	{
		field: func(p *Params) *float64 { return &p.DamageTickPeriod },
		step:  [2]float64{0.05, 0.1},
		sign:  -1,
		limit: func(v float64, _ Rand) float64 { return math.Max(v, MinDamageTickPeriod) },
	},
}

// Escalate returns p strengthened by one hit. All steps are drawn first,
// then limits are applied, so the draw order is stable regardless of
// which limits trigger.
func Escalate(p Params, r Rand) Params {
	for _, ru := range rules {
		f := ru.field(&p)
		*f += ru.sign * Range(r, ru.step[0], ru.step[1])
	}
	for _, ru := range rules {
		if ru.limit == nil {
			continue
		}
		f := ru.field(&p)
		*f = ru.limit(*f, r)
	}
	return p
}
