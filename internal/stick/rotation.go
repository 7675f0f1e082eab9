// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package stick turns raw analog stick axes into rotation events.
//
// The detector is coarse: it fires whenever the stick angle steps across
// the 0°/360° mark (from the first quadrant into the last or back), which
// approximates one revolution per crossing. It does not integrate angle.
package stick

import "math"

const (
	DefaultNeutral   = 2.3
	DefaultThreshold = 0.5

	lowBand  = 45.0
	highBand = 315.0
)

// Detector tracks the stick angle across updates. The zero value is not
// usable; create one with NewDetector.
type Detector struct {
	neutral   float64
	threshold float64
	prevAngle float64

	listeners []func()
}

func NewDetector(neutral, threshold float64) *Detector {
	return &Detector{neutral: neutral, threshold: threshold}
}

// Subscribe registers fn to run on every rotation.
func (d *Detector) Subscribe(fn func()) {
	d.listeners = append(d.listeners, fn)
}

// PreviousAngle is the last angle accepted outside the dead zone.
func (d *Detector) PreviousAngle() float64 { return d.prevAngle }

// Update evaluates one reading and reports whether a rotation fired.
// Readings inside the dead zone are ignored entirely.
func (d *Detector) Update(x, y float64) bool {
	dx := x - d.neutral
	dy := y - d.neutral
	if math.Abs(dx) <= d.threshold && math.Abs(dy) <= d.threshold {
		return false
	}

	angle := Angle(dx, dy)
	fired := (angle < lowBand && d.prevAngle >= highBand) ||
		(angle >= highBand && d.prevAngle < lowBand)
	d.prevAngle = angle

	if fired {
		d.Trigger()
	}
	return fired
}

// Trigger notifies every listener as if a rotation had been detected.
func (d *Detector) Trigger() {
	for _, fn := range d.listeners {
		fn()
	}
}

// Angle returns atan2(dy, dx) in degrees within [0, 360).
func Angle(dx, dy float64) float64 {
	a := math.Atan2(dy, dx) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}
