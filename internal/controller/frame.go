// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package controller

// SensorFrame is one decoded line from the Arduino controller.
type SensorFrame struct {
	XAxis       float64 `json:"x"` // analog stick, neutral around 2.3
	YAxis       float64 `json:"y"`
	StickButton bool    `json:"button"`

	Light1 float64 `json:"light1"` // photoresistor upper right, 0..1000
	Light2 float64 `json:"light2"` // photoresistor bottom
	Light3 float64 `json:"light3"` // photoresistor upper left
}

// Baseline is the ambient room brightness, latched from the first light
// reading and never recaptured.
type Baseline struct {
	value    float64
	captured bool
}

// Capture stores v if nothing has been captured yet and reports whether it did.
func (b *Baseline) Capture(v float64) bool {
	if b.captured {
		return false
	}
	b.value = v
	b.captured = true
	return true
}

// Value returns the captured reading, 0 before capture.
func (b *Baseline) Value() float64 { return b.value }

// Captured reports whether a reading has been latched.
func (b *Baseline) Captured() bool { return b.captured }
