// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package signal maps raw photoresistor readings onto [-1, 1] relative to
// the ambient baseline captured at startup.
//
// Readings below the baseline land in [-1, 0): 0 raw is -1, the baseline
// itself is 0. Readings above land in [0, 1], with MaxRaw mapping to 1.
package signal

import (
	"math"

	"github.com/relabs-tech/flashlight_controller/internal/controller"
)

// MaxRaw is the largest reading the controller's ADC mapping produces.
const MaxRaw = 1000.0

// Signals holds the normalized value of each light channel.
type Signals struct {
	UpperRight float64 `json:"upper_right"`
	UpperLeft  float64 `json:"upper_left"`
	Bottom     float64 `json:"bottom"`
}

// Normalize maps raw against baseline. A baseline <= 0 means nothing was
// captured yet and yields 0; a baseline >= MaxRaw leaves no headroom above
// it, so any brighter reading saturates to 1.
func Normalize(raw, baseline float64) float64 {
	if math.IsNaN(raw) || math.IsNaN(baseline) || baseline <= 0 {
		return 0
	}

	diff := raw - baseline
	var v float64
	if diff < 0 {
		v = -1 * (1 - (baseline+diff)/baseline)
	} else {
		headroom := MaxRaw - baseline
		if headroom <= 0 {
			if diff > 0 {
				return 1
			}
			return 0
		}
		v = diff / headroom
	}

	return clamp(v, -1, 1)
}

// FromFrame normalizes all three channels with the one shared baseline.
// Light1 is the upper right sensor, Light2 the bottom, Light3 the upper left.
func FromFrame(f controller.SensorFrame, baseline float64) Signals {
	return Signals{
		UpperRight: Normalize(f.Light1, baseline),
		UpperLeft:  Normalize(f.Light3, baseline),
		Bottom:     Normalize(f.Light2, baseline),
	}
}

// AnyAbove reports whether any channel exceeds threshold.
func (s Signals) AnyAbove(threshold float64) bool {
	return s.UpperRight > threshold || s.UpperLeft > threshold || s.Bottom > threshold
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
