// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"

	"github.com/relabs-tech/flashlight_controller/internal/signal"
)

const (
	// MaxTilt is the largest yaw or pitch the flashlight can be steered to.
	MaxTilt = 35.0
	// YawDeadBand keeps the light pointing straight ahead when the upper
	// left and upper right sensors read almost the same.
	YawDeadBand = 0.075
	// TweenDuration is how long the light takes to settle on a new aim.
	TweenDuration = 0.8

	rayCount = 9
	rayStart = -20.0
	rayStep  = 5.0
	radToDeg = 180 / math.Pi
)

// Pose is the aim of the flashlight in degrees. Positive yaw turns right,
// positive pitch tilts down.
type Pose struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// ComputeAim steers towards the brighter upper sensor and tilts down with
// the bottom sensor.
func ComputeAim(s signal.Signals) Pose {
	var yaw float64
	if s.UpperRight > s.UpperLeft {
		yaw = lerp(0, MaxTilt, s.UpperRight)
	} else {
		yaw = lerp(0, -MaxTilt, s.UpperLeft)
	}
	if math.Abs(s.UpperRight-s.UpperLeft) <= YawDeadBand {
		yaw = 0
	}

	return Pose{
		Pitch: lerp(0, MaxTilt, s.Bottom),
		Yaw:   yaw,
	}
}

// lerp interpolates with t clamped to [0, 1].
func lerp(a, b, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return a + (b-a)*t
}

// Smoother eases the current pose towards a moving target.
type Smoother struct {
	current Pose
}

// Current returns the smoothed pose.
func (s *Smoother) Current() Pose { return s.current }

// Step moves the pose towards target; a full TweenDuration reaches it.
func (s *Smoother) Step(target Pose, dt float64) Pose {
	t := math.Min(1, dt/TweenDuration)
	s.current = Pose{
		Pitch: s.current.Pitch + (target.Pitch-s.current.Pitch)*t,
		Yaw:   s.current.Yaw + (target.Yaw-s.current.Yaw)*t,
	}
	return s.current
}

// RayFan returns the yaw of each hit-detection ray cast around yaw.
func RayFan(yaw float64) []float64 {
	rays := make([]float64, rayCount)
	for i := range rays {
		rays[i] = yaw + rayStart + rayStep*float64(i)
	}
	return rays
}

// FanCovers reports whether any ray of the fan around yaw passes within
// halfWidth degrees of bearing.
func FanCovers(yaw, bearing, halfWidth float64) bool {
	for _, r := range RayFan(yaw) {
		if math.Abs(angleDiff(r, bearing)) <= halfWidth {
			return true
		}
	}
	return false
}

// AngularHalfWidth is the half angle, in degrees, that a target of the
// given radius subtends at distance.
func AngularHalfWidth(radius, distance float64) float64 {
	if distance <= radius {
		return 90
	}
	return math.Asin(radius/distance) * radToDeg
}

// Bearing is the yaw, in degrees, of the point (x, z) seen from the origin
// looking down +z.
func Bearing(x, z float64) float64 {
	return math.Atan2(x, z) * radToDeg
}

// angleDiff returns a-b wrapped to [-180, 180).
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
