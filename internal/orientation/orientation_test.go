// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relabs-tech/flashlight_controller/internal/signal"
)

func TestComputeAim(t *testing.T) {
	cases := []struct {
		name string
		in   signal.Signals
		want Pose
	}{
		{"dark room", signal.Signals{UpperRight: -1, UpperLeft: -1, Bottom: -1}, Pose{}},
		{"right full", signal.Signals{UpperRight: 1, UpperLeft: 0}, Pose{Yaw: 35}},
		{"right half", signal.Signals{UpperRight: 0.5, UpperLeft: -0.2}, Pose{Yaw: 17.5}},
		{"left full", signal.Signals{UpperRight: 0, UpperLeft: 1}, Pose{Yaw: -35}},
		{"dead band", signal.Signals{UpperRight: 0.6, UpperLeft: 0.55}, Pose{}},
		{"bottom half", signal.Signals{Bottom: 0.5}, Pose{Pitch: 17.5}},
		{"negative bottom clamps", signal.Signals{Bottom: -0.8}, Pose{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeAim(tc.in)
			assert.InDelta(t, tc.want.Yaw, got.Yaw, 1e-9)
			assert.InDelta(t, tc.want.Pitch, got.Pitch, 1e-9)
		})
	}
}

func TestSmootherEases(t *testing.T) {
	var s Smoother
	target := Pose{Pitch: 8, Yaw: 16}

	p := s.Step(target, 0.4)
	assert.InDelta(t, 4, p.Pitch, 1e-9)
	assert.InDelta(t, 8, p.Yaw, 1e-9)

	p = s.Step(target, 10)
	assert.Equal(t, target, p)
	assert.Equal(t, target, s.Current())
}

func TestRayFan(t *testing.T) {
	rays := RayFan(10)
	assert.Len(t, rays, 9)
	assert.Equal(t, -10.0, rays[0])
	assert.Equal(t, 30.0, rays[8])
}

func TestFanCovers(t *testing.T) {
	assert.True(t, FanCovers(0, 0, 0.5))
	assert.True(t, FanCovers(0, 20, 0.5))
	assert.False(t, FanCovers(0, 25, 0.5))
	assert.True(t, FanCovers(0, 25, 5))
	assert.False(t, FanCovers(0, 2.5, 1), "between two rays")
	assert.True(t, FanCovers(170, -175, 0.5), "wraps around 180")
}

func TestBearingAndWidth(t *testing.T) {
	assert.InDelta(t, 0, Bearing(0, 10), 1e-9)
	assert.InDelta(t, 90, Bearing(5, 0), 1e-9)
	assert.InDelta(t, -45, Bearing(-1, 1), 1e-9)

	assert.InDelta(t, 30, AngularHalfWidth(0.5, 1), 1e-9)
	assert.Equal(t, 90.0, AngularHalfWidth(1, 0.5))
}
