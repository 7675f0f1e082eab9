// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package arduino

import (
	"fmt"
	"math"
	"time"
)

// MockSource synthesizes controller lines: the stick circles continuously
// and each light sensor pulses above a 400 ambient reading at its own rate.
type MockSource struct {
	start time.Time
	now   func() time.Time
}

// NewMockSource creates a mock line source that generates smooth changing
// values.
func NewMockSource() *MockSource {
	return &MockSource{start: time.Now(), now: time.Now}
}

func (m *MockSource) NextLine() (string, bool) {
	elapsed := m.now().Sub(m.start).Seconds()

	// half a revolution per second around the neutral point
	angle := elapsed * math.Pi
	x := 2.3 + 1.2*math.Cos(angle)
	y := 2.3 + 1.2*math.Sin(angle)

	upperRight := 400 + 450*math.Max(0, math.Sin(elapsed*0.9))
	bottom := 400 + 300*math.Max(0, math.Sin(elapsed*0.5-1))
	upperLeft := 400 + 450*math.Max(0, math.Sin(elapsed*0.7-2))

	return fmt.Sprintf("%.2f|%.2f|0|%.0f|%.0f|%.0f", x, y, upperRight, bottom, upperLeft), true
}
