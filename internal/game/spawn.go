// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package game

import (
	"math"

	"github.com/relabs-tech/flashlight_controller/internal/enemy"
)

// Spawn layout around the player, who stands at the origin facing +z.
const (
	SpawnDistance  = 10.0
	TargetDistance = 1.5
	SpawnArc       = 30.0 // enemies spread over [-SpawnArc, SpawnArc] degrees
)

// SpawnEnemies places n enemies evenly across the spawn arc, each walking
// straight at the player along its bearing.
func SpawnEnemies(n int, r enemy.Rand) []*enemy.Enemy {
	enemies := make([]*enemy.Enemy, 0, n)
	for i := 0; i < n; i++ {
		bearing := 0.0
		if n > 1 {
			bearing = -SpawnArc + 2*SpawnArc*float64(i)/float64(n-1)
		}
		enemies = append(enemies, enemy.New(onBearing(bearing, SpawnDistance), onBearing(bearing, TargetDistance), r))
	}
	return enemies
}

func onBearing(deg, dist float64) enemy.Vec3 {
	rad := deg * math.Pi / 180
	return enemy.Vec3{X: dist * math.Sin(rad), Z: dist * math.Cos(rad)}
}
