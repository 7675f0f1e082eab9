// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package game

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/relabs-tech/flashlight_controller/internal/controller"
	"github.com/relabs-tech/flashlight_controller/internal/enemy"
	"github.com/relabs-tech/flashlight_controller/internal/energy"
	"github.com/relabs-tech/flashlight_controller/internal/orientation"
	"github.com/relabs-tech/flashlight_controller/internal/signal"
	"github.com/relabs-tech/flashlight_controller/internal/stick"
	"github.com/relabs-tech/flashlight_controller/internal/telemetry"
)

// Indicator is the drained-energy LED.
type Indicator interface {
	Set(on bool) error
}

// Options tune the engine.
type Options struct {
	VerifyChecksum bool
	Energy         energy.Config
	StickNeutral   float64
	StickThreshold float64
	PlayerHealth   float64
	EnemyRadius    float64 // world units, for ray fan hits
}

func DefaultOptions() Options {
	return Options{
		Energy:         energy.DefaultConfig(),
		StickNeutral:   stick.DefaultNeutral,
		StickThreshold: stick.DefaultThreshold,
		PlayerHealth:   100,
		EnemyRadius:    0.5,
	}
}

// Input is everything the engine consumes in one tick.
type Input struct {
	Now     time.Time
	Delta   float64 // seconds since the previous tick
	Line    string
	HasLine bool // false when the transport had nothing this tick

	// Rotations and Hits come from collaborators other than the serial
	// controller, e.g. a scripted input or another hit detector.
	Rotations int
	Hits      []string
}

// Engine runs the sensor pipeline and the game state machines, one tick at
// a time, on a single goroutine.
type Engine struct {
	opts Options

	parser  *controller.Parser
	state   SharedSignalState
	stick   *stick.Detector
	energy  *energy.Economy
	aim     orientation.Smoother
	player  Player
	enemies []*enemy.Enemy
	led     Indicator
	ledOn   bool

	tick      uint64
	rotations int
}

// NewEngine wires the components together. led may be nil.
func NewEngine(opts Options, enemies []*enemy.Enemy, led Indicator) *Engine {
	e := &Engine{
		opts:    opts,
		parser:  controller.NewParser(opts.VerifyChecksum),
		stick:   stick.NewDetector(opts.StickNeutral, opts.StickThreshold),
		energy:  energy.New(opts.Energy),
		player:  Player{Health: opts.PlayerHealth},
		enemies: enemies,
		led:     led,
	}
	e.stick.Subscribe(e.energy.Recharge)
	e.stick.Subscribe(func() { e.rotations++ })
	return e
}

func (e *Engine) State() SharedSignalState { return e.state }
func (e *Engine) Player() Player           { return e.player }
func (e *Engine) Enemies() []*enemy.Enemy  { return e.enemies }
func (e *Engine) Energy() energy.State     { return e.energy.State() }

// Tick advances the game by one step and returns the resulting snapshot.
func (e *Engine) Tick(in Input) telemetry.Snapshot {
	e.tick++
	e.rotations = 0
	e.state.HaveFrame = false

	if in.HasLine {
		e.readLine(in.Line)
	}
	if e.state.HaveFrame {
		e.stick.Update(e.state.Frame.XAxis, e.state.Frame.YAxis)
	}
	for i := 0; i < in.Rotations; i++ {
		e.stick.Trigger()
	}

	power := e.energy.Update(e.state.Signals, in.Delta)
	pose := e.aim.Step(orientation.ComputeAim(e.state.Signals), in.Delta)

	var hits []string
	if power.On {
		hits = e.detectHits(pose)
	}
	hits = append(hits, e.externalHits(in.Hits)...)

	for _, foe := range e.enemies {
		foe.Update(in.Delta, &e.player)
	}

	ledChanged := power.LED != e.ledOn
	e.ledOn = power.LED
	if e.led != nil {
		if err := e.led.Set(power.LED); err != nil {
			log.Printf("game: LED update failed: %v", err)
		}
	}

	return e.snapshot(in.Now, power, pose, hits, ledChanged)
}

func (e *Engine) readLine(line string) {
	frame, err := e.parser.Parse(line)
	if err != nil {
		log.Printf("controller: %v (line %q)", err, line)
		if errors.Is(err, controller.ErrChecksum) {
			return
		}
	}

	b := e.parser.Baseline()
	e.state.Frame = frame
	e.state.HaveFrame = true
	e.state.Baseline = b.Value()
	e.state.BaselineCaptured = b.Captured()
	e.state.Signals = signal.FromFrame(frame, e.state.Baseline)
}

// detectHits casts the ray fan at the current aim and hits every enemy it
// touches. Enemies do not occlude each other.
func (e *Engine) detectHits(pose orientation.Pose) []string {
	var hits []string
	for _, foe := range e.enemies {
		if !foe.Collision() {
			continue
		}
		pos := foe.Position()
		dist := math.Hypot(pos.X, pos.Z)
		bearing := orientation.Bearing(pos.X, pos.Z)
		if !orientation.FanCovers(pose.Yaw, bearing, orientation.AngularHalfWidth(e.opts.EnemyRadius, dist)) {
			continue
		}
		if foe.Hit() {
			hits = append(hits, foe.ID)
		}
	}
	return hits
}

func (e *Engine) externalHits(ids []string) []string {
	var hits []string
	for _, id := range ids {
		for _, foe := range e.enemies {
			if foe.ID == id && foe.Hit() {
				hits = append(hits, id)
			}
		}
	}
	return hits
}

// Shutdown switches the LED off. Call it before closing the transport.
func (e *Engine) Shutdown() error {
	e.ledOn = false
	if e.led == nil {
		return nil
	}
	return e.led.Set(false)
}

func (e *Engine) snapshot(now time.Time, power energy.State, pose orientation.Pose, hits []string, ledChanged bool) telemetry.Snapshot {
	s := telemetry.Snapshot{
		Time:             now,
		Tick:             e.tick,
		HaveFrame:        e.state.HaveFrame,
		Frame:            e.state.Frame,
		Baseline:         e.state.Baseline,
		BaselineCaptured: e.state.BaselineCaptured,
		Signals:          e.state.Signals,
		Energy:           power,
		Aim:              pose,
		Health:           e.player.Health,
		Rotations:        e.rotations,
		Hits:             hits,
		LEDChanged:       ledChanged,
		Enemies:          make([]telemetry.EnemyStatus, 0, len(e.enemies)),
	}
	for _, foe := range e.enemies {
		pos := foe.Position()
		s.Enemies = append(s.Enemies, telemetry.EnemyStatus{
			ID:        foe.ID,
			State:     foe.State().String(),
			Bearing:   orientation.Bearing(pos.X, pos.Z),
			Position:  pos,
			Params:    foe.Params(),
			Collision: foe.Collision(),
			Hits:      foe.Hits(),
		})
	}
	return s
}
