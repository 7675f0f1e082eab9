// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/flashlight_controller/internal/arduino"
	"github.com/relabs-tech/flashlight_controller/internal/config"
	"github.com/relabs-tech/flashlight_controller/internal/game"
	"github.com/relabs-tech/flashlight_controller/internal/telemetry"
)

// RunMockConsole runs the game on synthetic controller lines and prints
// every tick. No hardware or broker is needed.
func RunMockConsole() error {
	cfg := config.Get()
	if cfg == nil {
		cfg = config.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := newEngine(cfg, nil)
	defer engine.Shutdown()

	return runConsole(ctx, os.Stdout, arduino.NewMockSource(), engine, time.Duration(cfg.TickInterval)*time.Millisecond)
}

func runConsole(ctx context.Context, w io.Writer, src arduino.LineSource, engine *game.Engine, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Println("console: shutting down")
			return nil
		case now := <-ticker.C:
			line, ok := src.NextLine()
			snap := engine.Tick(game.Input{Now: now, Delta: now.Sub(last).Seconds(), Line: line, HasLine: ok})
			last = now
			printSnapshot(w, snap)
		}
	}
}

func printSnapshot(w io.Writer, s telemetry.Snapshot) {
	fmt.Fprintf(w,
		"[TICK %5d] UR=%5.2f UL=%5.2f B=%5.2f  energy=%5.1f on=%-5v led=%-5v  yaw=%6.2f pitch=%6.2f  health=%6.2f\n",
		s.Tick,
		s.Signals.UpperRight, s.Signals.UpperLeft, s.Signals.Bottom,
		s.Energy.Level, s.Energy.On, s.Energy.LED,
		s.Aim.Yaw, s.Aim.Pitch,
		s.Health,
	)
	printEvents(w, s.Events())
}

func printEvents(w io.Writer, events []telemetry.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case telemetry.EventRotation:
			fmt.Fprintln(w, "[EVENT] stick rotation, energy recharged")
		case telemetry.EventHit:
			fmt.Fprintf(w, "[EVENT] enemy %s hit\n", ev.EnemyID)
		case telemetry.EventLED:
			fmt.Fprintf(w, "[EVENT] energy LED on=%v\n", ev.On)
		}
	}
}
