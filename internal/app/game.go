// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/flashlight_controller/internal/arduino"
	"github.com/relabs-tech/flashlight_controller/internal/config"
	"github.com/relabs-tech/flashlight_controller/internal/game"
	"github.com/relabs-tech/flashlight_controller/internal/telemetry"
)

// controllerLink is everything the game talks to on the controller side.
type controllerLink struct {
	source arduino.LineSource
	led    arduino.LED
	closer io.Closer // nil for the mock source
	reader *arduino.LatestReader
}

// openController opens the serial port (or the mock source) and builds the
// line source and LED sinks the config asks for.
func openController(ctx context.Context, cfg *config.Config) (*controllerLink, error) {
	link := &controllerLink{}
	var leds arduino.LEDs

	if cfg.UseMockSource {
		log.Println("game: using mock controller source")
		link.source = arduino.NewMockSource()
	} else {
		port, err := arduino.OpenPort(cfg.SerialPort, cfg.SerialBaudRate)
		if err != nil {
			return nil, err
		}
		log.Printf("game: opened %s at %d baud (%s reads)", cfg.SerialPort, cfg.SerialBaudRate, cfg.SerialReadMode)
		link.closer = port
		leds = append(leds, arduino.NewSerialLED(port))

		if cfg.SerialReadMode == config.ReadModeBlocking {
			link.source = arduino.NewBlockingReader(port)
		} else {
			link.reader = arduino.NewLatestReader(port)
			link.reader.Start(ctx)
			link.source = link.reader
		}
	}

	if cfg.LEDGPIOPin != "" {
		gl, err := arduino.NewGPIOLED(cfg.LEDGPIOPin)
		if err != nil {
			log.Printf("game: GPIO LED disabled: %v", err)
		} else {
			leds = append(leds, gl)
		}
	}
	if len(leds) > 0 {
		link.led = leds
	}
	return link, nil
}

// close switches the LED off, then closes the port.
func (l *controllerLink) close() {
	if err := arduino.Teardown(l.led, l.closer); err != nil {
		log.Printf("game: teardown: %v", err)
	}
}

func newRand(seed int64) *rand.Rand {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(s, s>>32|s<<32))
}

func newEngine(cfg *config.Config, led game.Indicator) *game.Engine {
	opts := game.DefaultOptions()
	opts.VerifyChecksum = cfg.FrameChecksum
	opts.PlayerHealth = cfg.PlayerHealth

	enemies := game.SpawnEnemies(cfg.EnemyCount, newRand(cfg.EnemySeed))
	for _, e := range enemies {
		log.Printf("game: spawned enemy %s at %+v", e.ID, e.Start())
	}
	return game.NewEngine(opts, enemies, led)
}

// RunGame drives the game from the Arduino controller and publishes
// telemetry until SIGINT or SIGTERM.
func RunGame() error {
	log.Println("starting flashlight game loop")

	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pub, err := telemetry.NewMQTTPublisher(
		cfg.MQTTBroker,
		cfg.MQTTClientIDGame,
		cfg.TopicState,
		cfg.TopicEvents,
		time.Duration(cfg.TelemetryInterval)*time.Millisecond,
	)
	if err != nil {
		return err
	}
	// disconnects after the LED is off and the port is closed
	defer pub.Close()

	link, err := openController(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open controller: %w", err)
	}
	defer link.close()

	var led game.Indicator
	if link.led != nil {
		led = link.led
	}
	engine := newEngine(cfg, led)

	return runLoop(ctx, cfg, link, engine, pub)
}

func runLoop(ctx context.Context, cfg *config.Config, link *controllerLink, engine *game.Engine, pub telemetry.Publisher) error {
	ticker := time.NewTicker(time.Duration(cfg.TickInterval) * time.Millisecond)
	defer ticker.Stop()

	var readerDone <-chan struct{}
	if link.reader != nil {
		readerDone = link.reader.Done()
	}

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Println("game: shutting down")
			return nil

		case <-readerDone:
			if err := link.reader.Err(); err != nil {
				log.Printf("arduino: reader stopped: %v", err)
			} else {
				log.Println("arduino: port closed")
			}
			readerDone = nil

		case now := <-ticker.C:
			line, ok := link.source.NextLine()
			snap := engine.Tick(game.Input{
				Now:     now,
				Delta:   now.Sub(last).Seconds(),
				Line:    line,
				HasLine: ok,
			})
			last = now

			if err := pub.Publish(snap); err != nil {
				log.Printf("game: publish: %v", err)
			}
			for _, id := range snap.Hits {
				log.Printf("game: enemy %s hit", id)
			}
			if snap.LEDChanged {
				log.Printf("game: energy LED on=%v", snap.Energy.LED)
			}
			if snap.Health <= 0 {
				log.Println("game: player health depleted")
				return nil
			}
		}
	}
}
