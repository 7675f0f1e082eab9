// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Command producer runs the full game on synthetic controller lines and
// publishes telemetry, for working on the dashboards without an Arduino.
package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/flashlight_controller/internal/app"
	"github.com/relabs-tech/flashlight_controller/internal/config"
)

func main() {
	configPath := flag.String("config", "./flashlight_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting flashlight MQTT producer (mock controller)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	config.Get().UseMockSource = true

	if err := app.RunGame(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
