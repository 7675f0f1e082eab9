// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

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

	log.Println("starting flashlight game (mock console)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Printf("config not loaded, using defaults: %v", err)
	}

	if err := app.RunMockConsole(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
