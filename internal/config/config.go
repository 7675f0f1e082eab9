// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Serial read modes.
const (
	ReadModeBlocking  = "blocking"
	ReadModeDecoupled = "decoupled"
)

// Config holds all application configuration values.
type Config struct {
	// Serial link to the Arduino controller
	SerialPort     string
	SerialBaudRate int
	SerialReadMode string // "blocking" or "decoupled"
	FrameChecksum  bool   // verify optional *HH suffix on frames
	UseMockSource  bool   // synthetic frames instead of the serial port

	// LED
	LEDGPIOPin string // optional periph pin name mirroring the serial LED

	// Game
	TickInterval int // milliseconds
	PlayerHealth float64
	EnemyCount   int
	EnemySeed    int64 // 0 = random

	// MQTT
	MQTTBroker          string
	MQTTClientIDGame    string
	MQTTClientIDConsole string
	MQTTClientIDWeb     string
	MQTTClientIDDisplay string

	// Topics
	TopicState  string
	TopicEvents string

	// Timing
	TelemetryInterval     int // milliseconds
	DisplayUpdateInterval int // milliseconds

	// Web Server
	WebServerPort int
}

// Package-level singleton, set once by InitGlobal and read through Get.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns a configuration with every optional value filled in.
// Load starts from it, so a config file only needs the keys it changes.
func Default() *Config {
	return &Config{
		SerialPort:            "/dev/ttyACM0",
		SerialBaudRate:        9600,
		SerialReadMode:        ReadModeDecoupled,
		TickInterval:          20,
		PlayerHealth:          100,
		EnemyCount:            3,
		MQTTBroker:            "tcp://localhost:1883",
		MQTTClientIDGame:      "flashlight-game",
		MQTTClientIDConsole:   "flashlight-console",
		MQTTClientIDWeb:       "flashlight-web",
		MQTTClientIDDisplay:   "flashlight-display",
		TopicState:            "flashlight/state",
		TopicEvents:           "flashlight/events",
		TelemetryInterval:     100,
		DisplayUpdateInterval: 250,
		WebServerPort:         8080,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads KEY=VALUE lines from r on top of Default().
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Serial
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE %q: %w", value, err)
		}
		c.SerialBaudRate = rate
	case "SERIAL_READ_MODE":
		if value != ReadModeBlocking && value != ReadModeDecoupled {
			return fmt.Errorf("SERIAL_READ_MODE must be %q or %q, got %q", ReadModeBlocking, ReadModeDecoupled, value)
		}
		c.SerialReadMode = value
	case "FRAME_CHECKSUM":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid FRAME_CHECKSUM %q: %w", value, err)
		}
		c.FrameChecksum = b
	case "USE_MOCK_SOURCE":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid USE_MOCK_SOURCE %q: %w", value, err)
		}
		c.UseMockSource = b

	// LED
	case "LED_GPIO_PIN":
		c.LEDGPIOPin = value

	// Game
	case "TICK_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TICK_INTERVAL %q: %w", value, err)
		}
		c.TickInterval = interval
	case "PLAYER_HEALTH":
		health, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid PLAYER_HEALTH %q: %w", value, err)
		}
		c.PlayerHealth = health
	case "ENEMY_COUNT":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid ENEMY_COUNT %q: %w", value, err)
		}
		if n < 0 || n > 16 {
			return fmt.Errorf("ENEMY_COUNT must be 0-16, got %d", n)
		}
		c.EnemyCount = n
	case "ENEMY_SEED":
		seed, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid ENEMY_SEED %q: %w", value, err)
		}
		c.EnemySeed = seed

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_GAME":
		c.MQTTClientIDGame = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_STATE":
		c.TopicState = value
	case "TOPIC_EVENTS":
		c.TopicEvents = value

	// Timing
	case "TELEMETRY_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TELEMETRY_INTERVAL %q: %w", value, err)
		}
		c.TelemetryInterval = interval
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if !c.UseMockSource && c.SerialPort == "" {
		return fmt.Errorf("SERIAL_PORT is required unless USE_MOCK_SOURCE=true")
	}
	if c.SerialBaudRate <= 0 {
		return fmt.Errorf("SERIAL_BAUD_RATE must be positive")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive")
	}
	if c.PlayerHealth <= 0 {
		return fmt.Errorf("PLAYER_HEALTH must be positive")
	}
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.TopicState == "" || c.TopicEvents == "" {
		return fmt.Errorf("TOPIC_STATE and TOPIC_EVENTS are required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Only the first call loads the file; later calls are no-ops.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
