// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/flashlight_controller/internal/config"
	"github.com/relabs-tech/flashlight_controller/internal/telemetry"
)

// connectMQTT connects a subscriber client to the configured broker.
func connectMQTT(cfg *config.Config, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.MQTTBroker, token.Error())
	}
	return client, nil
}

func subscribe(client mqtt.Client, topic string, handler mqtt.MessageHandler) error {
	token := client.Subscribe(topic, 0, handler)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	return nil
}

// RunConsoleMQTT prints the game state and events published by the game.
func RunConsoleMQTT() error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	client, err := connectMQTT(cfg, cfg.MQTTClientIDConsole)
	if err != nil {
		return err
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	err = subscribe(client, cfg.TopicState, func(_ mqtt.Client, msg mqtt.Message) {
		var s telemetry.Snapshot
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: state unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[STATE] tick=%d energy=%5.1f on=%-5v led=%-5v yaw=%6.2f pitch=%6.2f health=%6.2f enemies=%d\n",
			s.Tick, s.Energy.Level, s.Energy.On, s.Energy.LED, s.Aim.Yaw, s.Aim.Pitch, s.Health, len(s.Enemies),
		)
		for _, e := range s.Enemies {
			fmt.Printf(
				"[ENEMY] %s %-11s bearing=%6.1f speed=%.3f cooldown=%.2f dmg=%.2f/%.2fs hits=%d\n",
				e.ID, e.State, e.Bearing, e.Params.Speed, e.Params.Cooldown,
				e.Params.DamagePerTick, e.Params.DamageTickPeriod, e.Hits,
			)
		}
	})
	if err != nil {
		return err
	}
	log.Printf("console: subscribed to %s", cfg.TopicState)

	err = subscribe(client, cfg.TopicEvents, func(_ mqtt.Client, msg mqtt.Message) {
		var ev telemetry.Event
		if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
			log.Printf("console: event unmarshal error: %v", err)
			return
		}
		printEvents(os.Stdout, []telemetry.Event{ev})
	})
	if err != nil {
		return err
	}
	log.Printf("console: subscribed to %s", cfg.TopicEvents)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
