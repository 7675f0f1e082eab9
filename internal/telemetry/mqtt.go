// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher ships snapshots to telemetry consumers.
type Publisher interface {
	Publish(s Snapshot) error
	Close()
}

// NopPublisher discards everything.
type NopPublisher struct{}

func (NopPublisher) Publish(Snapshot) error { return nil }
func (NopPublisher) Close()                 {}

// MQTTPublisher publishes the state snapshot (retained) at most once per
// interval and every event as soon as it happens.
type MQTTPublisher struct {
	client      mqtt.Client
	stateTopic  string
	eventsTopic string
	throttle    throttle
}

// NewMQTTPublisher connects to broker and returns a publisher.
func NewMQTTPublisher(broker, clientID, stateTopic, eventsTopic string, interval time.Duration) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	log.Printf("telemetry: connected to MQTT broker at %s", broker)

	return &MQTTPublisher{
		client:      client,
		stateTopic:  stateTopic,
		eventsTopic: eventsTopic,
		throttle:    throttle{interval: interval},
	}, nil
}

func (p *MQTTPublisher) Publish(s Snapshot) error {
	for _, ev := range s.Events() {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		if token := p.client.Publish(p.eventsTopic, 0, false, payload); token.Wait() && token.Error() != nil {
			return fmt.Errorf("publish %s: %w", p.eventsTopic, token.Error())
		}
	}

	if !p.throttle.allow(s.Time) {
		return nil
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if token := p.client.Publish(p.stateTopic, 0, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", p.stateTopic, token.Error())
	}
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// throttle lets one call through per interval.
type throttle struct {
	interval time.Duration
	last     time.Time
}

func (t *throttle) allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
