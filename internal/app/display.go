// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/flashlight_controller/internal/config"
	"github.com/relabs-tech/flashlight_controller/internal/enemy"
	"github.com/relabs-tech/flashlight_controller/internal/telemetry"
)

const (
	displayW = 128
	displayH = 64

	// energy bar, outline included
	barTop    = 16
	barBottom = 23
)

// DisplayData holds the latest snapshot for the OLED.
type DisplayData struct {
	mu       sync.RWMutex
	snapshot telemetry.Snapshot
	have     bool
}

func (d *DisplayData) set(s telemetry.Snapshot) {
	d.mu.Lock()
	d.snapshot = s
	d.have = true
	d.mu.Unlock()
}

func (d *DisplayData) get() (telemetry.Snapshot, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot, d.have
}

// RunDisplay shows energy, health, LED and enemies on an SSD1306 OLED.
func RunDisplay() error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	defer dev.Halt()
	log.Println("display: initialized")

	if err := dev.Draw(dev.Bounds(), renderSplash(), image.Point{}); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	data := &DisplayData{}

	client, err := connectMQTT(cfg, cfg.MQTTClientIDDisplay)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	err = subscribe(client, cfg.TopicState, func(_ mqtt.Client, msg mqtt.Message) {
		var s telemetry.Snapshot
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("display: state unmarshal error: %v", err)
			return
		}
		data.set(s)
	})
	if err != nil {
		return err
	}
	log.Printf("display: subscribed to %s", cfg.TopicState)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for {
		select {
		case <-sigCh:
			log.Println("display: shutting down")
			return nil
		case <-ticker.C:
			s, have := data.get()
			if err := dev.Draw(dev.Bounds(), renderStatus(s, have), image.Point{}); err != nil {
				log.Printf("display: error updating display: %v", err)
			}
		}
	}
}

func newCanvas() (*image1bit.VerticalLSB, *font.Drawer) {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, displayW, displayH))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	return img, drawer
}

func drawText(d *font.Drawer, x, y int, s string) {
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

func renderSplash() image.Image {
	img, d := newCanvas()
	drawText(d, 20, 26, "Flashlight")
	drawText(d, 10, 43, "Move the stick")
	drawText(d, 25, 56, "to charge")
	return img
}

// renderStatus draws one status screen for s.
func renderStatus(s telemetry.Snapshot, have bool) *image1bit.VerticalLSB {
	img, d := newCanvas()

	if !have {
		drawText(d, 0, 26, "Flashlight")
		drawText(d, 0, 39, "Waiting...")
		return img
	}

	drawText(d, 0, 13, fmt.Sprintf("Energy %3.0f%%", s.Energy.Level))
	drawBar(img, s.Energy.Level/100)

	drawText(d, 0, 36, fmt.Sprintf("Health %5.1f", s.Health))
	drawText(d, 0, 49, fmt.Sprintf("Light %-3s LED %s", onOff(s.Energy.On), onOff(s.Energy.LED)))

	attacking := 0
	for _, e := range s.Enemies {
		if e.State == enemy.Attacking.String() {
			attacking++
		}
	}
	drawText(d, 0, 62, fmt.Sprintf("Enemies %d atk %d", len(s.Enemies), attacking))
	return img
}

// drawBar draws the energy bar outline and fills fraction of its inside.
func drawBar(img *image1bit.VerticalLSB, fraction float64) {
	fraction = max(0, min(1, fraction))
	for x := 0; x < displayW; x++ {
		img.Set(x, barTop, image1bit.On)
		img.Set(x, barBottom, image1bit.On)
	}
	for y := barTop; y <= barBottom; y++ {
		img.Set(0, y, image1bit.On)
		img.Set(displayW-1, y, image1bit.On)
	}

	fill := int(fraction * float64(displayW-2))
	for x := 1; x <= fill; x++ {
		for y := barTop + 1; y < barBottom; y++ {
			img.Set(x, y, image1bit.On)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
