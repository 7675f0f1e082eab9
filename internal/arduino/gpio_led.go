// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package arduino

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIOLED mirrors the energy LED on a host GPIO pin.
type GPIOLED struct {
	pin gpio.PinOut
	on  bool
}

// NewGPIOLED initializes periph and claims the named pin, driving it low.
func NewGPIOLED(name string) (*GPIOLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("LED pin %q not found", name)
	}
	return newGPIOLED(pin)
}

func newGPIOLED(pin gpio.PinOut) (*GPIOLED, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("LED pin %s low: %w", pin, err)
	}
	return &GPIOLED{pin: pin}, nil
}

func (l *GPIOLED) Set(on bool) error {
	if on == l.on {
		return nil
	}
	if err := l.pin.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("LED pin %s: %w", l.pin, err)
	}
	l.on = on
	return nil
}
