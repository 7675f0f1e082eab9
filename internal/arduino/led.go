// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package arduino

import (
	"errors"
	"fmt"
	"io"
)

// LED is a binary indicator. Implementations only act on state changes.
type LED interface {
	Set(on bool) error
}

// LineWriter is satisfied by *Port.
type LineWriter interface {
	WriteLine(s string) error
}

// Serial LED commands.
const (
	LEDOnCommand  = "L1"
	LEDOffCommand = "L0"
)

// SerialLED drives the controller LED with L1/L0 lines. The LED is assumed
// off at start; a failed write leaves the state unchanged so the next Set
// retries.
type SerialLED struct {
	w  LineWriter
	on bool
}

func NewSerialLED(w LineWriter) *SerialLED {
	return &SerialLED{w: w}
}

func (l *SerialLED) Set(on bool) error {
	if on == l.on {
		return nil
	}
	cmd := LEDOffCommand
	if on {
		cmd = LEDOnCommand
	}
	if err := l.w.WriteLine(cmd); err != nil {
		return fmt.Errorf("write LED command %s: %w", cmd, err)
	}
	l.on = on
	return nil
}

// LEDs fans a state out to several indicators.
type LEDs []LED

func (ls LEDs) Set(on bool) error {
	var errs []error
	for _, l := range ls {
		if err := l.Set(on); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Teardown switches the LED off before closing the transport it talks
// through.
func Teardown(led LED, c io.Closer) error {
	var errs []error
	if led != nil {
		if err := led.Set(false); err != nil {
			errs = append(errs, fmt.Errorf("LED off: %w", err))
		}
	}
	if c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close: %w", err))
		}
	}
	return errors.Join(errs...)
}
