// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
)

// Separator between fields of a controller line.
const Separator = "|"

// Field positions in a controller line.
const (
	FieldXAxis = iota
	FieldYAxis
	FieldButton
	FieldLight1
	FieldLight2
	FieldLight3
)

var fieldNames = [...]string{"x axis", "y axis", "button", "light1", "light2", "light3"}

// ErrChecksum is returned when a line carries a *HH suffix that does not
// match its payload.
var ErrChecksum = errors.New("frame checksum mismatch")

// FieldError describes one field of a line that could not be decoded.
type FieldError struct {
	Index int
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %d (%s) %q: %v", e.Index, fieldNames[e.Index], e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Parser turns controller lines into SensorFrames. It keeps the last frame
// so fields missing from a short line retain their previous value, and it
// owns the ambient baseline latch.
type Parser struct {
	// VerifyChecksum enables validation of an optional NMEA-style "*HH"
	// suffix. Lines without a suffix are always accepted.
	VerifyChecksum bool

	frame    SensorFrame
	baseline Baseline
}

// NewParser returns a parser with no baseline captured yet.
func NewParser(verifyChecksum bool) *Parser {
	return &Parser{VerifyChecksum: verifyChecksum}
}

// Frame returns the most recent frame.
func (p *Parser) Frame() SensorFrame { return p.frame }

// Baseline returns the ambient baseline latch.
func (p *Parser) Baseline() *Baseline { return &p.baseline }

// Parse decodes one line. The returned frame is always usable: field
// failures are collected into the error while the frame falls back to the
// previous axis values and 0 for lights. A checksum mismatch rejects the
// whole line and returns the previous frame with ErrChecksum.
func (p *Parser) Parse(line string) (SensorFrame, error) {
	line = strings.TrimSpace(line)

	if p.VerifyChecksum {
		payload, err := stripChecksum(line)
		if err != nil {
			return p.frame, err
		}
		line = payload
	}

	fields := strings.Split(line, Separator)
	frame := p.frame
	frame.Light1, frame.Light2, frame.Light3 = 0, 0, 0

	var errs []error

	if len(fields) > FieldXAxis {
		if v, err := parseField(fields, FieldXAxis); err != nil {
			errs = append(errs, err)
		} else {
			frame.XAxis = v
		}
	}
	if len(fields) > FieldYAxis {
		if v, err := parseField(fields, FieldYAxis); err != nil {
			errs = append(errs, err)
		} else {
			frame.YAxis = v
		}
	}
	if len(fields) > FieldButton {
		frame.StickButton = strings.TrimSpace(fields[FieldButton]) == "1"
	}

	lights := [...]*float64{&frame.Light1, &frame.Light2, &frame.Light3}
	for i, dst := range lights {
		idx := FieldLight1 + i
		if len(fields) <= idx {
			break
		}
		v, err := parseField(fields, idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*dst = v
		if idx == FieldLight1 {
			p.baseline.Capture(v)
		}
	}

	p.frame = frame
	return frame, errors.Join(errs...)
}

func parseField(fields []string, idx int) (float64, error) {
	raw := strings.TrimSpace(fields[idx])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &FieldError{Index: idx, Value: raw, Err: err}
	}
	return v, nil
}

// stripChecksum removes and verifies a trailing "*HH" suffix.
func stripChecksum(line string) (string, error) {
	star := strings.LastIndex(line, "*")
	if star < 0 {
		return line, nil
	}
	payload, sum := line[:star], line[star+1:]
	if !strings.EqualFold(nmea.Checksum(payload), sum) {
		return "", fmt.Errorf("%w: got %q, want %q", ErrChecksum, sum, nmea.Checksum(payload))
	}
	return payload, nil
}
