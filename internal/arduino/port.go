// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package arduino is the serial link to the flashlight controller: it
// reads "|"-separated sensor lines and writes LED commands back.
package arduino

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	serial "github.com/jacobsa/go-serial/serial"
)

// Port is a line-oriented view of the controller's serial port.
type Port struct {
	rwc    io.ReadWriteCloser
	reader *bufio.Reader

	wmu sync.Mutex
}

// OpenPort opens the serial device at baud 8N1.
func OpenPort(name string, baud int) (*Port, error) {
	serialOpts := serial.OpenOptions{
		PortName:              name,
		BaudRate:              uint(baud),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	rwc, err := serial.Open(serialOpts)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	log.Printf("arduino: serial port opened on %s at %d baud", name, baud)

	return NewPort(rwc), nil
}

// NewPort wraps an already open stream.
func NewPort(rwc io.ReadWriteCloser) *Port {
	return &Port{rwc: rwc, reader: bufio.NewReader(rwc)}
}

// ReadLine blocks until a full line arrives and returns it without the
// line terminator.
func (p *Port) ReadLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// WriteLine sends s terminated by a newline.
func (p *Port) WriteLine(s string) error {
	p.wmu.Lock()
	defer p.wmu.Unlock()
	_, err := io.WriteString(p.rwc, s+"\n")
	return err
}

func (p *Port) Close() error {
	return p.rwc.Close()
}
