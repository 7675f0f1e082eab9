// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package arduino

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"sync"
)

// LineSource hands the game loop at most one raw line per tick.
type LineSource interface {
	// NextLine returns the line for this tick, or false when there is none.
	NextLine() (string, bool)
}

// LineReader is a blocking line producer such as *Port.
type LineReader interface {
	ReadLine() (string, error)
}

// BlockingReader reads one line per call on the caller's goroutine. An
// idle port stalls the caller until the controller sends something.
type BlockingReader struct {
	src    LineReader
	closed bool
}

func NewBlockingReader(src LineReader) *BlockingReader {
	return &BlockingReader{src: src}
}

func (r *BlockingReader) NextLine() (string, bool) {
	if r.closed {
		return "", false
	}
	line, err := r.src.ReadLine()
	if err != nil {
		if isClosed(err) {
			r.closed = true
			log.Printf("arduino: serial stream closed: %v", err)
		} else {
			log.Printf("arduino: serial read error: %v", err)
		}
		return "", false
	}
	if line == "" {
		return "", false
	}
	return line, true
}

// LatestReader reads lines on its own goroutine and keeps only the most
// recent one. NextLine never blocks.
type LatestReader struct {
	src LineReader

	mu    sync.Mutex
	line  string
	fresh bool
	err   error

	done chan struct{}
}

func NewLatestReader(src LineReader) *LatestReader {
	return &LatestReader{src: src, done: make(chan struct{})}
}

// Start launches the reader goroutine. It stops on the first read error or
// when ctx is cancelled; a read that is already blocked only returns once
// the underlying port is closed.
func (r *LatestReader) Start(ctx context.Context) {
	go func() {
		defer close(r.done)
		for ctx.Err() == nil {
			line, err := r.src.ReadLine()
			if err != nil {
				if !isClosed(err) {
					log.Printf("arduino: serial read error: %v", err)
				}
				r.mu.Lock()
				r.err = err
				r.mu.Unlock()
				return
			}
			if line == "" {
				continue
			}
			r.mu.Lock()
			r.line = line
			r.fresh = true
			r.mu.Unlock()
		}
	}()
}

// NextLine returns the latest line if one arrived since the previous call.
func (r *LatestReader) NextLine() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.fresh {
		return "", false
	}
	r.fresh = false
	return r.line, true
}

// Err returns the error that stopped the reader, if any.
func (r *LatestReader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done is closed once the reader goroutine has exited.
func (r *LatestReader) Done() <-chan struct{} { return r.done }

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}
