// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/flashlight_controller/internal/config"
	"github.com/relabs-tech/flashlight_controller/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard is served from the same box
	},
}

const wsWriteTimeout = 2 * time.Second

// stateHub keeps the latest snapshot payload and fans it out to websocket
// clients.
type stateHub struct {
	mu      sync.RWMutex
	last    []byte
	have    bool
	clients map[chan []byte]struct{}
}

func newStateHub() *stateHub {
	return &stateHub{clients: make(map[chan []byte]struct{})}
}

// update validates payload as a snapshot, stores it and broadcasts it.
// Slow clients miss updates rather than block the hub.
func (h *stateHub) update(payload []byte) error {
	var s telemetry.Snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = payload
	h.have = true
	for ch := range h.clients {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

func (h *stateHub) latest() ([]byte, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last, h.have
}

func (h *stateHub) subscribe() chan []byte {
	ch := make(chan []byte, 4)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *stateHub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

func (h *stateHub) handleState(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.latest()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(payload); err != nil {
		log.Printf("web: write error: %v", err)
	}
}

// handleWS streams every snapshot to the client, starting with the latest.
func (h *stateHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	// The dashboard never sends anything; reading only notices the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("web: websocket error: %v", err)
				}
				return
			}
		}
	}()

	if payload, ok := h.latest(); ok {
		if err := writeWS(conn, payload); err != nil {
			return
		}
	}

	for {
		select {
		case <-closed:
			return
		case payload := <-ch:
			if err := writeWS(conn, payload); err != nil {
				log.Printf("web: websocket write error: %v", err)
				return
			}
		}
	}
}

func writeWS(conn *websocket.Conn, payload []byte) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (h *stateHub) routes(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", h.handleState)
	mux.HandleFunc("/ws", h.handleWS)
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return mux
}

// RunWeb serves the dashboard, fed by the game's MQTT state topic.
func RunWeb() error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	hub := newStateHub()

	client, err := connectMQTT(cfg, cfg.MQTTClientIDWeb)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	err = subscribe(client, cfg.TopicState, func(_ mqtt.Client, msg mqtt.Message) {
		if err := hub.update(msg.Payload()); err != nil {
			log.Printf("web: state unmarshal error: %v", err)
		}
	})
	if err != nil {
		return err
	}
	log.Printf("web: subscribed to %s", cfg.TopicState)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, hub.routes("web"))
}
