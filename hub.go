package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"hollowdeep/logging"
)

const writeWait = 10 * time.Second

// Hub fans simulation snapshots and engine events out to websocket
// observers. Observers are read-only: they watch the dungeon run, they do
// not steer it.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*subscriber
	nextID      atomic.Uint64
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newHub() *Hub {
	return &Hub{subscribers: make(map[string]*subscriber)}
}

// Subscribe registers a new observer connection.
func (h *Hub) Subscribe(conn *websocket.Conn) (string, *subscriber) {
	id := fmt.Sprintf("observer-%d", h.nextID.Add(1))
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subscribers[id] = sub
	h.mu.Unlock()

	return id, sub
}

// Disconnect drops an observer and closes its connection.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		sub.conn.Close()
	}
}

// ObserverCount reports the number of live observers.
func (h *Hub) ObserverCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// BroadcastSnapshot sends the latest dungeon snapshot to every observer.
func (h *Hub) BroadcastSnapshot(snap snapshotMessage) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("failed to marshal snapshot: %v", err)
		return
	}
	h.broadcast(data)
}

// Write lets the hub serve as a logging sink: every engine event is wrapped
// and streamed to the observers.
func (h *Hub) Write(event logging.Event) error {
	data, err := json.Marshal(eventMessage{Type: "event", Event: event})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	h.broadcast(data)
	return nil
}

// Close shuts down every observer connection.
func (h *Hub) Close(context.Context) error {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[string]*subscriber)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.conn.Close()
	}
	return nil
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.send(data); err != nil {
			log.Printf("failed to send update to %s: %v", id, err)
			h.Disconnect(id)
		}
	}
}

func (s *subscriber) send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

type snapshotMessage struct {
	Type       string        `json:"type"`
	Tick       uint64        `json:"tick"`
	Player     playerView    `json:"player"`
	Monsters   []monsterView `json:"monsters"`
	ServerTime int64         `json:"serverTime"`
}

type eventMessage struct {
	Type  string        `json:"type"`
	Event logging.Event `json:"event"`
}

type playerView struct {
	Y     int  `json:"y"`
	X     int  `json:"x"`
	HP    int  `json:"hp"`
	MaxHP int  `json:"maxHp"`
	Dead  bool `json:"dead,omitempty"`
}

type monsterView struct {
	Slot    int    `json:"slot"`
	Race    string `json:"race"`
	Y       int    `json:"y"`
	X       int    `json:"x"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"maxHp"`
	Visible bool   `json:"visible"`
	Asleep  bool   `json:"asleep,omitempty"`
}
