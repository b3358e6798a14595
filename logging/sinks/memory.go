package sinks

import (
	"context"
	"sync"

	"hollowdeep/logging"
)

// MemorySink buffers events in memory. Tests use it to trap the messages a
// scenario produced.
type MemorySink struct {
	mu     sync.RWMutex
	events []logging.Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{events: make([]logging.Event, 0)}
}

func (s *MemorySink) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemorySink) Events() []logging.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]logging.Event, len(s.events))
	copy(copied, s.events)
	return copied
}

// Messages returns the narrative text of every message event, in order.
func (s *MemorySink) Messages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, event := range s.events {
		if event.Type != logging.EventMessage {
			continue
		}
		if payload, ok := event.Payload.(logging.MessagePayload); ok {
			out = append(out, payload.Text)
		}
	}
	return out
}

func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
}

func (s *MemorySink) Close(context.Context) error {
	return nil
}
