package sinks

import (
	"testing"

	"hollowdeep/logging"
)

func messageEvent(text string) logging.Event {
	return logging.Event{
		Type:    logging.EventMessage,
		Payload: logging.MessagePayload{Text: text},
	}
}

func TestMemorySinkMessages(t *testing.T) {
	s := NewMemorySink()
	_ = s.Write(messageEvent("first"))
	_ = s.Write(logging.Event{Type: "ai_wake"})
	_ = s.Write(messageEvent("second"))

	got := s.Messages()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("messages = %v", got)
	}
	if len(s.Events()) != 3 {
		t.Fatalf("events = %d, want 3", len(s.Events()))
	}
}

func TestMemorySinkEventsReturnsCopy(t *testing.T) {
	s := NewMemorySink()
	_ = s.Write(messageEvent("original"))

	events := s.Events()
	events[0].Type = "tampered"

	if s.Events()[0].Type != logging.EventMessage {
		t.Fatalf("caller mutation leaked into the sink")
	}
}

func TestMemorySinkReset(t *testing.T) {
	s := NewMemorySink()
	_ = s.Write(messageEvent("gone"))
	s.Reset()

	if len(s.Events()) != 0 || len(s.Messages()) != 0 {
		t.Fatalf("reset left events behind")
	}
}
