package logging

import (
	"context"
	"errors"
	"testing"
	"time"
)

type captureSink struct {
	events   []Event
	writeErr error
	closed   bool
	closeErr error
}

func (s *captureSink) Write(event Event) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) Close(context.Context) error {
	s.closed = true
	return s.closeErr
}

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

func TestRouterFiltersBySeverity(t *testing.T) {
	sink := &captureSink{}
	r := NewRouter(nil, Config{MinimumSeverity: SeverityInfo}, []NamedSink{{Name: "mem", Sink: sink}})

	r.Publish(context.Background(), Event{Type: "a", Severity: SeverityDebug})
	r.Publish(context.Background(), Event{Severity: SeverityError}) // no type
	r.Publish(context.Background(), Event{Type: "b", Severity: SeverityInfo})

	if len(sink.events) != 1 || sink.events[0].Type != "b" {
		t.Fatalf("sink received %d events, want only the info one", len(sink.events))
	}
	if got := r.Stats(); got.EventsTotal != 1 || got.SinkErrors != 0 {
		t.Fatalf("stats = %+v", got)
	}
}

func TestRouterStampsTimeAndMergesFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sink := &captureSink{}
	cfg := Config{Fields: map[string]any{"run": "alpha", "seed": 7}}
	r := NewRouter(fixedClock(now), cfg, []NamedSink{{Name: "mem", Sink: sink}})

	r.Publish(context.Background(), Event{
		Type:  "tick",
		Extra: map[string]any{"seed": 42},
	})

	got := sink.events[0]
	if !got.Time.Equal(now) {
		t.Fatalf("time not stamped: %v", got.Time)
	}
	if got.Extra["run"] != "alpha" {
		t.Fatalf("config field not merged: %v", got.Extra)
	}
	if got.Extra["seed"] != 42 {
		t.Fatalf("event field overridden by config: %v", got.Extra["seed"])
	}
}

func TestRouterKeepsExplicitTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	then := now.Add(-time.Hour)
	sink := &captureSink{}
	r := NewRouter(fixedClock(now), Config{}, []NamedSink{{Name: "mem", Sink: sink}})

	r.Publish(context.Background(), Event{Type: "tick", Time: then})
	if !sink.events[0].Time.Equal(then) {
		t.Fatalf("explicit time replaced: %v", sink.events[0].Time)
	}
}

func TestRouterSurvivesFailingSink(t *testing.T) {
	bad := &captureSink{writeErr: errors.New("disk full")}
	good := &captureSink{}
	r := NewRouter(nil, Config{}, []NamedSink{
		{Name: "bad", Sink: bad},
		{Name: "good", Sink: good},
	})

	r.Publish(context.Background(), Event{Type: "tick"})

	if len(good.events) != 1 {
		t.Fatalf("healthy sink starved: %d events", len(good.events))
	}
	if got := r.Stats(); got.EventsTotal != 1 || got.SinkErrors != 1 {
		t.Fatalf("stats = %+v", got)
	}
}

func TestRouterSinkLookup(t *testing.T) {
	sink := &captureSink{}
	r := NewRouter(nil, Config{}, []NamedSink{
		{Name: "mem", Sink: sink},
		{Name: "hole"}, // nil sinks are dropped at construction
	})

	if r.Sink("mem") != sink {
		t.Fatalf("named sink not found")
	}
	if r.Sink("hole") != nil || r.Sink("missing") != nil {
		t.Fatalf("phantom sink resolved")
	}
}

func TestRouterCloseReturnsFirstError(t *testing.T) {
	first := &captureSink{closeErr: errors.New("first")}
	second := &captureSink{closeErr: errors.New("second")}
	r := NewRouter(nil, Config{}, []NamedSink{
		{Name: "a", Sink: first},
		{Name: "b", Sink: second},
	})

	err := r.Close(context.Background())
	if err == nil || err.Error() != "first" {
		t.Fatalf("close error = %v", err)
	}
	if !first.closed || !second.closed {
		t.Fatalf("close did not reach every sink")
	}
}

func TestWithFieldsDoesNotOverrideEventExtras(t *testing.T) {
	var got Event
	p := WithFields(PublisherFunc(func(_ context.Context, event Event) {
		got = event
	}), map[string]any{"source": "sim", "shard": 1})

	p.Publish(context.Background(), Event{Type: "tick", Extra: map[string]any{"shard": 9}})

	if got.Extra["source"] != "sim" {
		t.Fatalf("wrapper field missing: %v", got.Extra)
	}
	if got.Extra["shard"] != 9 {
		t.Fatalf("event extra overridden: %v", got.Extra["shard"])
	}
}

func TestRouterStatsDuringConcurrentPublish(t *testing.T) {
	sink := &captureSink{}
	r := NewRouter(nil, Config{}, []NamedSink{{Name: "mem", Sink: sink}})

	const total = 1000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < total; i++ {
			r.Publish(context.Background(), Event{Type: "tick"})
		}
	}()

	// Read stats while the publisher runs, the way the diagnostics handler
	// does. The race detector flags any non-atomic counter here.
	for {
		select {
		case <-done:
			if got := r.Stats(); got.EventsTotal != total {
				t.Fatalf("events total = %d, want %d", got.EventsTotal, total)
			}
			return
		default:
			if got := r.Stats(); got.EventsTotal > total {
				t.Fatalf("counter overshot: %d", got.EventsTotal)
			}
		}
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.HasSink("console") || cfg.HasSink("json") {
		t.Fatalf("default sinks wrong: %v", cfg.EnabledSinks)
	}

	cfg.Fields = map[string]any{"run": "alpha"}
	cloned := cfg.CloneFields()
	cloned["run"] = "beta"
	if cfg.Fields["run"] != "alpha" {
		t.Fatalf("clone aliased the original map")
	}

	if (Config{}).CloneFields() != nil {
		t.Fatalf("empty fields should clone to nil")
	}
}
