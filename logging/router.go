package logging

import (
	"context"
	"log"
	"os"
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

type NamedSink struct {
	Name string
	Sink Sink
}

// Router fans events out to the configured sinks. The simulation is
// single-threaded and every event is produced on the turn-processing
// goroutine, so the router writes synchronously; a failing sink falls back
// to stderr instead of stalling or dropping the turn. The counters stay
// atomic because Stats is read from HTTP handler goroutines.
type Router struct {
	cfg         Config
	sinks       []NamedSink
	clock       Clock
	fallback    *log.Logger
	minSeverity Severity
	fields      map[string]any

	eventsTotal atomic.Uint64
	sinkErrors  atomic.Uint64
}

type RouterStats struct {
	EventsTotal uint64
	SinkErrors  uint64
}

func NewRouter(clock Clock, cfg Config, namedSinks []NamedSink) *Router {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	r := &Router{
		cfg:         cfg,
		clock:       clock,
		fallback:    log.New(os.Stderr, "[logging] ", log.LstdFlags),
		minSeverity: cfg.MinimumSeverity,
		fields:      cfg.CloneFields(),
	}
	for _, named := range namedSinks {
		if named.Sink == nil {
			continue
		}
		r.sinks = append(r.sinks, named)
	}
	return r
}

func (r *Router) Publish(ctx context.Context, event Event) {
	if event.Type == "" {
		return
	}
	if event.Severity < r.minSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	if len(r.fields) > 0 {
		event = cloneEvent(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(r.fields))
		}
		for k, v := range r.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}
	r.eventsTotal.Add(1)
	for _, named := range r.sinks {
		if err := named.Sink.Write(event); err != nil {
			r.sinkErrors.Add(1)
			r.fallback.Printf("sink %s failed: %v (event type=%s tick=%d)", named.Name, err, event.Type, event.Tick)
		}
	}
}

func (r *Router) Close(ctx context.Context) error {
	var firstErr error
	for _, named := range r.sinks {
		if err := named.Sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) Stats() RouterStats {
	return RouterStats{
		EventsTotal: r.eventsTotal.Load(),
		SinkErrors:  r.sinkErrors.Load(),
	}
}

func (r *Router) Sink(name string) Sink {
	for _, named := range r.sinks {
		if named.Name == name {
			return named.Sink
		}
	}
	return nil
}
