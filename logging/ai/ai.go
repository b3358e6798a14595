// Package ai builds the structured decision events the engine publishes as
// monsters pick their actions.
package ai

import "hollowdeep/logging"

const (
	EventWake logging.EventType = "ai_wake"
	EventCast logging.EventType = "ai_cast"
	EventFlee logging.EventType = "ai_flee"
)

// CastPayload names the chosen spell and whether the cast fizzled.
type CastPayload struct {
	Spell  string `json:"spell"`
	Failed bool   `json:"failed"`
}

// Wake records a monster waking from sleep.
func Wake(tick uint64, actor logging.EntityRef) logging.Event {
	return logging.Event{
		Type:     EventWake,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryAI,
	}
}

// Cast records a spell selection resolving.
func Cast(tick uint64, actor logging.EntityRef, payload CastPayload) logging.Event {
	return logging.Event{
		Type:     EventCast,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryAI,
		Payload:  payload,
	}
}

// Flee records a monster switching to flight.
func Flee(tick uint64, actor logging.EntityRef) logging.Event {
	return logging.Event{
		Type:     EventFlee,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryAI,
	}
}
