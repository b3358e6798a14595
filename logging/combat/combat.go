// Package combat builds the structured combat events the engine publishes
// alongside its narrative messages, so sinks can aggregate fight data
// without parsing text.
package combat

import "hollowdeep/logging"

const (
	EventBlow  logging.EventType = "combat_blow"
	EventDeath logging.EventType = "combat_death"
)

// BlowPayload describes one resolved attack slot.
type BlowPayload struct {
	Slot   int    `json:"slot"`
	Method string `json:"method"`
	Effect string `json:"effect"`
	Damage int    `json:"damage"`
	Landed bool   `json:"landed"`
}

// Blow records one attack slot resolution against the player.
func Blow(tick uint64, attacker logging.EntityRef, payload BlowPayload) logging.Event {
	return logging.Event{
		Type:     EventBlow,
		Tick:     tick,
		Actor:    attacker,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	}
}

// Death records the player dying to an attacker.
func Death(tick uint64, killer logging.EntityRef) logging.Event {
	return logging.Event{
		Type:     EventDeath,
		Tick:     tick,
		Actor:    killer,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
	}
}
