package engine

import (
	"context"
	"fmt"
	"strconv"

	"hollowdeep/catalog"
	"hollowdeep/logging"
)

// Player-visible narrative flows through the world's publisher as message
// events; a memory sink captures them in tests.

func (w *World) msg(format string, args ...any) {
	w.msgt(catalog.SoundGeneric, format, args...)
}

func (w *World) msgt(sound catalog.Sound, format string, args ...any) {
	if w.pub == nil {
		return
	}
	w.pub.Publish(context.Background(), logging.Event{
		Type:     logging.EventMessage,
		Tick:     w.turn,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload: logging.MessagePayload{
			Text:  fmt.Sprintf(format, args...),
			Sound: string(sound),
		},
	})
}

// warn records a recoverable internal problem, such as an unmapped effect id.
func (w *World) warn(format string, args ...any) {
	if w.pub == nil {
		return
	}
	w.pub.Publish(context.Background(), logging.Event{
		Type:     logging.EventType("engine_warning"),
		Tick:     w.turn,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySystem,
		Payload: logging.MessagePayload{
			Text: fmt.Sprintf(format, args...),
		},
	})
}

// publish hands a structured event to the configured publisher.
func (w *World) publish(event logging.Event) {
	if w.pub == nil {
		return
	}
	w.pub.Publish(context.Background(), event)
}

// monsterRef identifies a monster in structured events by its arena slot.
func monsterRef(m *Monster) logging.EntityRef {
	ref := logging.EntityRef{Kind: logging.EntityKindMonster}
	if m != nil {
		ref.ID = strconv.Itoa(m.Slot)
	}
	return ref
}

// monsterDesc names a monster for a message. Hidden monsters are "something";
// mid-sentence references use the lowercase form.
func (w *World) monsterDesc(m *Monster, capital bool) string {
	if m == nil || m.Race == nil || !m.Visible {
		if capital {
			return "Something"
		}
		return "something"
	}
	if capital {
		return "The " + m.Race.Name
	}
	return "the " + m.Race.Name
}

// killerDesc is the "died from" attribution for a monster's attack.
func (w *World) killerDesc(m *Monster) string {
	if m == nil || m.Race == nil {
		return "something unseen"
	}
	if !m.Visible {
		return "an unseen " + m.Race.Name
	}
	return "a " + m.Race.Name
}
