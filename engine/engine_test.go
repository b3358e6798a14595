package engine

import (
	"context"

	"hollowdeep/grid"
	"hollowdeep/logging"
	"hollowdeep/races"
)

// captureMessages returns a publisher that records the text of every
// narrative message it sees.
func captureMessages() (logging.Publisher, *[]string) {
	msgs := &[]string{}
	pub := logging.PublisherFunc(func(_ context.Context, ev logging.Event) {
		if ev.Type != logging.EventMessage {
			return
		}
		if p, ok := ev.Payload.(logging.MessagePayload); ok {
			*msgs = append(*msgs, p.Text)
		}
	})
	return pub, msgs
}

func hasMessage(msgs *[]string, want string) bool {
	for _, m := range *msgs {
		if m == want {
			return true
		}
	}
	return false
}

// openWorld builds a world on an all-floor grid with the player placed and
// healthy enough to survive a few rounds.
func openWorld(seed int64, playerPos grid.Point) (*World, *[]string) {
	pub, msgs := captureMessages()
	w := NewWorld(Config{
		Grid: grid.New(24, 40),
		Player: &Player{
			Pos:   playerPos,
			HP:    100,
			MaxHP: 100,
			Level: 10,
		},
		Seed:      seed,
		Publisher: pub,
		Options:   DefaultOptions(),
	})
	return w, msgs
}

// newRace builds a minimal live race template for tests.
func newRace(name string, level int) *races.Race {
	return &races.Race{
		Name:   name,
		Level:  level,
		MaxExp: level * 10,
		Sense:  20,
		Speed:  110,
		AvgHP:  50,
	}
}
