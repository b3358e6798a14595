package engine

import (
	"hollowdeep/catalog"
	"hollowdeep/grid"
	"hollowdeep/races"
)

// MonTimed indexes a monster's timed status counters.
type MonTimed int

const (
	MonSleep MonTimed = iota
	MonFear
	MonConf
	MonStun
	MonFast
	MonSlow
	MonTimedMax
)

// Monster is one live monster instance. Instances live in the world's arena
// and are referenced by stable slot.
type Monster struct {
	Slot int
	Race *races.Race

	Pos   grid.Point
	HP    int
	MaxHP int

	// Energy is the banked turn budget; a processing pass deducts a fixed
	// cost from every monster it visits.
	Energy int

	// CDis is the cached distance to the player, refreshed each pass.
	CDis int

	// Visible mirrors the player's current view of the monster.
	Visible bool

	// Unaware marks a disguised mimic still lying in wait.
	Unaware bool

	// Nice suppresses spellcasting until the player has had a turn.
	Nice bool

	Timed [MonTimedMax]int

	// Known is the learned (or cheated) set of player flags used to prune
	// ineffective spells.
	Known catalog.PFlagSet

	// Carried holds stolen and picked-up items.
	Carried []*Item
}

func (m *Monster) hasTimed(t MonTimed) bool {
	return t >= 0 && t < MonTimedMax && m.Timed[t] > 0
}

func (m *Monster) isMimicking() bool {
	return m.Unaware && m.Race != nil && m.Race.Flags.Has(races.FlagMimic)
}

// incTimed raises a monster timed counter.
func (m *Monster) incTimed(t MonTimed, amount int) {
	if t < 0 || t >= MonTimedMax || amount <= 0 {
		return
	}
	m.Timed[t] += amount
}

// decTimed lowers a monster timed counter, clamping at zero.
func (m *Monster) decTimed(t MonTimed, amount int) {
	if t < 0 || t >= MonTimedMax || amount <= 0 {
		return
	}
	m.Timed[t] -= amount
	if m.Timed[t] < 0 {
		m.Timed[t] = 0
	}
}

// clearTimed zeroes a counter and reports whether it was active.
func (m *Monster) clearTimed(t MonTimed) bool {
	if t < 0 || t >= MonTimedMax || m.Timed[t] == 0 {
		return false
	}
	m.Timed[t] = 0
	return true
}

// heal restores hit points, clamped at the maximum.
func (m *Monster) heal(amount int) {
	if amount <= 0 {
		return
	}
	m.HP += amount
	if m.HP > m.MaxHP {
		m.HP = m.MaxHP
	}
}

// carry adds an item to the monster's stash.
func (m *Monster) carry(item *Item) {
	if item != nil {
		m.Carried = append(m.Carried, item)
	}
}

// becomeAware strips a disguised monster of its ambush cover.
func (w *World) becomeAware(m *Monster) {
	if m == nil || !m.Unaware {
		return
	}
	m.Unaware = false
	if w.playerSees(m.Pos) {
		w.msg("It was %s!", w.killerDesc(m))
	}
}

// Arena is the index-stable monster table. Slot 0 is never used; a dead slot
// holds nil until reused, so reverse iteration survives mid-pass deletion.
type Arena struct {
	slots []*Monster
}

func newArena() *Arena {
	return &Arena{slots: make([]*Monster, 1)}
}

// Max returns one past the highest slot ever allocated.
func (a *Arena) Max() int {
	return len(a.slots)
}

// Get returns the monster in a slot, or nil for dead or out-of-range slots.
func (a *Arena) Get(slot int) *Monster {
	if slot < 1 || slot >= len(a.slots) {
		return nil
	}
	return a.slots[slot]
}

// place stores a monster in the lowest free slot, growing if needed.
func (a *Arena) place(m *Monster) int {
	for i := 1; i < len(a.slots); i++ {
		if a.slots[i] == nil {
			a.slots[i] = m
			m.Slot = i
			return i
		}
	}
	a.slots = append(a.slots, m)
	m.Slot = len(a.slots) - 1
	return m.Slot
}

// remove tombstones a slot.
func (a *Arena) remove(slot int) {
	if slot >= 1 && slot < len(a.slots) {
		a.slots[slot] = nil
	}
}

// Count returns the number of live monsters.
func (a *Arena) Count() int {
	n := 0
	for i := 1; i < len(a.slots); i++ {
		if a.slots[i] != nil {
			n++
		}
	}
	return n
}

// Compact trims trailing dead slots. Live slots never move, so stable slot
// references stay valid.
func (a *Arena) Compact() {
	end := len(a.slots)
	for end > 1 && a.slots[end-1] == nil {
		end--
	}
	a.slots = a.slots[:end]
}
