package engine

import (
	"hollowdeep/catalog"
	"hollowdeep/races"
)

// Lore counter ceilings. Most observation counters saturate at a byte; only
// the death count gets more headroom.
const (
	loreCounterMax = 255
	loreDeathsMax  = 32767
)

// Lore is the accumulated player-visible knowledge about one race. Every
// mutation goes through a record method so observation sites stay auditable.
type Lore struct {
	Sights     int
	Ignore     int
	Wake       int
	CastInnate int
	CastSpell  int
	Deaths     int

	Blows [races.BlowMax]int

	Flags  races.FlagSet
	Spells catalog.SpellSet
}

func saturate(v *int, max int) {
	if *v < max {
		*v++
	}
}

// RecordSight notes the player seeing a member of the race.
func (l *Lore) RecordSight() { saturate(&l.Sights, loreCounterMax) }

// RecordIgnore notes a sleeping monster shrugging off the player's noise.
func (l *Lore) RecordIgnore() { saturate(&l.Ignore, loreCounterMax) }

// RecordWake notes a monster waking in view of the player.
func (l *Lore) RecordWake() { saturate(&l.Wake, loreCounterMax) }

// RecordCastInnate notes an observed innate attack.
func (l *Lore) RecordCastInnate() { saturate(&l.CastInnate, loreCounterMax) }

// RecordCastSpell notes an observed non-innate cast.
func (l *Lore) RecordCastSpell() { saturate(&l.CastSpell, loreCounterMax) }

// RecordDeath notes a player death attributed to the race.
func (l *Lore) RecordDeath() { saturate(&l.Deaths, loreDeathsMax) }

// RecordBlow notes an observed use of one attack slot.
func (l *Lore) RecordBlow(slot int) {
	if slot < 0 || slot >= races.BlowMax {
		return
	}
	saturate(&l.Blows[slot], loreCounterMax)
}

// BlowsSeen returns the observation count for one attack slot.
func (l *Lore) BlowsSeen(slot int) int {
	if slot < 0 || slot >= races.BlowMax {
		return 0
	}
	return l.Blows[slot]
}

// RecordFlag marks a behavioral capability as tested: the player now knows
// whether the race has it. Readers intersect with the race's actual flags.
func (l *Lore) RecordFlag(f races.Flag) {
	l.Flags.Set(f)
}

// RecordSpell marks a spell as seen.
func (l *Lore) RecordSpell(s catalog.Spell) {
	l.Spells.Add(s)
}

// Lore returns the (lazily created) lore record for a race.
func (w *World) Lore(r *races.Race) *Lore {
	if l, ok := w.lore[r]; ok {
		return l
	}
	l := &Lore{}
	w.lore[r] = l
	return l
}
