package engine

import (
	"hollowdeep/catalog"
	"hollowdeep/grid"
	"hollowdeep/logging/ai"
	"hollowdeep/races"
)

// removeBadSpells prunes spells that cannot help right now, plus anything
// the monster knows the player resists. Stupid monsters skip all of it and
// pick blindly.
func (w *World) removeBadSpells(m *Monster, f *catalog.SpellSet) {
	if m.Race.Flags.Has(races.FlagStupid) {
		return
	}

	if m.HP >= m.MaxHP {
		f.Remove(catalog.SpellHeal)
	}
	if m.Timed[MonFast] > 10 {
		f.Remove(catalog.SpellHaste)
	}
	if m.CDis == 1 {
		f.Remove(catalog.SpellTeleTo)
	}

	var known catalog.PFlagSet
	if w.opts.LearnResistances {
		// Occasionally forget everything learned about the player.
		if w.oneIn(100) {
			m.Known.Clear()
		}
		known = m.Known
	} else if w.opts.CheatKnowledge {
		known = w.Player.Flags
	}

	if !known.Empty() {
		f.RemoveGated(known)
	}

	factor := 1
	if m.Race.Flags.Has(races.FlagSmart) {
		factor = 2
	}
	if known.Has(catalog.PFlagImmMana) && w.randint0(100) < 50*factor {
		f.Remove(catalog.SpellDrainMana)
	}
}

// summonPossible reports whether an empty, unwarded, line-of-sight cell
// exists within two steps of the caster.
func (w *World) summonPossible(from grid.Point) bool {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			p := grid.Point{Y: from.Y + dy, X: from.X + dx}
			if !w.Grid.InBounds(p) {
				continue
			}
			if grid.Distance(from, p) > 2 {
				continue
			}
			if w.Grid.IsWarded(p) {
				continue
			}
			if w.Grid.IsEmpty(p) && w.Grid.LineOfSight(from, p) {
				return true
			}
		}
	}
	return false
}

// cleanShot reports whether a bolt from a to b arrives without hitting
// another monster first.
func (w *World) cleanShot(a, b grid.Point) bool {
	return w.Grid.Projectable(a, b, grid.ProjectStop)
}

// SelectSpell runs the full filtering pipeline and picks a spell, or returns
// SpellNone when the monster should not cast this turn.
func (w *World) SelectSpell(m *Monster) catalog.Spell {
	if m == nil || m.Race == nil {
		return catalog.SpellNone
	}
	if w.Player.Leaving {
		return catalog.SpellNone
	}
	if m.hasTimed(MonConf) {
		return catalog.SpellNone
	}
	if m.Nice {
		return catalog.SpellNone
	}

	if !m.Race.CanCast() {
		return catalog.SpellNone
	}
	chance := (m.Race.FreqInnate + m.Race.FreqSpell) / 2
	if w.randint0(100) >= chance {
		return catalog.SpellNone
	}

	if m.CDis > MaxRange {
		return catalog.SpellNone
	}
	if !w.Grid.Projectable(m.Pos, w.Player.Pos, grid.ProjectNone) {
		return catalog.SpellNone
	}

	f := m.Race.Spells

	// A cornered smart monster narrows its repertoire to whatever might
	// save it.
	if m.Race.Flags.Has(races.FlagSmart) && m.HP < m.MaxHP/10 && w.randint0(100) < 50 {
		f.KeepCat(catalog.CatDesperation)
	}

	w.removeBadSpells(m, &f)

	if !m.Race.Flags.Has(races.FlagStupid) {
		if f.HasCat(catalog.CatBolt) && !w.cleanShot(m.Pos, w.Player.Pos) {
			f.RemoveCat(catalog.CatBolt)
		}
		if !w.summonPossible(m.Pos) {
			f.RemoveCat(catalog.CatSummon)
		}
	}

	spells := f.List()
	if len(spells) == 0 {
		return catalog.SpellNone
	}
	return spells[w.randint0(len(spells))]
}

// CastSpell attempts a cast this turn. Returns true when the turn was
// consumed, whether or not the spell succeeded.
func (w *World) CastSpell(m *Monster) bool {
	spell := w.SelectSpell(m)
	if spell == catalog.SpellNone {
		return false
	}

	if m.Unaware {
		w.becomeAware(m)
	}

	rlev := m.Race.EffectiveLevel()
	name := w.monsterDesc(m, true)
	blind := w.Player.hasTimed(TmdBlind)
	seen := !blind && m.Visible

	info, ok := catalog.SpellLookup(spell)
	if !ok {
		w.warn("spell %d has no catalog entry", spell)
		return false
	}

	failrate := 25 - (rlev+3)/4
	if m.hasTimed(MonFear) {
		failrate += 20
	}
	if m.Race.Flags.Has(races.FlagStupid) {
		failrate = 0
	}

	if !info.Innate && w.randint0(100) < failrate {
		w.msg("%s tries to cast a spell, but fails.", name)
		w.publish(ai.Cast(w.turn, monsterRef(m), ai.CastPayload{Spell: info.Name, Failed: true}))
		return true
	}

	w.disturbPlayer()

	if spell == catalog.SpellHaste {
		if blind {
			w.msg("%s mumbles.", name)
		} else {
			w.msg("%s concentrates on its body.", name)
		}
		m.incTimed(MonFast, 50)
	} else {
		w.spellEffects.Cast(w, m, spell, seen)
	}
	w.publish(ai.Cast(w.turn, monsterRef(m), ai.CastPayload{Spell: info.Name}))

	if seen {
		l := w.Lore(m.Race)
		l.RecordSpell(spell)
		if info.Innate {
			l.RecordCastInnate()
		} else {
			l.RecordCastSpell()
		}
	}

	if w.Player.Dead {
		w.Lore(m.Race).RecordDeath()
	}
	return true
}
