package engine

import (
	"testing"

	"hollowdeep/catalog"
	"hollowdeep/grid"
	"hollowdeep/races"
)

func TestSelectSpellZeroFrequency(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	r := newRace("orc", 5)
	r.Spells.Add(catalog.SpellBoltFire)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 7})
	if !ok {
		t.Fatalf("spawn failed")
	}

	for i := 0; i < 50; i++ {
		if got := w.SelectSpell(m); got != catalog.SpellNone {
			t.Fatalf("zero-frequency race selected %v", got)
		}
	}
}

func TestSelectSpellOutOfRange(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 2})

	r := newRace("mage", 20)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Spells.Add(catalog.SpellBoltFire)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 30})
	if !ok {
		t.Fatalf("spawn failed")
	}

	if m.CDis <= MaxRange {
		t.Fatalf("test setup: monster too close, cdis %d", m.CDis)
	}
	for i := 0; i < 50; i++ {
		if got := w.SelectSpell(m); got != catalog.SpellNone {
			t.Fatalf("out-of-range monster selected %v", got)
		}
	}
}

func TestSelectSpellPrunesUselessHeal(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	r := newRace("priest", 20)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Spells.Add(catalog.SpellHeal)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 7})
	if !ok {
		t.Fatalf("spawn failed")
	}

	// Healthy: the only spell is pointless, so nothing is cast.
	for i := 0; i < 50; i++ {
		if got := w.SelectSpell(m); got != catalog.SpellNone {
			t.Fatalf("full-health monster selected %v", got)
		}
	}

	// Hurt: the heal goes through.
	m.HP = 1
	if got := w.SelectSpell(m); got != catalog.SpellHeal {
		t.Fatalf("hurt monster selected %v, want heal", got)
	}
}

func TestStupidMonsterSkipsPruning(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	r := newRace("jelly", 20)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Flags.Set(races.FlagStupid)
	r.Spells.Add(catalog.SpellHeal)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 7})
	if !ok {
		t.Fatalf("spawn failed")
	}

	if got := w.SelectSpell(m); got != catalog.SpellHeal {
		t.Fatalf("stupid monster pruned its heal, got %v", got)
	}
}

func TestSelectSpellTeleToUselessWhenAdjacent(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	r := newRace("warlock", 20)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Spells.Add(catalog.SpellTeleTo)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 6})
	if !ok {
		t.Fatalf("spawn failed")
	}

	if got := w.SelectSpell(m); got != catalog.SpellNone {
		t.Fatalf("adjacent monster selected %v", got)
	}

	far, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 9})
	if !ok {
		t.Fatalf("spawn failed")
	}
	if got := w.SelectSpell(far); got != catalog.SpellTeleTo {
		t.Fatalf("distant monster selected %v, want teleport-to", got)
	}
}

func TestBoltNeedsCleanShot(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	r := newRace("archer", 20)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Spells.Add(catalog.SpellBoltFire)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 9})
	if !ok {
		t.Fatalf("spawn failed")
	}

	if got := w.SelectSpell(m); got != catalog.SpellBoltFire {
		t.Fatalf("clear shot selected %v, want fire bolt", got)
	}

	// An ally in the line of fire suppresses bolts.
	if _, ok := w.SpawnMonster(newRace("rat", 1), grid.Point{Y: 5, X: 7}); !ok {
		t.Fatalf("spawn failed")
	}
	for i := 0; i < 50; i++ {
		if got := w.SelectSpell(m); got != catalog.SpellNone {
			t.Fatalf("blocked shot selected %v", got)
		}
	}
}

func TestCheatKnowledgePrunesGatedSpells(t *testing.T) {
	w := NewWorld(Config{
		Grid:   grid.New(24, 40),
		Player: &Player{Pos: grid.Point{Y: 5, X: 5}, HP: 100, MaxHP: 100, Level: 10},
		Seed:   1,
		Options: Options{
			CheatKnowledge: true,
		},
	})
	w.Player.Flags.Set(catalog.PFlagResFire)

	r := newRace("mage", 20)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Spells.Add(catalog.SpellBoltFire)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 9})
	if !ok {
		t.Fatalf("spawn failed")
	}

	for i := 0; i < 50; i++ {
		if got := w.SelectSpell(m); got != catalog.SpellNone {
			t.Fatalf("cheating monster cast a resisted %v", got)
		}
	}
}

func TestLearnPlayerFlagTracksReality(t *testing.T) {
	w, _ := openWorld(9, grid.Point{Y: 5, X: 5})
	w.Player.Flags.Set(catalog.PFlagResFire)

	m, ok := w.SpawnMonster(newRace("mage", 20), grid.Point{Y: 5, X: 9})
	if !ok {
		t.Fatalf("spawn failed")
	}

	// Exposure to a held resistance is remembered.
	w.learnPlayerFlag(m, catalog.PFlagResFire)
	if !m.Known.Has(catalog.PFlagResFire) {
		t.Fatalf("held resistance not learned")
	}

	// Exposure to a missing one clears any stale belief.
	m.Known.Set(catalog.PFlagResCold)
	w.learnPlayerFlag(m, catalog.PFlagResCold)
	if m.Known.Has(catalog.PFlagResCold) {
		t.Fatalf("stale belief about a missing resistance survived")
	}

	// A learned resistance gates the matching spell set entries.
	var f catalog.SpellSet
	f.Add(catalog.SpellBoltFire)
	f.Add(catalog.SpellBoltCold)
	f.RemoveGated(m.Known)
	if f.Has(catalog.SpellBoltFire) {
		t.Fatalf("known fire resistance did not gate the fire bolt")
	}
	if !f.Has(catalog.SpellBoltCold) {
		t.Fatalf("unknown cold resistance gated the cold bolt")
	}
}

func TestCastHaste(t *testing.T) {
	w, msgs := openWorld(1, grid.Point{Y: 5, X: 5})

	// Level 97+ zeroes the failure rate.
	r := newRace("sorcerer", 100)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Spells.Add(catalog.SpellHaste)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 9})
	if !ok {
		t.Fatalf("spawn failed")
	}
	w.refreshMonster(m)

	if !w.CastSpell(m) {
		t.Fatalf("cast did not consume the turn")
	}
	if m.Timed[MonFast] != 50 {
		t.Fatalf("haste timer = %d, want 50", m.Timed[MonFast])
	}
	if !hasMessage(msgs, "The sorcerer concentrates on its body.") {
		t.Fatalf("missing haste message, got %v", *msgs)
	}
	if w.Lore(r).CastSpell != 1 {
		t.Fatalf("seen cast not recorded")
	}
}

func TestNiceMonsterHoldsFire(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	r := newRace("mage", 20)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Spells.Add(catalog.SpellBoltFire)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 9})
	if !ok {
		t.Fatalf("spawn failed")
	}

	m.Nice = true
	if got := w.SelectSpell(m); got != catalog.SpellNone {
		t.Fatalf("nice monster selected %v", got)
	}

	w.ClearNice()
	if got := w.SelectSpell(m); got != catalog.SpellBoltFire {
		t.Fatalf("after grace expired, selected %v", got)
	}
}

func TestDesperationNarrowsToEscapes(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	r := newRace("lich", 40)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Flags.Set(races.FlagSmart)
	r.Spells.Add(catalog.SpellBoltNether)
	r.Spells.Add(catalog.SpellTeleport)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 9})
	if !ok {
		t.Fatalf("spawn failed")
	}
	m.HP = 1

	// The desperation narrowing fires half the time; when it does, only
	// the escape may be chosen. The bolt must become rare, never absent
	// logic-wise, so assert the escape dominates a long sample.
	escapes := 0
	for i := 0; i < 200; i++ {
		switch w.SelectSpell(m) {
		case catalog.SpellTeleport:
			escapes++
		}
	}
	if escapes < 50 {
		t.Fatalf("cornered smart monster rarely fled: %d/200", escapes)
	}
}

func TestSpellExecutorReceivesCast(t *testing.T) {
	var got catalog.Spell
	exec := spellEffectsFunc(func(_ *World, _ *Monster, spell catalog.Spell, _ bool) {
		got = spell
	})

	w := NewWorld(Config{
		Grid:         grid.New(24, 40),
		Player:       &Player{Pos: grid.Point{Y: 5, X: 5}, HP: 100, MaxHP: 100, Level: 10},
		Seed:         1,
		SpellEffects: exec,
		Options:      DefaultOptions(),
	})

	r := newRace("sorcerer", 100)
	r.FreqInnate = 100
	r.FreqSpell = 100
	r.Spells.Add(catalog.SpellBoltFire)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 9})
	if !ok {
		t.Fatalf("spawn failed")
	}

	if !w.CastSpell(m) {
		t.Fatalf("cast did not consume the turn")
	}
	if got != catalog.SpellBoltFire {
		t.Fatalf("executor saw %v, want fire bolt", got)
	}
}

// spellEffectsFunc adapts a function to the SpellEffects interface.
type spellEffectsFunc func(*World, *Monster, catalog.Spell, bool)

func (f spellEffectsFunc) Cast(w *World, m *Monster, spell catalog.Spell, seen bool) {
	f(w, m, spell, seen)
}
