// Package engine is the per-turn monster decision core: given the world
// handle it owns (grid, arena, player, lore, options, seeded randomness), it
// decides each monster's action for the turn and resolves the consequences.
package engine

import (
	"math/rand"

	"hollowdeep/catalog"
	"hollowdeep/grid"
	"hollowdeep/logging"
	"hollowdeep/races"
)

// Sight and projection limits, in grid distance.
const (
	MaxSight = 20
	MaxRange = 20
)

// Reproduction limits: the global breeder cap and the crowding divisor.
const (
	MaxRepro      = 100
	monMultAdjust = 8
)

// breakWardRoll is the die a monster's level is tested against to break a
// ward.
const breakWardRoll = 550

// SpellEffects executes the chosen spell against the world. The engine owns
// selection and failure; the surrounding simulation owns what each spell
// actually does.
type SpellEffects interface {
	Cast(w *World, m *Monster, spell catalog.Spell, seen bool)
}

type nopSpellEffects struct{}

func (nopSpellEffects) Cast(*World, *Monster, catalog.Spell, bool) {}

// World is the explicit handle threaded through every engine entry point.
type World struct {
	Grid   *grid.Grid
	Player *Player
	Arena  *Arena

	lore    map[*races.Race]*Lore
	objects []*Item

	rng  *rand.Rand
	pub  logging.Publisher
	opts Options

	spellEffects SpellEffects

	turn     uint64
	numRepro int

	// viewDirty and flowDirty tell the surrounding simulation its view and
	// pathing caches need recomputation.
	viewDirty bool
	flowDirty bool
}

// Config assembles a world.
type Config struct {
	Grid         *grid.Grid
	Player       *Player
	Seed         int64
	Publisher    logging.Publisher
	Options      Options
	SpellEffects SpellEffects
}

func (cfg Config) normalized() Config {
	if cfg.Grid == nil {
		cfg.Grid = grid.New(24, 80)
	}
	if cfg.Player == nil {
		cfg.Player = &Player{Pos: grid.Point{Y: 1, X: 1}, HP: 1, MaxHP: 1, Level: 1}
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if cfg.Publisher == nil {
		cfg.Publisher = logging.NopPublisher()
	}
	if cfg.SpellEffects == nil {
		cfg.SpellEffects = nopSpellEffects{}
	}
	return cfg
}

// NewWorld builds a world from the config, filling defaults for anything
// unset.
func NewWorld(cfg Config) *World {
	cfg = cfg.normalized()
	w := &World{
		Grid:         cfg.Grid,
		Player:       cfg.Player,
		Arena:        newArena(),
		lore:         make(map[*races.Race]*Lore),
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		pub:          cfg.Publisher,
		opts:         cfg.Options,
		spellEffects: cfg.SpellEffects,
	}
	if c := w.Grid.At(w.Player.Pos); c != nil {
		c.Occupant = grid.PlayerOccupant
	}
	return w
}

// Turn returns the current game turn counter.
func (w *World) Turn() uint64 { return w.turn }

// AdvanceTurn steps the game turn counter. The caller's scheduler decides
// when a full game turn has elapsed.
func (w *World) AdvanceTurn() { w.turn++ }

// Options returns the active option set.
func (w *World) Options() Options { return w.opts }

// ViewDirty reports and clears the pending view invalidation.
func (w *World) ViewDirty() bool {
	d := w.viewDirty
	w.viewDirty = false
	return d
}

// FlowDirty reports and clears the pending flow invalidation.
func (w *World) FlowDirty() bool {
	d := w.flowDirty
	w.flowDirty = false
	return d
}

// SpawnMonster places a fresh monster of the race at p. Fails when the cell
// is not empty.
func (w *World) SpawnMonster(r *races.Race, p grid.Point) (*Monster, bool) {
	if r == nil || !w.Grid.IsEmpty(p) {
		return nil, false
	}
	m := &Monster{
		Race:    r,
		Pos:     p,
		HP:      r.AvgHP,
		MaxHP:   r.AvgHP,
		CDis:    grid.Distance(p, w.Player.Pos),
		Unaware: r.Flags.Has(races.FlagMimic),
	}
	m.Timed[MonSleep] = r.Sleep
	slot := w.Arena.place(m)
	w.Grid.At(p).Occupant = slot
	if r.Flags.Has(races.FlagMultiply) {
		w.numRepro++
	}
	return m, true
}

// DeleteMonster removes a monster from play, dropping nothing it carried.
func (w *World) DeleteMonster(m *Monster) {
	if m == nil || m.Race == nil {
		return
	}
	if c := w.Grid.At(m.Pos); c != nil && c.Occupant == m.Slot {
		c.Occupant = 0
	}
	if m.Race.Flags.Has(races.FlagMultiply) && w.numRepro > 0 {
		w.numRepro--
	}
	w.Arena.remove(m.Slot)
	m.Race = nil
}

// MonsterAt returns the monster occupying p, if any.
func (w *World) MonsterAt(p grid.Point) *Monster {
	c := w.Grid.At(p)
	if c == nil || c.Occupant <= 0 {
		return nil
	}
	return w.Arena.Get(c.Occupant)
}

// moveMonster swaps the monster into the destination cell, pushing any
// displaced occupant back into the vacated one.
func (w *World) moveMonster(m *Monster, to grid.Point) {
	from := m.Pos
	w.Grid.MoveOccupant(from, to)
	m.Pos = to
	m.CDis = grid.Distance(to, w.Player.Pos)
	if other := w.MonsterAt(from); other != nil {
		other.Pos = from
		other.CDis = grid.Distance(from, w.Player.Pos)
	}
}

// playerSees reports whether the player's position has line of sight to p.
func (w *World) playerSees(p grid.Point) bool {
	return grid.Distance(w.Player.Pos, p) <= MaxSight &&
		w.Grid.LineOfSight(w.Player.Pos, p)
}

// refreshMonster recomputes the cached distance and visibility for one
// monster before it acts.
func (w *World) refreshMonster(m *Monster) {
	m.CDis = grid.Distance(m.Pos, w.Player.Pos)
	m.Visible = !w.Player.hasTimed(TmdBlind) && w.playerSees(m.Pos)
}

// ClearNice lifts the one-turn spellcasting grace from every monster. The
// scheduler calls this once the player has moved.
func (w *World) ClearNice() {
	for i := 1; i < w.Arena.Max(); i++ {
		if m := w.Arena.Get(i); m != nil {
			m.Nice = false
		}
	}
}

// teleportAway relocates a monster up to dis away, preferring distant empty
// cells and settling for closer ones as attempts run out.
func (w *World) teleportAway(m *Monster, dis int) {
	min := dis / 2
	for tries := 0; tries < 500; tries++ {
		if tries > 0 && tries%100 == 0 && min > 0 {
			min /= 2
		}
		p := grid.Point{
			Y: w.randint0(w.Grid.Height),
			X: w.randint0(w.Grid.Width),
		}
		d := grid.Distance(m.Pos, p)
		if d < min || d > dis {
			continue
		}
		if !w.Grid.IsEmpty(p) || w.Grid.IsWarded(p) {
			continue
		}
		w.moveMonster(m, p)
		return
	}
}

// multiplyMonster spawns a copy of the monster's race in a random adjacent
// empty cell.
func (w *World) multiplyMonster(m *Monster) bool {
	start := w.randint0(8)
	for i := 0; i < 8; i++ {
		d := grid.DirsClockwise[(start+i)&7]
		p := grid.Step(m.Pos, d)
		if !w.Grid.IsEmpty(p) {
			continue
		}
		child, ok := w.SpawnMonster(m.Race, p)
		if ok {
			child.Timed[MonSleep] = 0
			return true
		}
	}
	return false
}

// learnPlayerFlag records whether the player has the given flag in the
// monster's working knowledge, when learning is enabled.
func (w *World) learnPlayerFlag(m *Monster, f catalog.PFlag) {
	if !w.opts.LearnResistances || f == 0 {
		return
	}
	if w.Player.Flags.Has(f) {
		m.Known.Set(f)
	} else {
		m.Known.Unset(f)
	}
}
