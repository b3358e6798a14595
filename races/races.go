// Package races loads the static monster race templates the engine runs on.
// Templates are authored declaratively in YAML, validated against the blow
// and spell catalogs at load, and shared read-only between every monster of
// the race.
package races

import (
	"hollowdeep/catalog"
)

// Flag is a behavioral capability bit on a race.
type Flag uint32

const (
	FlagStupid Flag = 1 << iota
	FlagSmart
	FlagGroupAI
	FlagMultiply
	FlagNeverMove
	FlagNeverBlow
	FlagOpenDoor
	FlagBashDoor
	FlagPassWall
	FlagKillWall
	FlagKillBody
	FlagMoveBody
	FlagTakeItem
	FlagKillItem
	FlagRand25
	FlagRand50
	FlagHasLight
	FlagEvil
	FlagMimic
)

// FlagSet is a bitset of race flags.
type FlagSet uint32

func (s FlagSet) Has(f Flag) bool { return s&FlagSet(f) != 0 }
func (s *FlagSet) Set(f Flag)     { *s |= FlagSet(f) }

// HasAny reports whether any of the given flags is set.
func (s FlagSet) HasAny(fs ...Flag) bool {
	for _, f := range fs {
		if s.Has(f) {
			return true
		}
	}
	return false
}

// HasAll reports whether all of the given flags are set.
func (s FlagSet) HasAll(fs ...Flag) bool {
	for _, f := range fs {
		if !s.Has(f) {
			return false
		}
	}
	return true
}

// BlowMax is the fixed number of attack slots a race can fill.
const BlowMax = 4

// Blow is one slot of a race's physical attack table.
type Blow struct {
	Method catalog.Method
	Effect catalog.Effect
	Dice   int
	Sides  int
}

// Race is the static, shared template for one monster kind.
type Race struct {
	Name  string
	Level int
	// MaxExp ranks races for trample/push comparisons and scores kills.
	MaxExp int
	// Sense is the awareness radius (aaf) governing flow-based detection.
	Sense int
	Speed int
	AvgHP int
	// Sleep is the initial sleep counter for a freshly spawned monster.
	Sleep int

	Flags FlagSet

	// FreqInnate and FreqSpell are the percent chances, averaged, that the
	// monster attempts a cast on any given turn.
	FreqInnate int
	FreqSpell  int
	Spells     catalog.SpellSet

	Blows [BlowMax]Blow
}

// CanCast reports whether the race has any castable frequency at all.
func (r *Race) CanCast() bool {
	return (r.FreqInnate+r.FreqSpell)/2 > 0
}

// EffectiveLevel never reports below 1; derived combat math divides by it.
func (r *Race) EffectiveLevel() int {
	if r.Level < 1 {
		return 1
	}
	return r.Level
}
