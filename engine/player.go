package engine

import (
	"hollowdeep/catalog"
	"hollowdeep/grid"
)

// PlayerTimed indexes the player's timed status counters.
type PlayerTimed int

const (
	TmdBlind PlayerTimed = iota
	TmdAfraid
	TmdConfused
	TmdParalyzed
	TmdPoisoned
	TmdCut
	TmdStun
	TmdHallucinate
	TmdProtEvil
	TmdMax
)

// Stat indexes the player's drainable ability scores.
type Stat int

const (
	StatStr Stat = iota
	StatInt
	StatWis
	StatDex
	StatCon
	StatMax
)

// statFloor is the lowest a drained stat can fall.
const statFloor = 3

// PackSize is the number of pack slots theft and drain effects search.
const PackSize = 23

// Player is the engine's view of the player: the fields the combat resolver
// and turn orchestrator read and mutate. The surrounding simulation owns
// everything else about the character.
type Player struct {
	Pos   grid.Point
	HP    int
	MaxHP int
	Level int
	Exp   int
	Gold  int

	// AC and ToAC sum to the armor total monster attacks test against.
	AC   int
	ToAC int

	// Noise is the anti-stealth value sleeping monsters roll against.
	Noise int

	// SaveSkill is the percent chance to shrug off timed attack effects.
	SaveSkill int

	// DexSave plus Level is the percent chance to foil theft.
	DexSave int

	Stats [StatMax]int
	Timed [TmdMax]int

	// Flags are the player's resistances and abilities as monsters can
	// learn (or cheat-know) them.
	Flags catalog.PFlagSet

	Inventory [PackSize]*Item
	Light     *Item

	// Leaving is set when the player is departing the level; monsters
	// stop acting against a leaving player.
	Leaving bool
	Dead    bool

	// Disturbed is raised whenever a monster action interrupts resting
	// or running. The caller clears it between player turns.
	Disturbed bool
}

func (p *Player) armor() int {
	return p.AC + p.ToAC
}

func (p *Player) hasTimed(t PlayerTimed) bool {
	return t >= 0 && t < TmdMax && p.Timed[t] > 0
}

// IncTimed raises a timed status and reports whether the status visibly
// changed (it was not already active).
func (p *Player) IncTimed(t PlayerTimed, amount int) bool {
	if t < 0 || t >= TmdMax || amount <= 0 {
		return false
	}
	was := p.Timed[t]
	p.Timed[t] += amount
	return was == 0
}

// DrainStat lowers a stat by one point, reporting whether anything changed.
func (p *Player) DrainStat(s Stat) bool {
	if s < 0 || s >= StatMax {
		return false
	}
	if p.Stats[s] <= statFloor {
		return false
	}
	p.Stats[s]--
	return true
}

// LoseExp removes experience, clamping at zero.
func (p *Player) LoseExp(amount int) {
	p.Exp -= amount
	if p.Exp < 0 {
		p.Exp = 0
	}
}

// disturbPlayer interrupts whatever the player is doing.
func (w *World) disturbPlayer() {
	w.Player.Disturbed = true
}

// takeHit applies damage to the player and records death with its cause.
func (w *World) takeHit(damage int, killer string) {
	if damage <= 0 {
		return
	}
	p := w.Player
	p.HP -= damage
	if p.HP <= 0 && !p.Dead {
		p.HP = 0
		p.Dead = true
		p.Leaving = true
		w.msg("You die from the wounds inflicted by %s.", killer)
	}
}
