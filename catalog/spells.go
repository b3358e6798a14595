package catalog

// PFlag is a player ability or resistance a monster can learn about (or
// cheat-know) and use to prune ineffective spells.
type PFlag uint32

const (
	PFlagResAcid PFlag = 1 << iota
	PFlagResElec
	PFlagResFire
	PFlagResCold
	PFlagResPoison
	PFlagResFear
	PFlagResBlind
	PFlagResConf
	PFlagResNether
	PFlagResDisen
	PFlagFreeAction
	PFlagHoldLife
	PFlagImmMana
	PFlagAggravate
)

// PFlagSet is a bitset of PFlags.
type PFlagSet uint32

func (s PFlagSet) Has(f PFlag) bool { return s&PFlagSet(f) != 0 }
func (s *PFlagSet) Set(f PFlag)     { *s |= PFlagSet(f) }
func (s *PFlagSet) Unset(f PFlag)   { *s &^= PFlagSet(f) }
func (s *PFlagSet) Clear()          { *s = 0 }
func (s PFlagSet) Empty() bool      { return s == 0 }

// SpellCat is a tactical spell category bitmask.
type SpellCat uint16

const (
	CatBolt SpellCat = 1 << iota
	CatBall
	CatBreath
	CatAnnoy
	CatHaste
	CatHeal
	CatEscape
	CatTactic
	CatSummon
	CatInnate
)

// CatDesperation is the category mask a cornered smart monster narrows its
// repertoire to: anything that might save it, never direct damage.
const CatDesperation = CatHaste | CatAnnoy | CatEscape | CatHeal | CatTactic | CatSummon

// Spell identifies one entry of the monster spell repertoire.
type Spell int

const (
	SpellNone Spell = iota

	// Innate attacks never fail their casting roll.
	SpellShriek
	SpellArrow
	SpellBoulder

	SpellBoltAcid
	SpellBoltElec
	SpellBoltFire
	SpellBoltCold
	SpellBoltPoison
	SpellBoltNether

	SpellBallFire
	SpellBallCold
	SpellBallPoison

	SpellBreathFire
	SpellBreathCold
	SpellBreathPoison

	SpellScare
	SpellBlind
	SpellConfuse
	SpellSlow
	SpellHold
	SpellDrainMana
	SpellDarkness
	SpellTeleTo

	SpellHaste
	SpellHeal
	SpellBlink
	SpellTeleport

	SpellSummonKin
	SpellSummonMonster
	SpellSummonMonsters
	SpellSummonUndead

	SpellMax
)

// SpellInfo is the static per-spell row: tactical categories, whether the
// spell is innate, and the player flag that makes it pointless once known.
type SpellInfo struct {
	Name    string
	Cats    SpellCat
	Innate  bool
	GatedBy PFlag
}

var spellTable = [SpellMax]SpellInfo{
	SpellNone: {},

	SpellShriek:  {Name: "shriek", Cats: CatInnate | CatAnnoy, Innate: true},
	SpellArrow:   {Name: "fire an arrow", Cats: CatInnate | CatBolt, Innate: true},
	SpellBoulder: {Name: "hurl a boulder", Cats: CatInnate | CatBolt, Innate: true},

	SpellBoltAcid:   {Name: "cast an acid bolt", Cats: CatBolt, GatedBy: PFlagResAcid},
	SpellBoltElec:   {Name: "cast a lightning bolt", Cats: CatBolt, GatedBy: PFlagResElec},
	SpellBoltFire:   {Name: "cast a fire bolt", Cats: CatBolt, GatedBy: PFlagResFire},
	SpellBoltCold:   {Name: "cast a frost bolt", Cats: CatBolt, GatedBy: PFlagResCold},
	SpellBoltPoison: {Name: "cast a stinking cloud bolt", Cats: CatBolt, GatedBy: PFlagResPoison},
	SpellBoltNether: {Name: "cast a nether bolt", Cats: CatBolt, GatedBy: PFlagResNether},

	SpellBallFire:   {Name: "cast a fire ball", Cats: CatBall, GatedBy: PFlagResFire},
	SpellBallCold:   {Name: "cast a frost ball", Cats: CatBall, GatedBy: PFlagResCold},
	SpellBallPoison: {Name: "cast a poison ball", Cats: CatBall, GatedBy: PFlagResPoison},

	SpellBreathFire:   {Name: "breathe fire", Cats: CatBreath | CatInnate, Innate: true, GatedBy: PFlagResFire},
	SpellBreathCold:   {Name: "breathe frost", Cats: CatBreath | CatInnate, Innate: true, GatedBy: PFlagResCold},
	SpellBreathPoison: {Name: "breathe poison", Cats: CatBreath | CatInnate, Innate: true, GatedBy: PFlagResPoison},

	SpellScare:     {Name: "cast a fearful illusion", Cats: CatAnnoy, GatedBy: PFlagResFear},
	SpellBlind:     {Name: "cast a spell of blindness", Cats: CatAnnoy, GatedBy: PFlagResBlind},
	SpellConfuse:   {Name: "create a mesmerising illusion", Cats: CatAnnoy, GatedBy: PFlagResConf},
	SpellSlow:      {Name: "drain power from your muscles", Cats: CatAnnoy, GatedBy: PFlagFreeAction},
	SpellHold:      {Name: "stare deep into your eyes", Cats: CatAnnoy, GatedBy: PFlagFreeAction},
	SpellDrainMana: {Name: "drain your mana", Cats: CatAnnoy, GatedBy: PFlagImmMana},
	SpellDarkness:  {Name: "gesture in shadow", Cats: CatAnnoy},
	SpellTeleTo:    {Name: "command you to return", Cats: CatAnnoy},

	SpellHaste:    {Name: "concentrate on its body", Cats: CatHaste},
	SpellHeal:     {Name: "concentrate on its wounds", Cats: CatHeal},
	SpellBlink:    {Name: "blink away", Cats: CatEscape | CatTactic},
	SpellTeleport: {Name: "teleport away", Cats: CatEscape},

	SpellSummonKin:      {Name: "summon its kin", Cats: CatSummon},
	SpellSummonMonster:  {Name: "summon help", Cats: CatSummon},
	SpellSummonMonsters: {Name: "summon monsters", Cats: CatSummon},
	SpellSummonUndead:   {Name: "summon the undead", Cats: CatSummon},
}

// SpellLookup returns the static row for a spell. Unknown ids yield the zero
// row and false.
func SpellLookup(s Spell) (SpellInfo, bool) {
	if s <= SpellNone || s >= SpellMax {
		return SpellInfo{}, false
	}
	return spellTable[s], true
}

// SpellSet is the set of spells flagged for a race or remaining after the
// selector's pruning passes. The zero value is empty.
type SpellSet struct {
	bits [(int(SpellMax) + 63) / 64]uint64
}

func (s *SpellSet) Add(sp Spell) {
	if sp <= SpellNone || sp >= SpellMax {
		return
	}
	s.bits[sp/64] |= 1 << (sp % 64)
}

func (s *SpellSet) Remove(sp Spell) {
	if sp <= SpellNone || sp >= SpellMax {
		return
	}
	s.bits[sp/64] &^= 1 << (sp % 64)
}

func (s *SpellSet) Has(sp Spell) bool {
	if sp <= SpellNone || sp >= SpellMax {
		return false
	}
	return s.bits[sp/64]&(1<<(sp%64)) != 0
}

// Empty reports whether no spells remain.
func (s *SpellSet) Empty() bool {
	for _, w := range s.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// List returns the member spells in enumeration (insertion) order.
func (s *SpellSet) List() []Spell {
	var out []Spell
	for sp := SpellNone + 1; sp < SpellMax; sp++ {
		if s.Has(sp) {
			out = append(out, sp)
		}
	}
	return out
}

// HasCat reports whether any member spell carries one of the categories.
func (s *SpellSet) HasCat(cats SpellCat) bool {
	for sp := SpellNone + 1; sp < SpellMax; sp++ {
		if s.Has(sp) {
			if info, ok := SpellLookup(sp); ok && info.Cats&cats != 0 {
				return true
			}
		}
	}
	return false
}

// RemoveCat drops every member spell carrying one of the categories.
func (s *SpellSet) RemoveCat(cats SpellCat) {
	for sp := SpellNone + 1; sp < SpellMax; sp++ {
		if s.Has(sp) {
			if info, ok := SpellLookup(sp); ok && info.Cats&cats != 0 {
				s.Remove(sp)
			}
		}
	}
}

// KeepCat drops every member spell that carries none of the categories.
func (s *SpellSet) KeepCat(cats SpellCat) {
	for sp := SpellNone + 1; sp < SpellMax; sp++ {
		if s.Has(sp) {
			if info, ok := SpellLookup(sp); ok && info.Cats&cats == 0 {
				s.Remove(sp)
			}
		}
	}
}

// RemoveGated drops every member spell whose gating flag is in known.
func (s *SpellSet) RemoveGated(known PFlagSet) {
	for sp := SpellNone + 1; sp < SpellMax; sp++ {
		if s.Has(sp) {
			if info, ok := SpellLookup(sp); ok && info.GatedBy != 0 && known.Has(info.GatedBy) {
				s.Remove(sp)
			}
		}
	}
}
