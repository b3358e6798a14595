// Package catalog holds the immutable static tables the engine consults at
// runtime: blow methods, blow effects, monster spells, and the player flag
// enumeration used for learned-resistance bookkeeping. Everything here is
// built once at package init and never mutated.
package catalog

// Method identifies how a physical blow is delivered.
type Method int

const (
	MethodNone Method = iota
	MethodHit
	MethodTouch
	MethodPunch
	MethodKick
	MethodClaw
	MethodBite
	MethodSting
	MethodButt
	MethodCrush
	MethodEngulf
	MethodCrawl
	MethodDrool
	MethodSpit
	MethodGaze
	MethodWail
	MethodSpore
	MethodBeg
	MethodInsult
	MethodMoan
	MethodMax
)

// Sound is the audio category attached to a combat message.
type Sound string

const (
	SoundGeneric Sound = "generic"
	SoundHit     Sound = "mon_hit"
	SoundTouch   Sound = "mon_touch"
	SoundPunch   Sound = "mon_punch"
	SoundKick    Sound = "mon_kick"
	SoundClaw    Sound = "mon_claw"
	SoundBite    Sound = "mon_bite"
	SoundSting   Sound = "mon_sting"
	SoundButt    Sound = "mon_butt"
	SoundCrush   Sound = "mon_crush"
	SoundEngulf  Sound = "mon_engulf"
	SoundCrawl   Sound = "mon_crawl"
	SoundDrool   Sound = "mon_drool"
	SoundSpit    Sound = "mon_spit"
	SoundGaze    Sound = "mon_gaze"
	SoundWail    Sound = "mon_wail"
	SoundSpore   Sound = "mon_spore"
	SoundBeg     Sound = "mon_beg"
	SoundInsult  Sound = "mon_insult"
	SoundMoan    Sound = "mon_moan"
	SoundDestroy Sound = "destroy"
	SoundBreed   Sound = "multiply"
)

// MethodInfo is the static per-method row: whether the blow can cut or stun
// on a critical, whether a visible miss is worth a message, whether the blow
// delivers physical contact, the sound category, and the action text shown
// to the player. An empty Action means the method picks from a flavor list.
type MethodInfo struct {
	Cut      bool
	Stun     bool
	Miss     bool
	Physical bool
	Sound    Sound
	Action   string
}

var methodTable = [MethodMax]MethodInfo{
	MethodNone:   {},
	MethodHit:    {Cut: true, Stun: true, Miss: true, Physical: true, Sound: SoundHit, Action: "hits you."},
	MethodTouch:  {Miss: true, Sound: SoundTouch, Action: "touches you."},
	MethodPunch:  {Stun: true, Miss: true, Physical: true, Sound: SoundPunch, Action: "punches you."},
	MethodKick:   {Stun: true, Miss: true, Physical: true, Sound: SoundKick, Action: "kicks you."},
	MethodClaw:   {Cut: true, Miss: true, Physical: true, Sound: SoundClaw, Action: "claws you."},
	MethodBite:   {Cut: true, Miss: true, Physical: true, Sound: SoundBite, Action: "bites you."},
	MethodSting:  {Miss: true, Physical: true, Sound: SoundSting, Action: "stings you."},
	MethodButt:   {Stun: true, Miss: true, Physical: true, Sound: SoundButt, Action: "butts you."},
	MethodCrush:  {Stun: true, Miss: true, Physical: true, Sound: SoundCrush, Action: "crushes you."},
	MethodEngulf: {Miss: true, Physical: true, Sound: SoundEngulf, Action: "engulfs you."},
	MethodCrawl:  {Sound: SoundCrawl, Action: "crawls on you."},
	MethodDrool:  {Sound: SoundDrool, Action: "drools on you."},
	MethodSpit:   {Miss: true, Sound: SoundSpit, Action: "spits on you."},
	MethodGaze:   {Sound: SoundGaze, Action: "gazes at you."},
	MethodWail:   {Sound: SoundWail, Action: "wails at you."},
	MethodSpore:  {Physical: true, Sound: SoundSpore, Action: "releases spores at you."},
	MethodBeg:    {Sound: SoundBeg, Action: "begs you for money."},
	MethodInsult: {Sound: SoundInsult},
	MethodMoan:   {Sound: SoundMoan},
}

// MethodLookup returns the static row for a method. Unknown ids yield the
// zero row and false; the caller treats that as a recoverable config miss.
func MethodLookup(m Method) (MethodInfo, bool) {
	if m <= MethodNone || m >= MethodMax {
		return MethodInfo{}, false
	}
	return methodTable[m], true
}

// Insults and Moans are the flavor pools for the two methods whose action
// text varies per use.
var Insults = []string{
	"insults you!",
	"insults your mother!",
	"gives you the finger!",
	"humiliates you!",
	"defiles you!",
	"dances around you!",
	"makes obscene gestures!",
	"moons you!!!",
}

var Moans = []string{
	"wants his mushrooms back.",
	"tells you to get off his land.",
	"looks for his dogs.",
	"says 'Did you kill my Fang?'",
	"asks 'Do you want to buy any mushrooms?'",
	"seems sad about something.",
	"asks if you have seen his dogs.",
	"mumbles something about mushrooms.",
}

// Effect identifies what a connecting blow does beyond the raw dice.
type Effect int

const (
	EffectNone Effect = iota
	EffectHurt
	EffectPoison
	EffectDisenchant
	EffectDrainCharges
	EffectEatGold
	EffectEatItem
	EffectEatFood
	EffectEatLight
	EffectAcid
	EffectElec
	EffectFire
	EffectCold
	EffectBlind
	EffectConfuse
	EffectTerrify
	EffectParalyze
	EffectLoseStr
	EffectLoseInt
	EffectLoseWis
	EffectLoseDex
	EffectLoseCon
	EffectLoseAll
	EffectShatter
	EffectExp10
	EffectExp20
	EffectExp40
	EffectExp80
	EffectHallucinate
	EffectMax
)

// effectPowers is the per-effect attack power fed into the hit check.
var effectPowers = [EffectMax]int{
	EffectNone:         0,
	EffectHurt:         40,
	EffectPoison:       20,
	EffectDisenchant:   10,
	EffectDrainCharges: 10,
	EffectEatGold:      0,
	EffectEatItem:      0,
	EffectEatFood:      0,
	EffectEatLight:     0,
	EffectAcid:         20,
	EffectElec:         40,
	EffectFire:         40,
	EffectCold:         40,
	EffectBlind:        0,
	EffectConfuse:      20,
	EffectTerrify:      0,
	EffectParalyze:     0,
	EffectLoseStr:      0,
	EffectLoseInt:      0,
	EffectLoseWis:      0,
	EffectLoseDex:      0,
	EffectLoseCon:      0,
	EffectLoseAll:      0,
	EffectShatter:      60,
	EffectExp10:        20,
	EffectExp20:        20,
	EffectExp40:        20,
	EffectExp80:        20,
	EffectHallucinate:  0,
}

// EffectPower returns the attack power for an effect. Unknown ids are worth
// zero rather than an error.
func EffectPower(e Effect) int {
	if e < EffectNone || e >= EffectMax {
		return 0
	}
	return effectPowers[e]
}
