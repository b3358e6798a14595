package races

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"hollowdeep/catalog"
)

// BlowDefinition is the YAML shape of one attack slot.
type BlowDefinition struct {
	Method string `yaml:"method" json:"method" jsonschema:"title=Blow method,description=Delivery method name from the blow catalog"`
	Effect string `yaml:"effect" json:"effect" jsonschema:"title=Blow effect,description=Effect name from the blow catalog"`
	Dice   int    `yaml:"dice" json:"dice" jsonschema:"minimum=0"`
	Sides  int    `yaml:"sides" json:"sides" jsonschema:"minimum=0"`
}

// RaceDefinition is the YAML shape of one race entry. It is shared with the
// schema generator so the bestiary format stays machine-validatable.
type RaceDefinition struct {
	Name       string           `yaml:"name" json:"name" jsonschema:"title=Race name"`
	Level      int              `yaml:"level" json:"level" jsonschema:"minimum=0"`
	MaxExp     int              `yaml:"mexp" json:"mexp" jsonschema:"minimum=0,description=Experience value and trample rank"`
	Sense      int              `yaml:"aaf" json:"aaf" jsonschema:"minimum=0,description=Awareness radius for flow sensing"`
	Speed      int              `yaml:"speed" json:"speed"`
	AvgHP      int              `yaml:"hp" json:"hp" jsonschema:"minimum=1"`
	Sleep      int              `yaml:"sleep" json:"sleep" jsonschema:"minimum=0"`
	Flags      []string         `yaml:"flags" json:"flags,omitempty"`
	FreqInnate int              `yaml:"freq-innate" json:"freqInnate" jsonschema:"minimum=0,maximum=100"`
	FreqSpell  int              `yaml:"freq-spell" json:"freqSpell" jsonschema:"minimum=0,maximum=100"`
	Spells     []string         `yaml:"spells" json:"spells,omitempty"`
	Blows      []BlowDefinition `yaml:"blows" json:"blows,omitempty"`
}

// FileDefinition is the root of a bestiary document.
type FileDefinition struct {
	Races []RaceDefinition `yaml:"races" json:"races"`
}

var flagNames = map[string]Flag{
	"stupid":     FlagStupid,
	"smart":      FlagSmart,
	"group-ai":   FlagGroupAI,
	"multiply":   FlagMultiply,
	"never-move": FlagNeverMove,
	"never-blow": FlagNeverBlow,
	"open-door":  FlagOpenDoor,
	"bash-door":  FlagBashDoor,
	"pass-wall":  FlagPassWall,
	"kill-wall":  FlagKillWall,
	"kill-body":  FlagKillBody,
	"move-body":  FlagMoveBody,
	"take-item":  FlagTakeItem,
	"kill-item":  FlagKillItem,
	"rand-25":    FlagRand25,
	"rand-50":    FlagRand50,
	"has-light":  FlagHasLight,
	"evil":       FlagEvil,
	"mimic":      FlagMimic,
}

var methodNames = map[string]catalog.Method{
	"hit":    catalog.MethodHit,
	"touch":  catalog.MethodTouch,
	"punch":  catalog.MethodPunch,
	"kick":   catalog.MethodKick,
	"claw":   catalog.MethodClaw,
	"bite":   catalog.MethodBite,
	"sting":  catalog.MethodSting,
	"butt":   catalog.MethodButt,
	"crush":  catalog.MethodCrush,
	"engulf": catalog.MethodEngulf,
	"crawl":  catalog.MethodCrawl,
	"drool":  catalog.MethodDrool,
	"spit":   catalog.MethodSpit,
	"gaze":   catalog.MethodGaze,
	"wail":   catalog.MethodWail,
	"spore":  catalog.MethodSpore,
	"beg":    catalog.MethodBeg,
	"insult": catalog.MethodInsult,
	"moan":   catalog.MethodMoan,
}

var effectNames = map[string]catalog.Effect{
	"none":          catalog.EffectNone,
	"hurt":          catalog.EffectHurt,
	"poison":        catalog.EffectPoison,
	"disenchant":    catalog.EffectDisenchant,
	"drain-charges": catalog.EffectDrainCharges,
	"eat-gold":      catalog.EffectEatGold,
	"eat-item":      catalog.EffectEatItem,
	"eat-food":      catalog.EffectEatFood,
	"eat-light":     catalog.EffectEatLight,
	"acid":          catalog.EffectAcid,
	"elec":          catalog.EffectElec,
	"fire":          catalog.EffectFire,
	"cold":          catalog.EffectCold,
	"blind":         catalog.EffectBlind,
	"confuse":       catalog.EffectConfuse,
	"terrify":       catalog.EffectTerrify,
	"paralyze":      catalog.EffectParalyze,
	"lose-str":      catalog.EffectLoseStr,
	"lose-int":      catalog.EffectLoseInt,
	"lose-wis":      catalog.EffectLoseWis,
	"lose-dex":      catalog.EffectLoseDex,
	"lose-con":      catalog.EffectLoseCon,
	"lose-all":      catalog.EffectLoseAll,
	"shatter":       catalog.EffectShatter,
	"exp-10":        catalog.EffectExp10,
	"exp-20":        catalog.EffectExp20,
	"exp-40":        catalog.EffectExp40,
	"exp-80":        catalog.EffectExp80,
	"hallucinate":   catalog.EffectHallucinate,
}

var spellNames = map[string]catalog.Spell{
	"shriek":          catalog.SpellShriek,
	"arrow":           catalog.SpellArrow,
	"boulder":         catalog.SpellBoulder,
	"bolt-acid":       catalog.SpellBoltAcid,
	"bolt-elec":       catalog.SpellBoltElec,
	"bolt-fire":       catalog.SpellBoltFire,
	"bolt-cold":       catalog.SpellBoltCold,
	"bolt-poison":     catalog.SpellBoltPoison,
	"bolt-nether":     catalog.SpellBoltNether,
	"ball-fire":       catalog.SpellBallFire,
	"ball-cold":       catalog.SpellBallCold,
	"ball-poison":     catalog.SpellBallPoison,
	"breath-fire":     catalog.SpellBreathFire,
	"breath-cold":     catalog.SpellBreathCold,
	"breath-poison":   catalog.SpellBreathPoison,
	"scare":           catalog.SpellScare,
	"blind":           catalog.SpellBlind,
	"confuse":         catalog.SpellConfuse,
	"slow":            catalog.SpellSlow,
	"hold":            catalog.SpellHold,
	"drain-mana":      catalog.SpellDrainMana,
	"darkness":        catalog.SpellDarkness,
	"tele-to":         catalog.SpellTeleTo,
	"haste":           catalog.SpellHaste,
	"heal":            catalog.SpellHeal,
	"blink":           catalog.SpellBlink,
	"teleport":        catalog.SpellTeleport,
	"summon-kin":      catalog.SpellSummonKin,
	"summon-monster":  catalog.SpellSummonMonster,
	"summon-monsters": catalog.SpellSummonMonsters,
	"summon-undead":   catalog.SpellSummonUndead,
}

//go:embed data/races.yaml
var defaultBestiary []byte

// LoadDefault parses the embedded bestiary.
func LoadDefault() ([]*Race, error) {
	return Load(defaultBestiary)
}

// Load parses and validates a YAML bestiary document.
func Load(data []byte) ([]*Race, error) {
	var file FileDefinition
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("races: parse bestiary: %w", err)
	}
	if len(file.Races) == 0 {
		return nil, fmt.Errorf("races: bestiary has no races")
	}

	out := make([]*Race, 0, len(file.Races))
	for i, def := range file.Races {
		race, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("races: entry %d (%q): %w", i, def.Name, err)
		}
		out = append(out, race)
	}
	return out, nil
}

func (def RaceDefinition) build() (*Race, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if def.AvgHP < 1 {
		return nil, fmt.Errorf("hp must be at least 1")
	}
	if len(def.Blows) > BlowMax {
		return nil, fmt.Errorf("too many blows: %d (max %d)", len(def.Blows), BlowMax)
	}

	race := &Race{
		Name:       def.Name,
		Level:      def.Level,
		MaxExp:     def.MaxExp,
		Sense:      def.Sense,
		Speed:      def.Speed,
		AvgHP:      def.AvgHP,
		Sleep:      def.Sleep,
		FreqInnate: def.FreqInnate,
		FreqSpell:  def.FreqSpell,
	}

	for _, name := range def.Flags {
		flag, ok := flagNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown flag %q", name)
		}
		race.Flags.Set(flag)
	}

	for _, name := range def.Spells {
		spell, ok := spellNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown spell %q", name)
		}
		race.Spells.Add(spell)
	}

	for i, blow := range def.Blows {
		method, ok := methodNames[blow.Method]
		if !ok {
			return nil, fmt.Errorf("blow %d: unknown method %q", i, blow.Method)
		}
		effect, ok := effectNames[blow.Effect]
		if !ok {
			return nil, fmt.Errorf("blow %d: unknown effect %q", i, blow.Effect)
		}
		if blow.Dice < 0 || blow.Sides < 0 {
			return nil, fmt.Errorf("blow %d: negative dice", i)
		}
		race.Blows[i] = Blow{Method: method, Effect: effect, Dice: blow.Dice, Sides: blow.Sides}
	}

	return race, nil
}

var (
	methodKeys = invert(methodNames)
	effectKeys = invert(effectNames)
)

func invert[T comparable](names map[string]T) map[T]string {
	out := make(map[T]string, len(names))
	for name, v := range names {
		out[v] = name
	}
	return out
}

// MethodName returns the bestiary spelling of a blow method, for telemetry
// and schema output. Unknown values yield the empty string.
func MethodName(m catalog.Method) string { return methodKeys[m] }

// EffectName returns the bestiary spelling of a blow effect.
func EffectName(e catalog.Effect) string { return effectKeys[e] }
