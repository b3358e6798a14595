package engine

import (
	"hollowdeep/catalog"
	"hollowdeep/grid"
	"hollowdeep/logging/combat"
	"hollowdeep/races"
)

// adjustDamageForArmor reduces physical damage by the armor formula. Armor
// effectiveness caps at 240, for a maximum reduction of sixty percent.
func adjustDamageForArmor(damage, ac int) int {
	if ac > 240 {
		ac = 240
	}
	return damage - damage*ac/400
}

// testHit is the shared hit-test curve: five percent of attacks always
// land, five percent always miss, the rest pit attack quality against
// three quarters of the armor total.
func (w *World) testHit(chance, ac int, visible bool) bool {
	k := w.randint0(100)
	if k < 10 {
		return k < 5
	}
	if !visible {
		chance /= 2
	}
	return chance > 0 && w.randint0(chance) >= ac*3/4
}

// CheckHit reports whether a monster attack of the given power and level
// connects against the player.
func (w *World) CheckHit(power, level int) bool {
	return w.testHit(power+level*3, w.Player.armor(), true)
}

// criticalTier grades a blow for bleed/stun severity. Zero means no
// critical; tiers then climb with absolute damage, with a rare supercharge
// adding extra tiers.
func (w *World) criticalTier(dice, sides, damage int) int {
	total := dice * sides

	// Must do at least 95% of the theoretical maximum.
	if damage < total*19/20 {
		return 0
	}

	// Weak blows rarely work.
	if damage < 20 && w.randint0(100) >= damage {
		return 0
	}

	bonus := 0
	if damage == total {
		bonus++
	}
	if damage >= 20 {
		for w.randint0(100) < 2 {
			bonus++
		}
	}

	switch {
	case damage > 45:
		return 6 + bonus
	case damage > 33:
		return 5 + bonus
	case damage > 25:
		return 4 + bonus
	case damage > 18:
		return 3 + bonus
	case damage > 11:
		return 2 + bonus
	default:
		return 1 + bonus
	}
}

// cutDuration maps a critical tier to the bleed timer added.
func (w *World) cutDuration(tier int) int {
	switch tier {
	case 0:
		return 0
	case 1:
		return w.randint1(5)
	case 2:
		return w.randint1(5) + 5
	case 3:
		return w.randint1(20) + 20
	case 4:
		return w.randint1(50) + 50
	case 5:
		return w.randint1(100) + 100
	case 6:
		return 300
	default:
		return 500
	}
}

// stunDuration maps a critical tier to the stun timer added.
func (w *World) stunDuration(tier int) int {
	switch tier {
	case 0:
		return 0
	case 1:
		return w.randint1(5)
	case 2:
		return w.randint1(10) + 10
	case 3:
		return w.randint1(20) + 20
	case 4:
		return w.randint1(30) + 30
	case 5:
		return w.randint1(40) + 40
	case 6:
		return 100
	default:
		return 200
	}
}

// meleeContext is the ephemeral per-blow record handed to effect handlers.
type meleeContext struct {
	w      *World
	m      *Monster
	rlev   int
	method catalog.Method
	ac     int
	killer string

	obvious bool
	blinked bool
	stop    bool
	damage  int
}

type meleeHandler func(*meleeContext)

// elementFlags maps elemental blow effects to the player flag a monster can
// learn from them.
var elementFlags = map[catalog.Effect]catalog.PFlag{
	catalog.EffectAcid:   catalog.PFlagResAcid,
	catalog.EffectElec:   catalog.PFlagResElec,
	catalog.EffectFire:   catalog.PFlagResFire,
	catalog.EffectCold:   catalog.PFlagResCold,
	catalog.EffectPoison: catalog.PFlagResPoison,
}

var elementMessages = map[catalog.Effect]string{
	catalog.EffectAcid: "You are covered in acid!",
	catalog.EffectElec: "You are struck by electricity!",
	catalog.EffectFire: "You are enveloped in flames!",
	catalog.EffectCold: "You are covered with frost!",
}

// meleeElemental resolves a blow with an elemental aspect: the player takes
// the larger of armor-adjusted physical damage and resistance-adjusted
// elemental damage, and fragile inventory may be destroyed.
func meleeElemental(ctx *meleeContext, elem catalog.Effect, pure bool) {
	w := ctx.w
	if pure {
		ctx.obvious = true
	}

	if text, ok := elementMessages[elem]; ok {
		w.msg("%s", text)
	}

	// Elemental attacks get a small armor bonus against their physical
	// component.
	physical := adjustDamageForArmor(ctx.damage, ctx.ac+50)
	if info, ok := catalog.MethodLookup(ctx.method); !ok || !info.Physical {
		physical = 0
	}

	elemental := ctx.damage
	if flag, ok := elementFlags[elem]; ok && w.Player.Flags.Has(flag) {
		elemental /= 3
	}

	if physical > elemental {
		ctx.damage = physical
	} else {
		ctx.damage = elemental
	}
	if ctx.damage > 0 {
		w.takeHit(ctx.damage, ctx.killer)
	}
	if elemental > 0 {
		perc := elemental * 5
		if perc > 300 {
			perc = 300
		}
		w.invenDamage(perc)
	}

	if pure {
		if flag, ok := elementFlags[elem]; ok {
			w.learnPlayerFlag(ctx.m, flag)
		}
	}
}

// invenDamage gives each fragile pack item a perc-in-1000 chance to be
// destroyed by an elemental attack.
func (w *World) invenDamage(perc int) {
	for i, item := range w.Player.Inventory {
		if item == nil || !item.Fragile {
			continue
		}
		if w.randint0(1000) >= perc {
			continue
		}
		w.msg("Your %s is destroyed!", item.Name)
		item.Count--
		if item.Count <= 0 {
			w.Player.Inventory[i] = nil
		}
	}
}

// meleeTimed resolves a blow that applies a timed status, with an optional
// saving throw.
func meleeTimed(ctx *meleeContext, t PlayerTimed, amount int, learn catalog.PFlag, save bool, saveMsg string) {
	w := ctx.w
	w.takeHit(ctx.damage, ctx.killer)

	if save && w.randint0(100) < w.Player.SaveSkill {
		if saveMsg != "" {
			w.msg("%s", saveMsg)
		}
		ctx.obvious = true
	} else if w.Player.IncTimed(t, amount) {
		ctx.obvious = true
	}

	w.learnPlayerFlag(ctx.m, learn)
}

// meleeStat resolves a stat-draining blow.
func meleeStat(ctx *meleeContext, s Stat) {
	ctx.w.takeHit(ctx.damage, ctx.killer)
	if ctx.w.Player.DrainStat(s) {
		ctx.obvious = true
	}
}

// drainLifeFactor scales experience drain by total experience.
const drainLifeFactor = 2

// meleeExperience resolves an experience-draining blow; hold-life gives a
// chance to keep it all and otherwise softens the loss.
func meleeExperience(ctx *meleeContext, holdChance, drain int) {
	w := ctx.w
	ctx.obvious = true
	w.takeHit(ctx.damage, ctx.killer)
	w.learnPlayerFlag(ctx.m, catalog.PFlagHoldLife)

	holds := w.Player.Flags.Has(catalog.PFlagHoldLife)
	if holds && w.randint0(100) < holdChance {
		w.msg("You keep hold of your life force!")
		return
	}

	d := drain + w.Player.Exp/100*drainLifeFactor
	if holds {
		w.msg("You feel your life slipping away!")
		w.Player.LoseExp(d / 10)
	} else {
		w.msg("You feel your life draining away!")
		w.Player.LoseExp(d)
	}
}

// theftSaved rolls the dexterity/level saving throw against theft.
func (w *World) theftSaved() bool {
	return !w.Player.hasTimed(TmdParalyzed) &&
		w.randint0(100) < w.Player.DexSave+w.Player.Level
}

var meleeHandlers map[catalog.Effect]meleeHandler

func init() {
	meleeHandlers = map[catalog.Effect]meleeHandler{
		catalog.EffectNone: func(ctx *meleeContext) {
			// Connects without a roll, but never does damage.
			ctx.obvious = true
			ctx.damage = 0
		},

		catalog.EffectHurt: func(ctx *meleeContext) {
			ctx.obvious = true
			ctx.damage = adjustDamageForArmor(ctx.damage, ctx.ac)
			ctx.w.takeHit(ctx.damage, ctx.killer)
		},

		catalog.EffectPoison: func(ctx *meleeContext) {
			w := ctx.w
			meleeElemental(ctx, catalog.EffectPoison, false)
			if w.Player.IncTimed(TmdPoisoned, 5+w.randint1(ctx.rlev)) {
				ctx.obvious = true
			}
			w.learnPlayerFlag(ctx.m, catalog.PFlagResPoison)
		},

		catalog.EffectDisenchant: func(ctx *meleeContext) {
			w := ctx.w
			w.takeHit(ctx.damage, ctx.killer)
			if !w.Player.Flags.Has(catalog.PFlagResDisen) {
				if w.applyDisenchant() {
					ctx.obvious = true
				}
			}
			w.learnPlayerFlag(ctx.m, catalog.PFlagResDisen)
		},

		catalog.EffectDrainCharges: meleeDrainCharges,
		catalog.EffectEatGold:      meleeEatGold,
		catalog.EffectEatItem:      meleeEatItem,
		catalog.EffectEatFood:      meleeEatFood,
		catalog.EffectEatLight:     meleeEatLight,

		catalog.EffectAcid: func(ctx *meleeContext) { meleeElemental(ctx, catalog.EffectAcid, true) },
		catalog.EffectElec: func(ctx *meleeContext) { meleeElemental(ctx, catalog.EffectElec, true) },
		catalog.EffectFire: func(ctx *meleeContext) { meleeElemental(ctx, catalog.EffectFire, true) },
		catalog.EffectCold: func(ctx *meleeContext) { meleeElemental(ctx, catalog.EffectCold, true) },

		catalog.EffectBlind: func(ctx *meleeContext) {
			meleeTimed(ctx, TmdBlind, 10+ctx.w.randint1(ctx.rlev), catalog.PFlagResBlind, false, "")
		},
		catalog.EffectConfuse: func(ctx *meleeContext) {
			meleeTimed(ctx, TmdConfused, 3+ctx.w.randint1(ctx.rlev), catalog.PFlagResConf, false, "")
		},
		catalog.EffectTerrify: func(ctx *meleeContext) {
			meleeTimed(ctx, TmdAfraid, 3+ctx.w.randint1(ctx.rlev), catalog.PFlagResFear, true,
				"You stand your ground!")
		},
		catalog.EffectParalyze: func(ctx *meleeContext) {
			// Keep damage nonzero so repeated paralysis cannot lock the
			// player out forever.
			if ctx.w.Player.hasTimed(TmdParalyzed) && ctx.damage < 1 {
				ctx.damage = 1
			}
			meleeTimed(ctx, TmdParalyzed, 3+ctx.w.randint1(ctx.rlev), catalog.PFlagFreeAction, true,
				"You resist the effects!")
		},

		catalog.EffectLoseStr: func(ctx *meleeContext) { meleeStat(ctx, StatStr) },
		catalog.EffectLoseInt: func(ctx *meleeContext) { meleeStat(ctx, StatInt) },
		catalog.EffectLoseWis: func(ctx *meleeContext) { meleeStat(ctx, StatWis) },
		catalog.EffectLoseDex: func(ctx *meleeContext) { meleeStat(ctx, StatDex) },
		catalog.EffectLoseCon: func(ctx *meleeContext) { meleeStat(ctx, StatCon) },

		catalog.EffectLoseAll: func(ctx *meleeContext) {
			w := ctx.w
			w.takeHit(ctx.damage, ctx.killer)
			for s := StatStr; s < StatMax; s++ {
				if w.Player.DrainStat(s) {
					ctx.obvious = true
				}
			}
		},

		catalog.EffectShatter: meleeShatter,

		catalog.EffectExp10: func(ctx *meleeContext) { meleeExperience(ctx, 95, ctx.w.damroll(10, 6)) },
		catalog.EffectExp20: func(ctx *meleeContext) { meleeExperience(ctx, 90, ctx.w.damroll(20, 6)) },
		catalog.EffectExp40: func(ctx *meleeContext) { meleeExperience(ctx, 75, ctx.w.damroll(40, 6)) },
		catalog.EffectExp80: func(ctx *meleeContext) { meleeExperience(ctx, 50, ctx.w.damroll(80, 6)) },

		catalog.EffectHallucinate: func(ctx *meleeContext) {
			w := ctx.w
			w.takeHit(ctx.damage, ctx.killer)
			if w.Player.IncTimed(TmdHallucinate, 3+w.randint1(ctx.rlev/2)) {
				ctx.obvious = true
			}
		},
	}
}

// applyDisenchant erodes the enchantment of a random carried item.
func (w *World) applyDisenchant() bool {
	for tries := 0; tries < 10; tries++ {
		item := w.Player.Inventory[w.randint0(PackSize)]
		if item == nil || item.Enchant <= 0 {
			continue
		}
		item.Enchant--
		w.msg("Your %s feels less powerful!", item.Name)
		return true
	}
	return false
}

func meleeDrainCharges(ctx *meleeContext) {
	w := ctx.w
	w.takeHit(ctx.damage, ctx.killer)

	for tries := 0; tries < 10; tries++ {
		item := w.Player.Inventory[w.randint0(PackSize)]
		if item == nil {
			continue
		}
		if item.Kind != KindStaff && item.Kind != KindWand {
			continue
		}
		if item.Charges <= 0 {
			continue
		}

		unpower := ctx.rlev/(item.KindLevel+2) + 1
		if unpower > item.Charges {
			unpower = item.Charges
		}
		item.Charges -= unpower

		w.msg("Energy drains from your pack!")
		ctx.obvious = true

		// The drained power feeds the monster.
		ctx.m.heal(ctx.rlev * unpower)
		break
	}
}

func meleeEatGold(ctx *meleeContext) {
	w := ctx.w
	p := w.Player
	w.takeHit(ctx.damage, ctx.killer)
	ctx.obvious = true

	if w.theftSaved() {
		w.msg("You quickly protect your money pouch!")
		if w.randint0(3) != 0 {
			ctx.blinked = true
		}
		return
	}

	gold := p.Gold/10 + w.randint1(25)
	if gold < 2 {
		gold = 2
	}
	if gold > 5000 {
		gold = p.Gold/20 + w.randint1(3000)
	}
	if gold > p.Gold {
		gold = p.Gold
	}
	p.Gold -= gold
	if gold <= 0 {
		w.msg("Nothing was stolen.")
		return
	}

	w.msg("Your purse feels lighter.")
	if p.Gold > 0 {
		w.msg("%d coins were stolen!", gold)
	} else {
		w.msg("All of your coins were stolen!")
	}
	ctx.m.carry(goldItem(gold))
	ctx.blinked = true
}

func meleeEatItem(ctx *meleeContext) {
	w := ctx.w
	w.takeHit(ctx.damage, ctx.killer)

	if w.theftSaved() {
		w.msg("You grab hold of your backpack!")
		ctx.blinked = true
		ctx.obvious = true
		return
	}

	for tries := 0; tries < 10; tries++ {
		slot := w.randint0(PackSize)
		item := w.Player.Inventory[slot]
		if item == nil || item.Artifact {
			continue
		}

		if item.Count > 1 {
			w.msg("One of your %s was stolen!", item.Name)
		} else {
			w.msg("Your %s was stolen!", item.Name)
		}

		ctx.m.carry(item.one())
		item.Count--
		if item.Count <= 0 {
			w.Player.Inventory[slot] = nil
		}

		ctx.obvious = true
		ctx.blinked = true
		break
	}
}

func meleeEatFood(ctx *meleeContext) {
	w := ctx.w
	w.takeHit(ctx.damage, ctx.killer)

	for tries := 0; tries < 10; tries++ {
		slot := w.randint0(PackSize)
		item := w.Player.Inventory[slot]
		if item == nil || item.Kind != KindFood {
			continue
		}

		if item.Count > 1 {
			w.msg("One of your %s was eaten!", item.Name)
		} else {
			w.msg("Your %s was eaten!", item.Name)
		}

		item.Count--
		if item.Count <= 0 {
			w.Player.Inventory[slot] = nil
		}
		ctx.obvious = true
		break
	}
}

func meleeEatLight(ctx *meleeContext) {
	w := ctx.w
	w.takeHit(ctx.damage, ctx.killer)

	light := w.Player.Light
	if light == nil || light.NoFuel || light.Fuel <= 0 {
		return
	}

	light.Fuel -= 250 + w.randint1(250)
	if light.Fuel < 1 {
		light.Fuel = 1
	}
	if !w.Player.hasTimed(TmdBlind) {
		w.msg("Your light dims.")
		ctx.obvious = true
	}
}

// quakeThreshold is the damage a shatter blow needs to shake the dungeon.
const quakeThreshold = 23

func meleeShatter(ctx *meleeContext) {
	w := ctx.w
	ctx.obvious = true
	ctx.damage = adjustDamageForArmor(ctx.damage, ctx.ac)
	w.takeHit(ctx.damage, ctx.killer)

	if ctx.damage > quakeThreshold {
		oldPos := w.Player.Pos
		w.earthquake(ctx.m.Pos, 8)
		if w.Player.Pos != oldPos {
			ctx.stop = true
		}
	}
}

// earthquake collapses random terrain around the epicenter and may throw
// the player into an adjacent open cell.
func (w *World) earthquake(center grid.Point, radius int) {
	w.msg("The ground shakes violently!")

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := grid.Point{Y: center.Y + dy, X: center.X + dx}
			if !w.Grid.InBoundsFully(p) {
				continue
			}
			if grid.Distance(center, p) > radius {
				continue
			}
			c := w.Grid.At(p)
			if c.Occupant != 0 || len(c.Objects) > 0 {
				continue
			}
			if !w.oneIn(4) {
				continue
			}
			if w.Grid.IsWall(p) && !w.Grid.IsPerm(p) {
				w.Grid.DestroyWall(p)
			} else if w.Grid.IsPassable(p) {
				c.Feature = grid.FeatRubble
				c.Marked = false
			}
		}
	}

	// Throw the player clear if caught in the shockwave.
	if grid.Distance(center, w.Player.Pos) <= radius {
		start := w.randint0(8)
		for i := 0; i < 8; i++ {
			p := grid.Step(w.Player.Pos, grid.DirsClockwise[(start+i)&7])
			if !w.Grid.IsEmpty(p) {
				continue
			}
			w.Grid.MoveOccupant(w.Player.Pos, p)
			w.Player.Pos = p
			w.msg("You are thrown aside by the shockwave!")
			break
		}
	}

	w.viewDirty = true
	w.flowDirty = true
}

// ResolveMeleeRound runs a monster's full physical attack sequence against
// the player. Returns false only when the race never attacks.
func (w *World) ResolveMeleeRound(m *Monster) bool {
	if m == nil || m.Race == nil {
		return false
	}
	if m.Race.Flags.Has(races.FlagNeverBlow) {
		return false
	}

	l := w.Lore(m.Race)
	ac := w.Player.armor()
	rlev := m.Race.EffectiveLevel()
	name := w.monsterDesc(m, true)
	killer := w.killerDesc(m)
	blinked := false

	for slot := 0; slot < races.BlowMax; slot++ {
		blow := m.Race.Blows[slot]
		if blow.Method == catalog.MethodNone {
			break
		}
		if w.Player.Leaving {
			break
		}

		visible := m.Visible || m.Race.Flags.Has(races.FlagHasLight)
		obvious := false
		damage := 0
		stop := false

		power := catalog.EffectPower(blow.Effect)

		if blow.Effect == catalog.EffectNone || w.CheckHit(power, rlev) {
			w.disturbPlayer()

			// Protection from evil can repel the whole blow.
			if w.Player.hasTimed(TmdProtEvil) {
				if m.Visible {
					l.RecordFlag(races.FlagEvil)
				}
				if m.Race.Flags.Has(races.FlagEvil) &&
					w.Player.Level >= rlev &&
					w.randint0(100)+w.Player.Level > 50 {
					w.msg("%s is repelled.", name)
					continue
				}
			}

			info, known := catalog.MethodLookup(blow.Method)
			if !known {
				w.warn("blow method %d has no catalog entry", blow.Method)
			}

			act := info.Action
			if act == "" {
				switch blow.Method {
				case catalog.MethodInsult:
					act = catalog.Insults[w.randint0(len(catalog.Insults))]
				case catalog.MethodMoan:
					act = catalog.Moans[w.randint0(len(catalog.Moans))]
				}
			}
			if act != "" {
				w.msgt(info.Sound, "%s %s", name, act)
			}

			obvious = true

			if blow.Dice > 0 && blow.Sides > 0 {
				damage = w.damroll(blow.Dice, blow.Sides)
			}

			ctx := &meleeContext{
				w:       w,
				m:       m,
				rlev:    rlev,
				method:  blow.Method,
				ac:      ac,
				killer:  killer,
				obvious: obvious,
				blinked: blinked,
				damage:  damage,
			}

			if handler, ok := meleeHandlers[blow.Effect]; ok {
				handler(ctx)
			} else {
				w.warn("no melee handler for effect %d", blow.Effect)
			}

			obvious = ctx.obvious
			blinked = ctx.blinked
			damage = ctx.damage
			stop = ctx.stop

			doCut := info.Cut
			doStun := info.Stun
			if doCut && doStun {
				if w.randint0(100) < 50 {
					doCut = false
				} else {
					doStun = false
				}
			}

			if doCut {
				if k := w.cutDuration(w.criticalTier(blow.Dice, blow.Sides, damage)); k > 0 {
					w.Player.IncTimed(TmdCut, k)
				}
			}
			if doStun {
				if k := w.stunDuration(w.criticalTier(blow.Dice, blow.Sides, damage)); k > 0 {
					w.Player.IncTimed(TmdStun, k)
				}
			}
		} else {
			// Near misses from visible monsters are worth a message for
			// some methods.
			if m.Visible {
				if info, ok := catalog.MethodLookup(blow.Method); ok && info.Miss {
					w.disturbPlayer()
					w.msg("%s misses you.", name)
				}
			}
		}

		if visible {
			if obvious || damage > 0 || l.BlowsSeen(slot) > 10 {
				l.RecordBlow(slot)
			}
		}

		w.publish(combat.Blow(w.turn, monsterRef(m), combat.BlowPayload{
			Slot:   slot,
			Method: races.MethodName(blow.Method),
			Effect: races.EffectName(blow.Effect),
			Damage: damage,
			Landed: obvious,
		}))

		if stop {
			break
		}
	}

	if blinked {
		w.msg("There is a puff of smoke!")
		w.teleportAway(m, MaxSight*2+5)
	}

	if w.Player.Dead {
		l.RecordDeath()
		w.publish(combat.Death(w.turn, monsterRef(m)))
	}

	return true
}
