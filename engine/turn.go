package engine

import (
	"hollowdeep/catalog"
	"hollowdeep/grid"
	"hollowdeep/logging/ai"
	"hollowdeep/races"
)

// handleSleep runs the waking checks for a sleeping monster. Returns true
// when the monster spends the turn asleep or waking up.
func (w *World) handleSleep(m *Monster, l *Lore) bool {
	if !m.hasTimed(MonSleep) {
		return false
	}

	// Aggravation wakes every sleeper the moment it is processed.
	if w.Player.Flags.Has(catalog.PFlagAggravate) {
		m.clearTimed(MonSleep)
		return true
	}

	// Anti-stealth. The cube keeps loud players from trivially waking the
	// whole level.
	notice := w.randint0(1024)
	if notice*notice*notice <= w.Player.Noise {
		d := 1
		if m.CDis > 0 && m.CDis < 50 {
			d = 100 / m.CDis
		}

		if m.Timed[MonSleep] > d {
			// Wakes up a little bit.
			m.decTimed(MonSleep, d)
			if m.Visible && !m.Unaware {
				l.RecordIgnore()
			}
		} else {
			m.clearTimed(MonSleep)
			w.publish(ai.Wake(w.turn, monsterRef(m)))
			if m.Visible && !m.Unaware {
				w.msg("%s wakes up.", w.monsterDesc(m, true))
				l.RecordWake()
			}
			// A monster that just woke does not act.
			return true
		}
	}

	return m.hasTimed(MonSleep)
}

// handleStun decays the stun counter. Returns true while the monster is too
// stunned to act.
func (w *World) handleStun(m *Monster) bool {
	if !m.hasTimed(MonStun) {
		return false
	}

	d := 1
	level := m.Race.Level
	if w.randint0(5000) <= level*level {
		d = m.Timed[MonStun]
	}

	if m.Timed[MonStun] > d {
		m.decTimed(MonStun, 1)
	} else {
		m.clearTimed(MonStun)
	}
	return m.hasTimed(MonStun)
}

// tryMultiply runs the per-turn breeding attempt. All monsters roll so the
// player can learn non-breeders do not breed; only breeders actually split.
func (w *World) tryMultiply(m *Monster, l *Lore) bool {
	if w.numRepro >= MaxRepro {
		return false
	}

	// Crowding count covers the full 3x3 block, own cell included.
	k := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p := grid.Point{Y: m.Pos.Y + dy, X: m.Pos.X + dx}
			if c := w.Grid.At(p); c != nil && c.Occupant > 0 {
				k++
			}
		}
	}

	if k >= 4 {
		return false
	}
	if k > 0 && !w.oneIn(k*monMultAdjust) {
		return false
	}

	if m.Visible {
		l.RecordFlag(races.FlagMultiply)
	}

	if m.Race.Flags.Has(races.FlagMultiply) && w.multiplyMonster(m) {
		if m.Visible {
			w.msgt(catalog.SoundBreed, "%s multiplies!", w.monsterDesc(m, true))
		}
		return true
	}
	return false
}

// moveOutcome accumulates the result of one direction attempt.
type moveOutcome struct {
	doTurn bool
	doMove bool
	doView bool
}

// tryTerrain resolves the terrain at the destination: open floor, walls the
// monster may pass or eat through, and doors it may open or bash.
func (w *World) tryTerrain(m *Monster, l *Lore, dest grid.Point, out *moveOutcome) {
	if w.Grid.IsPassable(dest) {
		out.doMove = true
		return
	}

	if w.Grid.IsWall(dest) && w.Grid.IsPerm(dest) {
		return
	}

	// Something is in the way; the attempt teaches the player about
	// wall-moving abilities either way.
	if m.Visible {
		l.RecordFlag(races.FlagPassWall)
		l.RecordFlag(races.FlagKillWall)
	}

	if m.Race.Flags.Has(races.FlagPassWall) {
		out.doMove = true
		return
	}

	if m.Race.Flags.Has(races.FlagKillWall) && w.Grid.IsWall(dest) {
		out.doMove = true
		w.Grid.DestroyWall(dest)
		if w.playerSees(dest) {
			out.doView = true
		}
		return
	}

	if !w.Grid.IsClosedDoor(dest) && !w.Grid.IsSecretDoor(dest) {
		return
	}

	out.doTurn = true
	if m.Visible {
		l.RecordFlag(races.FlagOpenDoor)
		l.RecordFlag(races.FlagBashDoor)
	}

	if !m.Race.Flags.HasAny(races.FlagOpenDoor, races.FlagBashDoor) {
		return
	}
	mayBash := m.Race.Flags.Has(races.FlagBashDoor) && w.oneIn(2)

	if w.Grid.IsLockedDoor(dest) {
		k := w.Grid.DoorPower(dest)
		if w.randint0(m.HP/10) > k {
			if m.Visible {
				if mayBash {
					w.msg("%s slams against the door.", w.monsterDesc(m, true))
				} else {
					w.msg("%s fiddles with the lock.", w.monsterDesc(m, true))
				}
			} else {
				if mayBash {
					w.msg("Something slams against a door.")
				} else {
					w.msg("Something fiddles with a lock.")
				}
			}
			w.Grid.WeakenLock(dest)
		}
		return
	}

	if mayBash {
		w.Grid.SmashDoor(dest)
		w.msg("You hear a door burst open!")
		w.disturbPlayer()
		// Falls into the doorway.
		out.doMove = true
	} else {
		w.Grid.OpenDoor(dest)
	}
	if w.playerSees(dest) {
		out.doView = true
	}
}

// tryWard tests a pending move against a ward on the destination. High-level
// monsters can break the ward and move anyway.
func (w *World) tryWard(m *Monster, dest grid.Point, out *moveOutcome) {
	if !out.doMove || !w.Grid.IsWarded(dest) {
		return
	}
	out.doMove = false

	if w.randint1(breakWardRoll) < m.Race.Level {
		if c := w.Grid.At(dest); c != nil && c.Marked {
			w.msg("The rune of protection is broken!")
		}
		w.Grid.RemoveWard(dest)
		out.doMove = true
	}
}

// tryDisplace resolves a pending move into an occupied cell: attack the
// player, or trample/push a weaker monster.
func (w *World) tryDisplace(m *Monster, l *Lore, dest grid.Point, out *moveOutcome) {
	c := w.Grid.At(dest)
	if c == nil {
		return
	}

	if out.doMove && c.Occupant == grid.PlayerOccupant {
		if m.Visible {
			l.RecordFlag(races.FlagNeverBlow)
		}
		if m.Race.Flags.Has(races.FlagNeverBlow) {
			out.doMove = false
		} else {
			w.ResolveMeleeRound(m)
			out.doMove = false
			out.doTurn = true
		}
	}

	if out.doMove && m.Race.Flags.Has(races.FlagNeverMove) {
		if m.Visible {
			l.RecordFlag(races.FlagNeverMove)
		}
		out.doMove = false
	}

	if out.doMove && c.Occupant > 0 {
		other := w.Arena.Get(c.Occupant)
		killOK := m.Race.Flags.Has(races.FlagKillBody)
		moveOK := m.Race.Flags.Has(races.FlagMoveBody) && w.Grid.IsPassable(m.Pos)

		out.doMove = false

		if other != nil && other.Race != nil {
			w.refreshMonster(other)
		}

		if other != nil && other.Race != nil && m.Race.MaxExp > other.Race.MaxExp {
			if m.Visible {
				l.RecordFlag(races.FlagKillBody)
				l.RecordFlag(races.FlagMoveBody)
			}

			if killOK || moveOK {
				out.doMove = true

				if other.isMimicking() {
					w.becomeAware(other)
				}

				if killOK {
					if m.Visible && w.playerSees(m.Pos) {
						w.msg("%s tramples over %s.",
							w.monsterDesc(m, true), w.monsterDesc(other, false))
					}
					w.DeleteMonster(other)
				} else if m.Visible && w.playerSees(m.Pos) {
					w.msg("%s pushes past %s.",
						w.monsterDesc(m, true), w.monsterDesc(other, false))
				}
			}
		}
	}
}

// finishMove executes a granted move and handles whatever lies on the floor
// there.
func (w *World) finishMove(m *Monster, l *Lore, dest grid.Point, out *moveOutcome) {
	if m.Visible {
		l.RecordFlag(races.FlagNeverMove)
	}
	out.doTurn = true

	w.moveMonster(m, dest)

	if m.Visible && w.playerSees(m.Pos) && w.opts.DisturbNear {
		w.disturbPlayer()
	}

	c := w.Grid.At(dest)
	if c == nil {
		return
	}

	// Iterate a snapshot; pickup and destruction mutate the cell's list.
	ids := append([]int(nil), c.Objects...)
	for _, id := range ids {
		item := w.Object(id)
		if item == nil || item.Kind == KindGold {
			continue
		}

		if m.Visible {
			l.RecordFlag(races.FlagTakeItem)
			l.RecordFlag(races.FlagKillItem)
		}

		if !m.Race.Flags.HasAny(races.FlagTakeItem, races.FlagKillItem) {
			continue
		}

		// Items dangerous to the monster are left alone.
		if item.Artifact || item.Slays&m.Race.Flags != 0 {
			if m.Race.Flags.Has(races.FlagTakeItem) {
				if m.Visible && w.playerSees(dest) {
					w.msg("%s tries to pick up %s, but fails.",
						w.monsterDesc(m, true), item.Name)
				}
			}
		} else if m.Race.Flags.Has(races.FlagTakeItem) {
			if w.playerSees(dest) {
				w.msg("%s picks up %s.", w.monsterDesc(m, true), item.Name)
			}
			w.removeObject(id, c)
			m.carry(item)
		} else {
			if w.playerSees(dest) {
				w.msgt(catalog.SoundDestroy, "%s crushes %s.",
					w.monsterDesc(m, true), item.Name)
			}
			w.removeObject(id, c)
		}
	}
}

// processMonster gives one monster its turn: waking, timed-effect decay,
// breeding, spellcasting, then movement with everything that entails.
func (w *World) processMonster(m *Monster) {
	l := w.Lore(m.Race)
	w.refreshMonster(m)

	if w.handleSleep(m, l) {
		return
	}

	if m.hasTimed(MonFast) {
		m.decTimed(MonFast, 1)
	}
	if m.hasTimed(MonSlow) {
		m.decTimed(MonSlow, 1)
	}

	if w.handleStun(m) {
		return
	}

	if m.hasTimed(MonConf) {
		d := w.randint1(m.Race.Level/10 + 1)
		if m.Timed[MonConf] > d {
			m.decTimed(MonConf, d)
		} else {
			m.clearTimed(MonConf)
		}
	}

	if m.hasTimed(MonFear) {
		// Boldness creeps back each turn.
		d := w.randint1(m.Race.Level/10 + 1)
		if m.Timed[MonFear] > d {
			m.decTimed(MonFear, d)
		} else {
			m.clearTimed(MonFear)
		}
	}

	if w.tryMultiply(m, l) {
		return
	}

	// Mimics lie in wait.
	if m.isMimicking() {
		return
	}

	if w.CastSpell(m) {
		return
	}

	stagger := false
	var mm [5]grid.Dir

	if m.hasTimed(MonConf) {
		stagger = true
	} else {
		// Always roll, so watching a steady monster rules staggering out.
		roll := w.randint0(100)
		switch {
		case roll < 25:
			if m.Visible {
				l.RecordFlag(races.FlagRand25)
			}
			if m.Race.Flags.HasAny(races.FlagRand25, races.FlagRand50) {
				stagger = true
			}
		case roll < 50:
			if m.Visible {
				l.RecordFlag(races.FlagRand50)
			}
			if m.Race.Flags.Has(races.FlagRand50) {
				stagger = true
			}
		case roll < 75:
			if m.Race.Flags.HasAll(races.FlagRand25, races.FlagRand50) {
				stagger = true
			}
		}
	}

	if !stagger {
		var ok bool
		mm, ok = w.PlanMove(m)
		if !ok {
			return
		}
	}

	var out moveOutcome

	for i := 0; i < 5; i++ {
		var d grid.Dir
		if stagger {
			d = grid.DirsClockwise[w.randint0(8)]
		} else {
			d = mm[i]
		}
		dest := grid.Step(m.Pos, d)

		attempt := moveOutcome{doTurn: out.doTurn, doView: out.doView}
		w.tryTerrain(m, l, dest, &attempt)
		w.tryWard(m, dest, &attempt)
		w.tryDisplace(m, l, dest, &attempt)
		if attempt.doMove {
			w.finishMove(m, l, dest, &attempt)
		}
		out = attempt

		if out.doTurn {
			break
		}
	}

	if m.Race.Flags.Has(races.FlagHasLight) {
		out.doView = true
	}
	if out.doView {
		w.viewDirty = true
		w.flowDirty = true
	}

	// Out of options; get bold.
	if !out.doTurn && !out.doMove && m.hasTimed(MonFear) {
		m.clearTimed(MonFear)
	}

	if out.doTurn && m.Unaware {
		w.becomeAware(m)
	}
}

// canFlow reports whether the monster can smell the player's trail from its
// cell.
func (w *World) canFlow(m *Monster) bool {
	here := w.Grid.At(m.Pos)
	there := w.Grid.At(w.Player.Pos)
	if here == nil || there == nil {
		return false
	}
	return here.When == there.When &&
		int(here.Cost) < grid.FlowDepthMax &&
		int(here.Cost) < w.opts.senseRange(m.Race.Sense)
}

// ProcessMonsters runs every monster with at least minimumEnergy banked.
// The scan runs backwards so freshly dead monsters excise cleanly.
func (w *World) ProcessMonsters(minimumEnergy int) {
	for i := w.Arena.Max() - 1; i >= 1; i-- {
		if w.Player.Leaving {
			break
		}

		m := w.Arena.Get(i)
		if m == nil || m.Race == nil {
			continue
		}

		if m.Energy < minimumEnergy {
			continue
		}
		m.Energy -= 100

		w.refreshMonster(m)

		// Only monsters that can sense, see, or smell the player (or have
		// been hurt) spend processing time.
		if m.CDis <= w.opts.senseRange(m.Race.Sense) ||
			m.HP < m.MaxHP ||
			w.playerSees(m.Pos) ||
			w.canFlow(m) {
			w.processMonster(m)
		}
	}
}
