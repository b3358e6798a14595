package engine

import (
	"hollowdeep/grid"
	"hollowdeep/logging/ai"
	"hollowdeep/races"
)

// willFlee decides whether a monster tries to run from the player.
//
// The level short-circuit is deliberately asymmetric around the +-4 band:
// inside the band health is compared, outside it level alone decides. The
// boundary discontinuity is long-standing tuned behavior and is pinned by
// tests.
func (w *World) willFlee(m *Monster) bool {
	// Keep monsters from running too far away.
	if m.CDis > MaxSight+5 {
		return false
	}

	if m.hasTimed(MonFear) {
		return true
	}

	// Nearby monsters will not become terrified.
	if m.CDis <= 5 {
		return false
	}

	pLev := w.Player.Level
	// Morale jitter from the arena slot keeps equal-level packs from
	// breaking in unison.
	mLev := m.Race.Level + (m.Slot & 0x08) + 25

	if mLev > pLev+4 {
		return false
	}
	if mLev+4 <= pLev {
		return true
	}

	// Cross-multiplied health comparison, avoiding division.
	pVal := pLev*w.Player.MaxHP + w.Player.HP*4
	mVal := mLev*m.MaxHP + m.HP*4
	return pVal*m.MaxHP > mVal*w.Player.MaxHP
}

// nearPermWall reports whether a wall-moving monster should fall back to
// flow-following: it cannot see the player and is boxed in by permanent
// wall (or drew the occasional flow-anyway turn).
func (w *World) nearPermWall(m *Monster) bool {
	if w.Grid.Projectable(m.Pos, w.Player.Pos, grid.ProjectNone) {
		return false
	}
	if w.randint0(99) < 5 {
		return true
	}
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			p := grid.Point{Y: m.Pos.Y + dy, X: m.Pos.X + dx}
			if !w.Grid.InBoundsFully(p) {
				continue
			}
			if w.Grid.IsPerm(p) {
				return true
			}
		}
	}
	return false
}

// flowTarget follows the scent field toward the player's trail. On success
// it returns a target projected sixteen cells beyond the player in the
// chosen direction, so quantization stays stable over several turns.
func (w *World) flowTarget(m *Monster) (grid.Point, bool) {
	// Wall movers head straight for the player unless boxed in.
	if m.Race.Flags.HasAny(races.FlagPassWall, races.FlagKillWall) {
		if !w.nearPermWall(m) {
			return grid.Point{}, false
		}
	}

	here := w.Grid.At(m.Pos)
	there := w.Grid.At(w.Player.Pos)
	if here == nil || there == nil {
		return grid.Point{}, false
	}

	// Stale but nonzero scent is still worth tracking ("spoor"); a cell
	// the player's trail never reached is not.
	if here.When < there.When && here.When == 0 {
		return grid.Point{}, false
	}
	if int(here.Cost) > grid.FlowDepthMax {
		return grid.Point{}, false
	}
	if int(here.Cost) > w.opts.senseRange(m.Race.Sense) {
		return grid.Point{}, false
	}

	// The player can see us; run straight at him instead.
	if w.playerSees(m.Pos) {
		return grid.Point{}, false
	}

	var best grid.Point
	var when, cost uint16
	cost = ^uint16(0)
	found := false

	for _, d := range grid.DirsDiagFirst {
		n := grid.Step(m.Pos, d)
		c := w.Grid.At(n)
		if c == nil || c.When == 0 {
			continue
		}
		if c.When < when {
			continue
		}
		if c.Cost > cost {
			continue
		}
		when = c.When
		cost = c.Cost
		found = true

		off := d.Offset()
		best = grid.Point{
			Y: w.Player.Pos.Y + 16*off.Y,
			X: w.Player.Pos.X + 16*off.X,
		}
	}

	if !found {
		return grid.Point{}, false
	}
	return best, true
}

// fearTarget swerves a fleeing monster around the player: among its
// neighbors it scores proximity to the flee destination against flow cost,
// and returns the winning cell.
func (w *World) fearTarget(m *Monster, dest grid.Point) (grid.Point, bool) {
	here := w.Grid.At(m.Pos)
	there := w.Grid.At(w.Player.Pos)
	if here == nil || there == nil {
		return grid.Point{}, false
	}

	if here.When < there.When {
		return grid.Point{}, false
	}
	if int(here.Cost) > grid.FlowDepthMax {
		return grid.Point{}, false
	}
	if int(here.Cost) > w.opts.senseRange(m.Race.Sense) {
		return grid.Point{}, false
	}

	var best grid.Point
	var when uint16
	score := -1
	found := false

	for _, d := range grid.DirsDiagFirst {
		n := grid.Step(m.Pos, d)
		c := w.Grid.At(n)
		if c == nil || c.When == 0 {
			continue
		}
		if c.When < when {
			continue
		}

		dis := grid.Distance(n, dest)
		s := 5000/(dis+3) - 500/(int(c.Cost)+1)
		if s < 0 {
			s = 0
		}
		if s < score {
			continue
		}

		when = c.When
		score = s
		best = n
		found = true
	}

	return best, found
}

// findSafety searches outward ring by ring for a reachable cell the player
// cannot see into, preferring the one furthest from the player.
func (w *World) findSafety(m *Monster) (grid.Point, bool) {
	here := w.Grid.At(m.Pos)
	there := w.Grid.At(w.Player.Pos)
	if here == nil || there == nil {
		return grid.Point{}, false
	}

	for d := 1; d <= grid.MaxRingRadius(); d++ {
		var best grid.Point
		bestDis := 0

		for _, off := range grid.Ring(d) {
			p := grid.Point{Y: m.Pos.Y + off.Y, X: m.Pos.X + off.X}
			if !w.Grid.InBoundsFully(p) {
				continue
			}
			if !w.Grid.IsPassable(p) {
				continue
			}
			c := w.Grid.At(p)

			// Ignore grids whose scent is older than the player's.
			if c.When < there.When {
				continue
			}
			// Ignore grids the monster cannot reach quickly.
			if int(c.Cost) > int(here.Cost)+2*d {
				continue
			}

			if w.playerSees(p) {
				continue
			}
			dis := grid.Distance(p, w.Player.Pos)
			if dis > bestDis {
				best = p
				bestDis = dis
			}
		}

		if bestDis > 0 {
			return best, true
		}
	}
	return grid.Point{}, false
}

// findHiding searches for an ambush cell: concealed from the player,
// reachable by a clear shot from the monster, and keeping most of the
// current distance to the player.
func (w *World) findHiding(m *Monster) (grid.Point, bool) {
	min := grid.Distance(w.Player.Pos, m.Pos)*3/4 + 2

	for d := 1; d <= grid.MaxRingRadius(); d++ {
		var best grid.Point
		bestDis := 999
		found := false

		for _, off := range grid.Ring(d) {
			p := grid.Point{Y: m.Pos.Y + off.Y, X: m.Pos.X + off.X}
			if !w.Grid.InBoundsFully(p) {
				continue
			}
			if !w.Grid.IsEmpty(p) {
				continue
			}
			if w.playerSees(p) {
				continue
			}
			if !w.cleanShot(m.Pos, p) {
				continue
			}
			dis := grid.Distance(p, w.Player.Pos)
			if dis < bestDis && dis >= min {
				best = p
				bestDis = dis
				found = true
			}
		}

		if found {
			return best, true
		}
	}
	return grid.Point{}, false
}

// PlanMove produces the ranked direction list for a monster's turn: a
// primary direction plus four fallbacks, or false for "no move".
func (w *World) PlanMove(m *Monster) ([5]grid.Dir, bool) {
	var mm [5]grid.Dir

	target := w.Player.Pos
	if t, ok := w.flowTarget(m); ok {
		target = t
	}

	dy := target.Y - m.Pos.Y
	dx := target.X - m.Pos.X
	done := false

	// Animal packs try to lure the player out of corridors.
	if m.Race.Flags.Has(races.FlagGroupAI) &&
		!m.Race.Flags.HasAny(races.FlagPassWall, races.FlagKillWall) {
		open := 0
		for _, d := range grid.DirsClockwise {
			p := grid.Step(w.Player.Pos, d)
			if w.Grid.IsPassable(p) || w.Grid.IsRoom(p) {
				open++
			}
		}

		if open < 7 && w.Player.HP > w.Player.MaxHP/2 {
			if h, ok := w.findHiding(m); ok {
				dy = h.Y - m.Pos.Y
				dx = h.X - m.Pos.X
				done = true
			}
		}
	}

	if !done && w.willFlee(m) {
		w.publish(ai.Flee(w.turn, monsterRef(m)))
		if s, ok := w.findSafety(m); ok {
			dy = s.Y - m.Pos.Y
			dx = s.X - m.Pos.X
			if g, ok := w.fearTarget(m, s); ok {
				dy = g.Y - m.Pos.Y
				dx = g.X - m.Pos.X
			}
		} else {
			// No safe place: just run the other way.
			dy = -dy
			dx = -dx
		}
		done = true
	}

	// Monster groups converge on the player's open flanks.
	if !done && m.Race.Flags.Has(races.FlagGroupAI) {
		if m.CDis > 1 {
			start := w.randint0(8)
			for i := 0; i < 8; i++ {
				p := grid.Step(w.Player.Pos, grid.DirsClockwise[(start+i)&7])
				if !w.Grid.IsEmpty(p) {
					continue
				}
				target = p
				break
			}
		}
		dy = target.Y - m.Pos.Y
		dx = target.X - m.Pos.X
	}

	if dy == 0 && dx == 0 {
		return mm, false
	}

	return quantizeMove(dy, dx), true
}

// quantizeMove converts a displacement into the fixed ranked-direction
// table: primary direction by octant, fallbacks biased toward the dominant
// axis, non-diagonals favored when one axis dominates by more than 2x.
func quantizeMove(dy, dx int) [5]grid.Dir {
	ay, ax := dy, dx
	if ay < 0 {
		ay = -ay
	}
	if ax < 0 {
		ax = -ax
	}

	moveVal := 0
	if dy > 0 {
		moveVal += 8
	}
	if dx < 0 {
		moveVal += 4
	}
	if ay > ax*2 {
		moveVal += 2
	} else if ax > ay*2 {
		moveVal++
	}

	switch moveVal {
	case 0: // north-east octant, diagonal dominant
		if ay > ax {
			return [5]grid.Dir{grid.DirNE, grid.DirN, grid.DirE, grid.DirNW, grid.DirSE}
		}
		return [5]grid.Dir{grid.DirNE, grid.DirE, grid.DirN, grid.DirSE, grid.DirNW}
	case 1, 9: // east dominant
		if dy > 0 {
			return [5]grid.Dir{grid.DirE, grid.DirSE, grid.DirNE, grid.DirS, grid.DirN}
		}
		return [5]grid.Dir{grid.DirE, grid.DirNE, grid.DirSE, grid.DirN, grid.DirS}
	case 2, 6: // north dominant
		if dx > 0 {
			return [5]grid.Dir{grid.DirN, grid.DirNE, grid.DirNW, grid.DirE, grid.DirW}
		}
		return [5]grid.Dir{grid.DirN, grid.DirNW, grid.DirNE, grid.DirW, grid.DirE}
	case 4: // north-west octant
		if ay > ax {
			return [5]grid.Dir{grid.DirNW, grid.DirN, grid.DirW, grid.DirNE, grid.DirSW}
		}
		return [5]grid.Dir{grid.DirNW, grid.DirW, grid.DirN, grid.DirSW, grid.DirNE}
	case 5, 13: // west dominant
		if dy > 0 {
			return [5]grid.Dir{grid.DirW, grid.DirSW, grid.DirNW, grid.DirS, grid.DirN}
		}
		return [5]grid.Dir{grid.DirW, grid.DirNW, grid.DirSW, grid.DirN, grid.DirS}
	case 8: // south-east octant
		if ay > ax {
			return [5]grid.Dir{grid.DirSE, grid.DirS, grid.DirE, grid.DirSW, grid.DirNE}
		}
		return [5]grid.Dir{grid.DirSE, grid.DirE, grid.DirS, grid.DirNE, grid.DirSW}
	case 10, 14: // south dominant
		if dx > 0 {
			return [5]grid.Dir{grid.DirS, grid.DirSE, grid.DirSW, grid.DirE, grid.DirW}
		}
		return [5]grid.Dir{grid.DirS, grid.DirSW, grid.DirSE, grid.DirW, grid.DirE}
	default: // case 12: south-west octant
		if ay > ax {
			return [5]grid.Dir{grid.DirSW, grid.DirS, grid.DirW, grid.DirSE, grid.DirNW}
		}
		return [5]grid.Dir{grid.DirSW, grid.DirW, grid.DirS, grid.DirNW, grid.DirSE}
	}
}
