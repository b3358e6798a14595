package engine

import (
	"testing"

	"hollowdeep/grid"
	"hollowdeep/races"
)

func TestQuantizeMove(t *testing.T) {
	tests := []struct {
		name   string
		dy, dx int
		want   [5]grid.Dir
	}{
		{"due north", -5, 0, [5]grid.Dir{grid.DirN, grid.DirNW, grid.DirNE, grid.DirW, grid.DirE}},
		{"due south", 5, 0, [5]grid.Dir{grid.DirS, grid.DirSW, grid.DirSE, grid.DirW, grid.DirE}},
		{"due east", 0, 7, [5]grid.Dir{grid.DirE, grid.DirNE, grid.DirSE, grid.DirN, grid.DirS}},
		{"due west", 0, -7, [5]grid.Dir{grid.DirW, grid.DirNW, grid.DirSW, grid.DirN, grid.DirS}},
		{"northeast balanced", -3, 3, [5]grid.Dir{grid.DirNE, grid.DirE, grid.DirN, grid.DirSE, grid.DirNW}},
		{"northeast tall", -5, 3, [5]grid.Dir{grid.DirNE, grid.DirN, grid.DirE, grid.DirNW, grid.DirSE}},
		{"northwest balanced", -4, -5, [5]grid.Dir{grid.DirNW, grid.DirW, grid.DirN, grid.DirSW, grid.DirNE}},
		{"southeast tall", 5, 4, [5]grid.Dir{grid.DirSE, grid.DirS, grid.DirE, grid.DirSW, grid.DirNE}},
		{"southwest balanced", 3, -3, [5]grid.Dir{grid.DirSW, grid.DirW, grid.DirS, grid.DirNW, grid.DirSE}},
		{"south dominant leaning east", 7, 1, [5]grid.Dir{grid.DirS, grid.DirSE, grid.DirSW, grid.DirE, grid.DirW}},
		{"north dominant leaning west", -7, -1, [5]grid.Dir{grid.DirN, grid.DirNW, grid.DirNE, grid.DirW, grid.DirE}},
		{"west dominant leaning south", 1, -7, [5]grid.Dir{grid.DirW, grid.DirSW, grid.DirNW, grid.DirS, grid.DirN}},
	}

	for _, tc := range tests {
		got := quantizeMove(tc.dy, tc.dx)
		if got != tc.want {
			t.Fatalf("%s: quantizeMove(%d, %d) = %v, want %v", tc.name, tc.dy, tc.dx, got, tc.want)
		}
	}
}

func TestWillFleeDistanceGates(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 2})

	// Far beyond sight: never flees, even terrified.
	far, ok := w.SpawnMonster(newRace("wisp", 1), grid.Point{Y: 5, X: 35})
	if !ok {
		t.Fatalf("spawn failed")
	}
	far.incTimed(MonFear, 10)
	if w.willFlee(far) {
		t.Fatalf("monster at distance %d should not flee", far.CDis)
	}

	// Terrified and in range: always flees.
	near, ok := w.SpawnMonster(newRace("rat", 1), grid.Point{Y: 5, X: 3})
	if !ok {
		t.Fatalf("spawn failed")
	}
	near.incTimed(MonFear, 10)
	if !w.willFlee(near) {
		t.Fatalf("terrified monster at distance 1 should flee")
	}

	// Calm and close: never flees regardless of the odds.
	near.clearTimed(MonFear)
	w.Player.Level = 50
	if w.willFlee(near) {
		t.Fatalf("calm monster at distance 1 should hold its ground")
	}
}

func TestWillFleeLevelBand(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 2})

	// Slot 1, so no morale jitter: effective level = race level + 25 = 26.
	m, ok := w.SpawnMonster(newRace("orc", 1), grid.Point{Y: 5, X: 12})
	if !ok {
		t.Fatalf("spawn failed")
	}

	// Above the band: stands.
	w.Player.Level = 21
	if w.willFlee(m) {
		t.Fatalf("monster above the level band should not flee")
	}

	// Below the band: flees outright.
	w.Player.Level = 30
	if !w.willFlee(m) {
		t.Fatalf("monster below the level band should flee")
	}
}

func TestWillFleeHealthComparison(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 2})
	w.Player.Level = 25
	w.Player.HP = 500
	w.Player.MaxHP = 500

	m, ok := w.SpawnMonster(newRace("orc", 1), grid.Point{Y: 5, X: 12})
	if !ok {
		t.Fatalf("spawn failed")
	}
	m.HP = 10
	m.MaxHP = 10

	// Healthy monster inside the band stands.
	if w.willFlee(m) {
		t.Fatalf("healthy monster should stand")
	}

	// The same monster, badly wounded, breaks.
	m.HP = 1
	if !w.willFlee(m) {
		t.Fatalf("wounded monster should flee")
	}
}

func TestPlanMoveTowardPlayer(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})
	m, ok := w.SpawnMonster(newRace("orc", 5), grid.Point{Y: 5, X: 10})
	if !ok {
		t.Fatalf("spawn failed")
	}

	mm, ok := w.PlanMove(m)
	if !ok {
		t.Fatalf("expected a move plan")
	}
	if mm[0] != grid.DirW {
		t.Fatalf("primary direction = %v, want west", mm[0])
	}
}

func TestPlanMoveFleesWithoutCover(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})
	m, ok := w.SpawnMonster(newRace("rat", 1), grid.Point{Y: 5, X: 10})
	if !ok {
		t.Fatalf("spawn failed")
	}
	m.incTimed(MonFear, 100)

	// An open grid offers no concealed safety, so the vector inverts.
	mm, ok := w.PlanMove(m)
	if !ok {
		t.Fatalf("expected a move plan")
	}
	if mm[0] != grid.DirE {
		t.Fatalf("primary flee direction = %v, want east (away)", mm[0])
	}
}

func TestFlowTargetFollowsScent(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	// Wall off direct sight so the monster falls back to the flow.
	for y := 1; y < 23; y++ {
		if y == 12 {
			continue
		}
		w.Grid.At(grid.Point{Y: y, X: 8}).Feature = grid.FeatGranite
	}
	w.Grid.RebuildFlow(w.Player.Pos, 0)

	m, ok := w.SpawnMonster(newRace("orc", 5), grid.Point{Y: 5, X: 10})
	if !ok {
		t.Fatalf("spawn failed")
	}

	target, found := w.flowTarget(m)
	if !found {
		t.Fatalf("expected flow target through the gap")
	}

	// The look-ahead target projects well past the player, but keeps the
	// quantized direction of the best-scent neighbor.
	if target == w.Player.Pos {
		t.Fatalf("flow target should project past the player")
	}

	mm, ok := w.PlanMove(m)
	if !ok {
		t.Fatalf("expected a move plan")
	}
	if mm[0] == grid.DirNone {
		t.Fatalf("flow plan produced no direction")
	}
}

func TestFindSafetyPrefersConcealment(t *testing.T) {
	w, _ := openWorld(1, grid.Point{Y: 5, X: 5})

	// Build a pocket behind a wall stub the player cannot see into.
	for y := 3; y <= 7; y++ {
		w.Grid.At(grid.Point{Y: y, X: 12}).Feature = grid.FeatGranite
	}
	w.Grid.At(grid.Point{Y: 5, X: 12}).Feature = grid.FeatFloor
	w.Grid.RebuildFlow(w.Player.Pos, 0)

	m, ok := w.SpawnMonster(newRace("rat", 1), grid.Point{Y: 5, X: 11})
	if !ok {
		t.Fatalf("spawn failed")
	}

	p, found := w.findSafety(m)
	if !found {
		t.Fatalf("expected a safe cell behind the wall stub")
	}
	if w.playerSees(p) {
		t.Fatalf("safety cell %v is visible to the player", p)
	}
}

func TestPlanMoveGroupConvergesOnFlank(t *testing.T) {
	w, _ := openWorld(7, grid.Point{Y: 5, X: 5})
	w.Player.HP = 10 // too hurt to be worth luring

	r := newRace("jackal", 1)
	r.Flags.Set(races.FlagGroupAI)
	m, ok := w.SpawnMonster(r, grid.Point{Y: 5, X: 10})
	if !ok {
		t.Fatalf("spawn failed")
	}

	mm, ok := w.PlanMove(m)
	if !ok {
		t.Fatalf("expected a move plan")
	}

	// Whatever flank was chosen, the plan must still close the distance.
	dest := grid.Step(m.Pos, mm[0])
	if grid.Distance(dest, w.Player.Pos) >= m.CDis {
		t.Fatalf("group plan does not close on the player: %v", mm[0])
	}
}
