package grid

// ProjectMode selects what terminates a projection path.
type ProjectMode int

const (
	// ProjectNone stops only at wall terrain.
	ProjectNone ProjectMode = iota
	// ProjectStop also stops at the first occupied cell before the target,
	// the "clean shot" test used before firing bolts through allies.
	ProjectStop
)

// blocksSight reports whether the cell stops line of sight. Doors that are
// closed block sight; open and broken doors do not.
func (g *Grid) blocksSight(p Point) bool {
	c := g.At(p)
	if c == nil {
		return true
	}
	switch c.Feature {
	case FeatFloor, FeatOpenDoor, FeatBrokenDoor:
		return false
	}
	return true
}

// line walks the straight path from a toward b, excluding both endpoints,
// calling visit for each intermediate cell. visit returns false to stop the
// walk; line then reports whether b was reached.
func (g *Grid) line(a, b Point, visit func(Point) bool) bool {
	if a == b {
		return true
	}
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}

	dy := b.Y - a.Y
	dx := b.X - a.X
	ay, ax := dy, dx
	if ay < 0 {
		ay = -ay
	}
	if ax < 0 {
		ax = -ax
	}
	steps := ax
	if ay > ax {
		steps = ay
	}

	// Step the dominant axis one cell at a time, carrying the minor axis as
	// a fraction scaled by 2*steps so ties round consistently.
	py, px := a.Y, a.X
	fy, fx := 0, 0
	sy, sx := sign(dy), sign(dx)
	for i := 0; i < steps; i++ {
		if ay >= ax {
			py += sy
			fx += 2 * ax
			if fx > steps {
				px += sx
				fx -= 2 * steps
			}
		} else {
			px += sx
			fy += 2 * ay
			if fy > steps {
				py += sy
				fy -= 2 * steps
			}
		}
		p := Point{Y: py, X: px}
		if p == b {
			return true
		}
		if !visit(p) {
			return false
		}
	}
	return py == b.Y && px == b.X
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// LineOfSight reports straight bidirectional visibility between two cells,
// ignoring everything except sight-blocking terrain.
func (g *Grid) LineOfSight(a, b Point) bool {
	return g.line(a, b, func(p Point) bool {
		return !g.blocksSight(p)
	})
}

// Projectable reports whether a projected effect launched at a can travel to
// b under the given mode. Out-of-bounds endpoints are simply not reachable.
func (g *Grid) Projectable(a, b Point, mode ProjectMode) bool {
	return g.line(a, b, func(p Point) bool {
		if g.blocksSight(p) {
			return false
		}
		if mode == ProjectStop && g.At(p).Occupant != 0 {
			return false
		}
		return true
	})
}
