package grid

// Point identifies a cell by row (Y) and column (X).
type Point struct {
	Y int
	X int
}

// Distance returns the dungeon metric between two points: the longer axis
// plus half the shorter. This matches the metric the flow builder and the
// ring-search tables are calibrated against.
func Distance(a, b Point) int {
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	if dy > dx {
		return dy + dx/2
	}
	return dx + dy/2
}
