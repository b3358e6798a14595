package grid

// FlowDepthMax caps how far the scent field spreads, and therefore how far
// any monster can track the player by smell.
const FlowDepthMax = 32

// FlowStamp returns the timestamp of the most recent flow rebuild. A cell
// whose When equals the stamp is "fresh" relative to the player's latest
// position.
func (g *Grid) FlowStamp() uint16 {
	return g.flowStamp
}

// RebuildFlow reseeds the scent field from source using a breadth-first scan
// over passable terrain, out to the lesser of depth and FlowDepthMax. Cells
// the scan does not reach keep their previous (now stale) values, which is
// how old trails decay: their When falls behind the stamp.
func (g *Grid) RebuildFlow(source Point, depth int) {
	if !g.InBounds(source) {
		return
	}
	if depth <= 0 || depth > FlowDepthMax {
		depth = FlowDepthMax
	}

	g.flowStamp++
	// Timestamp wraparound: wipe the stale field so no cell can compare as
	// fresh against a recycled stamp.
	if g.flowStamp == 0 {
		for y := range g.cells {
			for x := range g.cells[y] {
				g.cells[y][x].When = 0
				g.cells[y][x].Cost = 0
			}
		}
		g.flowStamp = 1
	}

	src := g.At(source)
	src.When = g.flowStamp
	src.Cost = 0

	queue := []Point{source}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		cost := g.At(p).Cost
		if int(cost) >= depth {
			continue
		}
		for _, d := range DirsClockwise {
			n := Step(p, d)
			c := g.At(n)
			if c == nil || c.When == g.flowStamp {
				continue
			}
			if !g.IsPassable(n) {
				continue
			}
			c.When = g.flowStamp
			c.Cost = cost + 1
			queue = append(queue, n)
		}
	}
}
