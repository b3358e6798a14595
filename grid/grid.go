package grid

// Feature identifies the terrain occupying a cell.
type Feature int

const (
	FeatFloor Feature = iota
	FeatRubble
	FeatMagma
	FeatQuartz
	FeatGranite
	FeatPermWall
	FeatOpenDoor
	FeatBrokenDoor
	FeatClosedDoor
	FeatSecretDoor
	FeatLockedDoor
)

// PlayerOccupant marks a cell holding the player in the occupancy index.
// Monsters are stored by their positive arena slot so zero always means empty.
const PlayerOccupant = -1

// Cell is one grid square: terrain, ward/room bookkeeping, the flow field
// values deposited by the scent builder, the occupancy index, and the ids of
// any objects lying on the floor.
type Cell struct {
	Feature   Feature
	Ward      bool
	Room      bool
	Marked    bool
	DoorPower int

	// When is the timestamp of the most recent scent deposit reaching the
	// cell; Cost is the BFS step count from the scent source. Cost grows
	// monotonically away from the source within one rebuild.
	When uint16
	Cost uint16

	Occupant int
	Objects  []int
}

// Grid owns the dungeon terrain and the monster flow field.
type Grid struct {
	Height int
	Width  int
	cells  [][]Cell

	flowStamp uint16
}

// New allocates a grid of floor cells ringed by permanent wall.
func New(height, width int) *Grid {
	g := &Grid{Height: height, Width: width}
	g.cells = make([][]Cell, height)
	for y := range g.cells {
		g.cells[y] = make([]Cell, width)
		for x := range g.cells[y] {
			if y == 0 || x == 0 || y == height-1 || x == width-1 {
				g.cells[y][x].Feature = FeatPermWall
			}
		}
	}
	return g
}

// InBounds reports whether p addresses a cell.
func (g *Grid) InBounds(p Point) bool {
	return p.Y >= 0 && p.X >= 0 && p.Y < g.Height && p.X < g.Width
}

// InBoundsFully reports whether p and all eight neighbors address cells.
func (g *Grid) InBoundsFully(p Point) bool {
	return p.Y >= 1 && p.X >= 1 && p.Y < g.Height-1 && p.X < g.Width-1
}

// At returns the cell at p, or nil when p is out of bounds. Callers treat a
// nil cell as unreachable terrain.
func (g *Grid) At(p Point) *Cell {
	if !g.InBounds(p) {
		return nil
	}
	return &g.cells[p.Y][p.X]
}

// IsPassable reports whether a creature without wall-moving abilities can
// occupy the cell.
func (g *Grid) IsPassable(p Point) bool {
	c := g.At(p)
	if c == nil {
		return false
	}
	switch c.Feature {
	case FeatFloor, FeatOpenDoor, FeatBrokenDoor:
		return true
	}
	return false
}

// IsWall reports whether the cell is wall-like terrain (including rubble and
// mineral veins, excluding doors).
func (g *Grid) IsWall(p Point) bool {
	c := g.At(p)
	if c == nil {
		return true
	}
	switch c.Feature {
	case FeatRubble, FeatMagma, FeatQuartz, FeatGranite, FeatPermWall:
		return true
	}
	return false
}

// IsPerm reports whether the cell is permanent wall.
func (g *Grid) IsPerm(p Point) bool {
	c := g.At(p)
	return c != nil && c.Feature == FeatPermWall
}

// IsClosedDoor reports a closed or locked door.
func (g *Grid) IsClosedDoor(p Point) bool {
	c := g.At(p)
	return c != nil && (c.Feature == FeatClosedDoor || c.Feature == FeatLockedDoor)
}

// IsSecretDoor reports a door the player has not discovered. Monsters use
// doors regardless of discovery.
func (g *Grid) IsSecretDoor(p Point) bool {
	c := g.At(p)
	return c != nil && c.Feature == FeatSecretDoor
}

// IsLockedDoor reports a locked door.
func (g *Grid) IsLockedDoor(p Point) bool {
	c := g.At(p)
	return c != nil && c.Feature == FeatLockedDoor
}

// DoorPower returns the remaining strength of a lock.
func (g *Grid) DoorPower(p Point) int {
	c := g.At(p)
	if c == nil {
		return 0
	}
	return c.DoorPower
}

// IsWarded reports whether the cell carries an intact ward.
func (g *Grid) IsWarded(p Point) bool {
	c := g.At(p)
	return c != nil && c.Ward
}

// IsRoom reports whether the cell is room interior.
func (g *Grid) IsRoom(p Point) bool {
	c := g.At(p)
	return c != nil && c.Room
}

// IsEmpty reports a passable cell with no occupant, usable as a summoning or
// convergence target.
func (g *Grid) IsEmpty(p Point) bool {
	c := g.At(p)
	return c != nil && g.IsPassable(p) && c.Occupant == 0
}

// DestroyWall eats through wall terrain, leaving floor.
func (g *Grid) DestroyWall(p Point) {
	c := g.At(p)
	if c == nil || c.Feature == FeatPermWall {
		return
	}
	c.Feature = FeatFloor
	c.Marked = false
}

// OpenDoor swings a closed or secret door open.
func (g *Grid) OpenDoor(p Point) {
	c := g.At(p)
	if c == nil {
		return
	}
	c.Feature = FeatOpenDoor
	c.DoorPower = 0
}

// SmashDoor bashes a door off its hinges.
func (g *Grid) SmashDoor(p Point) {
	c := g.At(p)
	if c == nil {
		return
	}
	c.Feature = FeatBrokenDoor
	c.DoorPower = 0
}

// WeakenLock reduces a lock's strength by one step.
func (g *Grid) WeakenLock(p Point) {
	c := g.At(p)
	if c == nil || c.Feature != FeatLockedDoor {
		return
	}
	if c.DoorPower > 0 {
		c.DoorPower--
	}
	if c.DoorPower == 0 {
		c.Feature = FeatClosedDoor
	}
}

// RemoveWard breaks the ward on a cell.
func (g *Grid) RemoveWard(p Point) {
	c := g.At(p)
	if c == nil {
		return
	}
	c.Ward = false
	c.Marked = false
}

// MoveOccupant swaps the occupancy of two cells.
func (g *Grid) MoveOccupant(from, to Point) {
	a := g.At(from)
	b := g.At(to)
	if a == nil || b == nil {
		return
	}
	a.Occupant, b.Occupant = b.Occupant, a.Occupant
}
