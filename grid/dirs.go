package grid

// Dir is one of the eight compass directions a creature can step in.
type Dir int

const (
	DirNone Dir = iota
	DirN
	DirS
	DirE
	DirW
	DirNE
	DirNW
	DirSE
	DirSW
)

var dirOffsets = [...]Point{
	DirNone: {0, 0},
	DirN:    {-1, 0},
	DirS:    {1, 0},
	DirE:    {0, 1},
	DirW:    {0, -1},
	DirNE:   {-1, 1},
	DirNW:   {-1, -1},
	DirSE:   {1, 1},
	DirSW:   {1, -1},
}

var dirNames = [...]string{
	DirNone: "none",
	DirN:    "north",
	DirS:    "south",
	DirE:    "east",
	DirW:    "west",
	DirNE:   "northeast",
	DirNW:   "northwest",
	DirSE:   "southeast",
	DirSW:   "southwest",
}

// Offset returns the (dy,dx) step for the direction.
func (d Dir) Offset() Point {
	if d < 0 || int(d) >= len(dirOffsets) {
		return Point{}
	}
	return dirOffsets[d]
}

func (d Dir) String() string {
	if d < 0 || int(d) >= len(dirNames) {
		return "none"
	}
	return dirNames[d]
}

// Diagonal reports whether the direction moves on both axes.
func (d Dir) Diagonal() bool {
	o := d.Offset()
	return o.Y != 0 && o.X != 0
}

// Step returns the neighbor of p in direction d.
func Step(p Point, d Dir) Point {
	o := d.Offset()
	return Point{Y: p.Y + o.Y, X: p.X + o.X}
}

// DirsDiagFirst lists the eight directions in the scan order the flow
// follower uses: diagonals before laterals, so that lateral candidates win
// ties by overwriting earlier diagonal ones.
var DirsDiagFirst = [8]Dir{DirNW, DirNE, DirSW, DirSE, DirW, DirE, DirN, DirS}

// DirsClockwise lists the eight directions in ring order, used when picking
// a pseudo-randomly rotated neighbor of a cell.
var DirsClockwise = [8]Dir{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}

// maxRingRadius bounds the safety/hiding ring searches.
const maxRingRadius = 9

// ringOffsets[d] holds every offset at dungeon distance exactly d from the
// origin. Built once at init; the searches walk rings outward so the nearest
// acceptable cell is found first.
var ringOffsets [maxRingRadius + 1][]Point

func init() {
	origin := Point{}
	for d := 0; d <= maxRingRadius; d++ {
		var ring []Point
		for y := -maxRingRadius; y <= maxRingRadius; y++ {
			for x := -maxRingRadius; x <= maxRingRadius; x++ {
				p := Point{Y: y, X: x}
				if Distance(origin, p) == d && (d > 0 || (y == 0 && x == 0)) {
					ring = append(ring, p)
				}
			}
		}
		ringOffsets[d] = ring
	}
}

// Ring returns the offsets at dungeon distance d from a center point, or nil
// when d is outside the supported search radius.
func Ring(d int) []Point {
	if d < 0 || d > maxRingRadius {
		return nil
	}
	return ringOffsets[d]
}

// MaxRingRadius is the furthest ring the bounded searches examine.
func MaxRingRadius() int { return maxRingRadius }
