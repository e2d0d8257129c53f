// Package axial implements the axial hex lattice the board is laid out on.
//
// Tiles sit on the points where (q - r) is a multiple of three; every other
// lattice point is a tile corner. Neighboring lattice points are one of the
// six unit Offsets apart, so a tile's corners are exactly its lattice
// neighbors and two corners joined by an offset form a tile side.
package axial

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scale is the render-space distance between two neighboring lattice points.
const Scale = 60.0

// Axial is a (q, r) position on the lattice.
type Axial struct {
	Q int
	R int
}

// Offsets enumerates the six unit neighbors of any lattice point.
var Offsets = [6]Axial{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
}

// New returns the axial position (q, r).
func New(q, r int) Axial {
	return Axial{Q: q, R: r}
}

// Add returns the componentwise sum of a and b.
func Add(a, b Axial) Axial {
	return Axial{Q: a.Q + b.Q, R: a.R + b.R}
}

// Add returns the componentwise sum of a and b.
func (a Axial) Add(b Axial) Axial {
	return Add(a, b)
}

// Neighbors returns a plus each of the Offsets, in Offsets order.
func (a Axial) Neighbors() [6]Axial {
	var result [6]Axial
	for i, offset := range Offsets {
		result[i] = a.Add(offset)
	}
	return result
}

// IsNeighbor reports whether b is one unit offset away from a.
func (a Axial) IsNeighbor(b Axial) bool {
	for _, n := range a.Neighbors() {
		if n == b {
			return true
		}
	}
	return false
}

// Compare orders positions lexicographically on Q, then R.
func (a Axial) Compare(b Axial) int {
	switch {
	case a.Q < b.Q:
		return -1
	case a.Q > b.Q:
		return 1
	case a.R < b.R:
		return -1
	case a.R > b.R:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b.
func (a Axial) Less(b Axial) bool {
	return a.Compare(b) < 0
}

// IsHexCenter reports whether a tile may be centered on a.
func IsHexCenter(a Axial) bool {
	return mod3(a.Q-a.R) == 0
}

func mod3(n int) int {
	m := n % 3
	if m < 0 {
		m += 3
	}
	return m
}

func (a Axial) String() string {
	return fmt.Sprintf("(%d,%d)", a.Q, a.R)
}

// Parse reads a position written as "q,r" or "(q,r)".
func Parse(s string) (Axial, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return Axial{}, fmt.Errorf("invalid axial coordinate %q", s)
	}
	q, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Axial{}, fmt.Errorf("invalid q in %q: %w", s, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Axial{}, fmt.Errorf("invalid r in %q: %w", s, err)
	}
	return Axial{Q: q, R: r}, nil
}

// Point is a position in render space.
type Point struct {
	X float64
	Y float64
}

var rowHeight = math.Sqrt(3) / 2

// ToRenderSpace embeds the lattice as a triangular grid with unit length Scale.
func ToRenderSpace(a Axial) Point {
	return Point{
		X: Scale * (float64(a.Q) + float64(a.R)/2),
		Y: Scale * rowHeight * float64(a.R),
	}
}

// FromRenderSpace returns the lattice point nearest to p's row and column.
// It inverts ToRenderSpace exactly for every point that function produces.
func FromRenderSpace(p Point) Axial {
	r := int(math.Round(p.Y / (Scale * rowHeight)))
	q := int(math.Round(p.X/Scale - float64(r)/2))
	return Axial{Q: q, R: r}
}
