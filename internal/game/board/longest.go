package board

import "github.com/hexharbor/settlers-server-go/internal/game/axial"

// LongestRoad returns the number of edges in p's longest simple trail of
// roads. A trail may end at, but not pass through, a corner holding another
// player's building.
func (b *Board) LongestRoad(p PlayerID) int {
	starts := make(map[axial.Axial]struct{})
	for coords, e := range b.edges {
		if e.OwnedBy(p) {
			starts[coords.A] = struct{}{}
			starts[coords.B] = struct{}{}
		}
	}

	best := 0
	used := make(map[PathCoords]bool)
	for start := range starts {
		if n := b.trail(p, start, used); n > best {
			best = n
		}
	}
	return best
}

func (b *Board) trail(p PlayerID, at axial.Axial, used map[PathCoords]bool) int {
	best := 0
	for _, e := range b.IncidentEdges(at) {
		if used[e.Coords] || !e.OwnedBy(p) {
			continue
		}
		next := e.Coords.A
		if next == at {
			next = e.Coords.B
		}

		used[e.Coords] = true
		length := 1
		if v := b.vertices[next]; !v.Owned() || v.OwnedBy(p) {
			length += b.trail(p, next, used)
		}
		used[e.Coords] = false

		if length > best {
			best = length
		}
	}
	return best
}
