// Package board holds the spatial state of a game: tiles, corners, sides,
// harbors and the robber, along with placement legality and roll yields.
//
// Board is not safe for concurrent mutation. Read-only methods never write,
// so concurrent readers are fine as long as no writer runs alongside them.
package board

import (
	"fmt"
	"slices"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
)

// Board is the hex grid and everything built on it. Topology is fixed at
// construction; only ownership and the robber change afterwards.
type Board struct {
	hexes    map[axial.Axial]*Hex
	vertices map[axial.Axial]*Vertex
	edges    map[PathCoords]*Edge
	harbors  map[PathCoords]Harbor
	robber   axial.Axial
}

// New builds a board from layout.
func New(layout Layout) (*Board, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}

	b := &Board{
		hexes:    make(map[axial.Axial]*Hex, len(layout.Tiles)),
		vertices: make(map[axial.Axial]*Vertex),
		edges:    make(map[PathCoords]*Edge),
		harbors:  make(map[PathCoords]Harbor, len(layout.Harbors)),
	}

	for _, t := range layout.Tiles {
		b.hexes[t.Pos] = &Hex{Pos: t.Pos, Resource: t.Resource, Number: t.Number}
		if t.Number == 0 {
			b.robber = t.Pos
		}
		for _, corner := range t.Pos.Neighbors() {
			if _, ok := b.vertices[corner]; !ok {
				b.vertices[corner] = &Vertex{Pos: corner, Build: BuildNone, Owner: Unowned}
			}
		}
	}

	for pos := range b.vertices {
		for _, adjacent := range pos.Neighbors() {
			if _, ok := b.vertices[adjacent]; !ok {
				continue
			}
			coords := NewPathCoords(pos, adjacent)
			if _, ok := b.edges[coords]; !ok {
				b.edges[coords] = &Edge{Coords: coords, Path: PathNone, Owner: Unowned}
			}
		}
	}

	for _, h := range layout.Harbors {
		coords := NewPathCoords(h.A, h.B)
		if _, ok := b.edges[coords]; !ok {
			return nil, fmt.Errorf("%w: harbor on %s: %w", ErrInvalidLayout, coords, ErrNoSuchEdge)
		}
		b.harbors[coords] = h.Harbor
	}

	return b, nil
}

// Hex returns the tile at pos.
func (b *Board) Hex(pos axial.Axial) (*Hex, bool) {
	h, ok := b.hexes[pos]
	return h, ok
}

// Vertex returns the corner at pos.
func (b *Board) Vertex(pos axial.Axial) (*Vertex, bool) {
	v, ok := b.vertices[pos]
	return v, ok
}

// Edge returns the side identified by coords.
func (b *Board) Edge(coords PathCoords) (*Edge, bool) {
	e, ok := b.edges[coords]
	return e, ok
}

// Hexes returns every tile ordered by position.
func (b *Board) Hexes() []*Hex {
	out := make([]*Hex, 0, len(b.hexes))
	for _, h := range b.hexes {
		out = append(out, h)
	}
	slices.SortFunc(out, func(x, y *Hex) int { return x.Pos.Compare(y.Pos) })
	return out
}

// Vertices returns every corner ordered by position.
func (b *Board) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(b.vertices))
	for _, v := range b.vertices {
		out = append(out, v)
	}
	slices.SortFunc(out, func(x, y *Vertex) int { return x.Pos.Compare(y.Pos) })
	return out
}

// Edges returns every side ordered by coordinates.
func (b *Board) Edges() []*Edge {
	out := make([]*Edge, 0, len(b.edges))
	for _, e := range b.edges {
		out = append(out, e)
	}
	slices.SortFunc(out, func(x, y *Edge) int { return x.Coords.Compare(y.Coords) })
	return out
}

// Harbor returns the harbor on coords, if any.
func (b *Board) Harbor(coords PathCoords) (Harbor, bool) {
	h, ok := b.harbors[coords]
	return h, ok
}

// Harbors returns a copy of every harbor assignment.
func (b *Board) Harbors() map[PathCoords]Harbor {
	out := make(map[PathCoords]Harbor, len(b.harbors))
	for k, v := range b.harbors {
		out[k] = v
	}
	return out
}

// Robber returns the position of the hex holding the robber.
func (b *Board) Robber() axial.Axial {
	return b.robber
}

// AdjacentVertices returns the corners one offset away from pos, in offset
// order. For a hex position these are its corners; for a corner they are the
// corners it shares a side with.
func (b *Board) AdjacentVertices(pos axial.Axial) []*Vertex {
	out := make([]*Vertex, 0, len(axial.Offsets))
	for _, n := range pos.Neighbors() {
		if v, ok := b.vertices[n]; ok {
			out = append(out, v)
		}
	}
	return out
}

// AdjacentHexes returns the tiles touching the corner at pos.
func (b *Board) AdjacentHexes(pos axial.Axial) []*Hex {
	out := make([]*Hex, 0, 3)
	for _, n := range pos.Neighbors() {
		if h, ok := b.hexes[n]; ok {
			out = append(out, h)
		}
	}
	return out
}

// IncidentEdges returns the sides with an endpoint at pos.
func (b *Board) IncidentEdges(pos axial.Axial) []*Edge {
	out := make([]*Edge, 0, 3)
	for _, n := range pos.Neighbors() {
		if e, ok := b.edges[NewPathCoords(pos, n)]; ok {
			out = append(out, e)
		}
	}
	return out
}

// OwnersAround returns the distinct owners of buildings on the corners of
// the hex at pos, in ascending order.
func (b *Board) OwnersAround(pos axial.Axial) []PlayerID {
	var owners []PlayerID
	for _, v := range b.AdjacentVertices(pos) {
		if v.Owned() && !slices.Contains(owners, v.Owner) {
			owners = append(owners, v.Owner)
		}
	}
	slices.Sort(owners)
	return owners
}

// HarborsOf returns the harbors touching any building owned by p.
func (b *Board) HarborsOf(p PlayerID) []Harbor {
	var out []Harbor
	for coords, h := range b.harbors {
		for _, end := range coords.Endpoints() {
			if v, ok := b.vertices[end]; ok && v.OwnedBy(p) {
				out = append(out, h)
				break
			}
		}
	}
	slices.SortFunc(out, func(x, y Harbor) int {
		if x.Ratio != y.Ratio {
			return x.Ratio - y.Ratio
		}
		return int(x.Resource) - int(y.Resource)
	})
	return out
}

// MoveRobber places the robber on the hex at pos.
func (b *Board) MoveRobber(pos axial.Axial) error {
	if _, ok := b.hexes[pos]; !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchHex, pos)
	}
	if pos == b.robber {
		return fmt.Errorf("%w: already on %s", ErrRobberUnmoved, pos)
	}
	b.robber = pos
	return nil
}
