package board

import (
	"errors"
	"testing"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultBoard(t *testing.T) *Board {
	t.Helper()
	b, err := New(DefaultLayout())
	require.NoError(t, err)
	return b
}

func TestNewBoardTopology(t *testing.T) {
	b := newDefaultBoard(t)

	assert.Len(t, b.Hexes(), 19)
	assert.Len(t, b.Vertices(), 54)
	assert.Len(t, b.Edges(), 72)

	deserts := 0
	for _, h := range b.Hexes() {
		if h.Number == 0 {
			deserts++
			assert.Equal(t, h.Pos, b.Robber(), "robber starts on the desert")
			assert.Equal(t, resource.None, h.Resource)
		}
	}
	assert.Equal(t, 1, deserts)
	assert.Equal(t, axial.New(0, 0), b.Robber())
}

func TestEveryVertexHasAtMostThreeEdges(t *testing.T) {
	b := newDefaultBoard(t)

	for _, v := range b.Vertices() {
		edges := b.IncidentEdges(v.Pos)
		assert.LessOrEqual(t, len(edges), 3, "vertex %s", v.Pos)
		assert.GreaterOrEqual(t, len(edges), 2, "vertex %s", v.Pos)
	}
}

func TestEveryEdgeJoinsAdjacentVertices(t *testing.T) {
	b := newDefaultBoard(t)

	for _, e := range b.Edges() {
		assert.True(t, e.Coords.A.Less(e.Coords.B), "edge %s is not canonical", e.Coords)
		assert.True(t, e.Coords.A.IsNeighbor(e.Coords.B), "edge %s joins non-adjacent points", e.Coords)
		_, okA := b.Vertex(e.Coords.A)
		_, okB := b.Vertex(e.Coords.B)
		assert.True(t, okA && okB, "edge %s has a missing endpoint", e.Coords)
		assert.Equal(t, Unowned, e.Owner)
	}
}

func TestVerticesStartEmpty(t *testing.T) {
	b := newDefaultBoard(t)
	for _, v := range b.Vertices() {
		assert.Equal(t, BuildNone, v.Build)
		assert.False(t, v.Owned())
		assert.False(t, axial.IsHexCenter(v.Pos))
	}
}

func TestPathCoordsCanonical(t *testing.T) {
	a, c := axial.New(1, 2), axial.New(3, 4)
	assert.Equal(t, NewPathCoords(a, c), NewPathCoords(c, a))

	m := map[PathCoords]string{NewPathCoords(a, c): "hello"}
	assert.Equal(t, "hello", m[NewPathCoords(c, a)])

	pc := NewPathCoords(c, a)
	assert.Equal(t, a, pc.A)
	assert.True(t, pc.Contains(c))
	assert.False(t, pc.Contains(axial.New(0, 0)))
}

func TestAdjacentVertices(t *testing.T) {
	b := newDefaultBoard(t)

	corners := b.AdjacentVertices(axial.New(0, 0))
	assert.Len(t, corners, 6, "a tile has six corners")

	neighbors := b.AdjacentVertices(axial.New(0, 1))
	positions := make([]axial.Axial, 0, len(neighbors))
	for _, v := range neighbors {
		positions = append(positions, v.Pos)
	}
	assert.ElementsMatch(t, []axial.Axial{axial.New(0, 2), axial.New(-1, 1), axial.New(1, 0)}, positions)

	assert.Empty(t, b.AdjacentVertices(axial.New(40, 40)))
}

func TestLayoutValidation(t *testing.T) {
	desert := Tile{axial.New(0, 0), resource.None, 0}
	wood := Tile{axial.New(2, 2), resource.Wood, 9}
	freeHarbor := DefaultLayout()
	freeHarbor.Harbors[4].Harbor = Harbor{resource.None, 0}
	bankRateHarbor := DefaultLayout()
	bankRateHarbor.Harbors[0].Harbor.Ratio = BankRatio

	tests := []struct {
		name   string
		layout Layout
	}{
		{"empty", Layout{}},
		{"no desert", Layout{Tiles: []Tile{wood}}},
		{"two deserts", Layout{Tiles: []Tile{desert, {axial.New(3, 0), resource.None, 0}}}},
		{"duplicate", Layout{Tiles: []Tile{desert, wood, wood}}},
		{"corner position", Layout{Tiles: []Tile{desert, {axial.New(1, 0), resource.Wood, 9}}}},
		{"seven token", Layout{Tiles: []Tile{desert, {axial.New(2, 2), resource.Wood, 7}}}},
		{"numbered desert", Layout{Tiles: []Tile{desert, {axial.New(2, 2), resource.None, 9}}}},
		{"unnumbered wood", Layout{Tiles: []Tile{{axial.New(0, 0), resource.Wood, 0}}}},
		{"harbor off board", Layout{
			Tiles:   []Tile{desert},
			Harbors: []HarborSpec{{axial.New(10, 0), axial.New(11, 0), Harbor{resource.None, 3}}},
		}},
		{"bad harbor ratio", freeHarbor},
		{"harbor no better than the bank", bankRateHarbor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.layout)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLayout))
		})
	}
}

func TestHarbors(t *testing.T) {
	b := newDefaultBoard(t)
	assert.Len(t, b.Harbors(), 9)

	coords := NewPathCoords(axial.New(3, 2), axial.New(2, 3))
	h, ok := b.Harbor(coords)
	require.True(t, ok)
	assert.Equal(t, Harbor{resource.None, 3}, h)
	assert.Equal(t, "3:1", h.String())

	require.NoError(t, b.PlaceBuilding(0, axial.New(3, 2), BuildSettlement, false))
	assert.Equal(t, []Harbor{{resource.None, 3}}, b.HarborsOf(0))
	assert.Empty(t, b.HarborsOf(1))
}

func TestMoveRobber(t *testing.T) {
	b := newDefaultBoard(t)

	err := b.MoveRobber(axial.New(0, 0))
	assert.True(t, errors.Is(err, ErrRobberUnmoved))

	err = b.MoveRobber(axial.New(1, 0))
	assert.True(t, errors.Is(err, ErrNoSuchHex))

	require.NoError(t, b.MoveRobber(axial.New(2, 2)))
	assert.Equal(t, axial.New(2, 2), b.Robber())
}

func TestOwnersAround(t *testing.T) {
	b := newDefaultBoard(t)
	require.NoError(t, b.PlaceBuilding(2, axial.New(3, 2), BuildSettlement, false))
	require.NoError(t, b.PlaceBuilding(0, axial.New(1, 2), BuildSettlement, false))

	assert.Equal(t, []PlayerID{0, 2}, b.OwnersAround(axial.New(2, 2)))
	assert.Empty(t, b.OwnersAround(axial.New(-4, 2)))
}
