package board

import (
	"fmt"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
)

// Tile assigns a resource and number token to a hex position.
type Tile struct {
	Pos      axial.Axial
	Resource resource.Resource
	Number   int
}

// HarborSpec places a harbor on the edge between two corners.
type HarborSpec struct {
	A      axial.Axial
	B      axial.Axial
	Harbor Harbor
}

// Layout is the fixed map a board is built from.
type Layout struct {
	Tiles   []Tile
	Harbors []HarborSpec
}

// DefaultLayout returns the standard nineteen-tile map with the desert at
// the origin.
func DefaultLayout() Layout {
	tiles := []Tile{
		{axial.New(4, -2), resource.Ore, 10},
		{axial.New(3, 0), resource.Sheep, 2},
		{axial.New(2, 2), resource.Wood, 9},

		{axial.New(3, -3), resource.Wheat, 12},
		{axial.New(2, -1), resource.Brick, 6},
		{axial.New(1, 1), resource.Sheep, 4},
		{axial.New(0, 3), resource.Brick, 10},

		{axial.New(2, -4), resource.Wheat, 9},
		{axial.New(1, -2), resource.Wood, 11},
		{axial.New(0, 0), resource.None, 0},
		{axial.New(-1, 2), resource.Wood, 3},
		{axial.New(-2, 4), resource.Ore, 8},

		{axial.New(0, -3), resource.Wood, 8},
		{axial.New(-1, -1), resource.Ore, 3},
		{axial.New(-2, 1), resource.Wheat, 4},
		{axial.New(-3, 3), resource.Sheep, 5},

		{axial.New(-2, -2), resource.Brick, 5},
		{axial.New(-3, 0), resource.Wheat, 6},
		{axial.New(-4, 2), resource.Sheep, 11},
	}
	harbors := []HarborSpec{
		{axial.New(-4, 0), axial.New(-3, -1), Harbor{resource.None, 3}},
		{axial.New(-2, -3), axial.New(-1, -3), Harbor{resource.Brick, 2}},
		{axial.New(2, -5), axial.New(3, -5), Harbor{resource.Wheat, 2}},
		{axial.New(4, -4), axial.New(4, -3), Harbor{resource.None, 3}},
		{axial.New(4, -1), axial.New(5, -2), Harbor{resource.Ore, 2}},
		{axial.New(2, 3), axial.New(3, 2), Harbor{resource.None, 3}},
		{axial.New(-1, 4), axial.New(0, 4), Harbor{resource.Wood, 2}},
		{axial.New(-3, 4), axial.New(-3, 5), Harbor{resource.None, 3}},
		{axial.New(-5, 2), axial.New(-5, 3), Harbor{resource.Sheep, 2}},
	}
	return Layout{Tiles: tiles, Harbors: harbors}
}

func (l Layout) validate() error {
	if len(l.Tiles) == 0 {
		return fmt.Errorf("%w: no tiles", ErrInvalidLayout)
	}
	seen := make(map[axial.Axial]bool, len(l.Tiles))
	deserts := 0
	for _, t := range l.Tiles {
		if seen[t.Pos] {
			return fmt.Errorf("%w: duplicate tile at %s", ErrInvalidLayout, t.Pos)
		}
		seen[t.Pos] = true
		if !axial.IsHexCenter(t.Pos) {
			return fmt.Errorf("%w: %s is not a tile position", ErrInvalidLayout, t.Pos)
		}
		switch {
		case t.Number == 0:
			if t.Resource != resource.None {
				return fmt.Errorf("%w: %s tile at %s has no number", ErrInvalidLayout, t.Resource, t.Pos)
			}
			deserts++
		case t.Number < 2 || t.Number > 12 || t.Number == 7:
			return fmt.Errorf("%w: token %d at %s", ErrInvalidLayout, t.Number, t.Pos)
		case !t.Resource.IsTradeable():
			return fmt.Errorf("%w: numbered tile at %s yields nothing", ErrInvalidLayout, t.Pos)
		}
	}
	if deserts != 1 {
		return fmt.Errorf("%w: expected exactly one desert, found %d", ErrInvalidLayout, deserts)
	}
	for _, h := range l.Harbors {
		if h.Harbor.Ratio < MinHarborRatio || h.Harbor.Ratio >= BankRatio {
			return fmt.Errorf("%w: harbor %s-%s trades at %d:1", ErrInvalidLayout, h.A, h.B, h.Harbor.Ratio)
		}
	}
	return nil
}
