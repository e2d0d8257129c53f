package board

import (
	"errors"
	"testing"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceSettlement(t *testing.T) {
	b := newDefaultBoard(t)
	pos := axial.New(0, 1)

	require.NoError(t, b.PlaceBuilding(0, pos, BuildSettlement, false))
	v, ok := b.Vertex(pos)
	require.True(t, ok)
	assert.Equal(t, PlayerID(0), v.Owner)
	assert.Equal(t, BuildSettlement, v.Build)

	err := b.PlaceBuilding(1, pos, BuildSettlement, false)
	assert.True(t, errors.Is(err, ErrAlreadyOwned), "got %v", err)

	for _, neighbor := range b.AdjacentVertices(pos) {
		err := b.PlaceBuilding(1, neighbor.Pos, BuildSettlement, false)
		assert.True(t, errors.Is(err, ErrNeighborOccupied), "neighbor %s: got %v", neighbor.Pos, err)
		assert.False(t, neighbor.Owned(), "failed placement must not write")
	}
}

func TestPlaceSettlementMissingVertex(t *testing.T) {
	b := newDefaultBoard(t)

	err := b.PlaceBuilding(0, axial.New(30, 30), BuildSettlement, false)
	assert.True(t, errors.Is(err, ErrNoSuchVertex))

	// Tile centers are not corners.
	err = b.PlaceBuilding(0, axial.New(2, 2), BuildSettlement, false)
	assert.True(t, errors.Is(err, ErrNoSuchVertex))
}

func TestPlaceBuildingRejectsNone(t *testing.T) {
	b := newDefaultBoard(t)
	err := b.PlaceBuilding(0, axial.New(0, 1), BuildNone, false)
	assert.True(t, errors.Is(err, ErrWrongBuildType))
}

func TestSettlementRequiresConnectionWhenAsked(t *testing.T) {
	b := newDefaultBoard(t)

	err := b.PlaceBuilding(0, axial.New(1, 3), BuildSettlement, true)
	assert.True(t, errors.Is(err, ErrDisconnected), "got %v", err)
	v, _ := b.Vertex(axial.New(1, 3))
	assert.False(t, v.Owned())

	require.NoError(t, b.PlaceBuilding(0, axial.New(0, 1), BuildSettlement, false))
	require.NoError(t, b.PlacePath(0, NewPathCoords(axial.New(0, 1), axial.New(0, 2)), PathRoad, true))
	require.NoError(t, b.PlacePath(0, NewPathCoords(axial.New(0, 2), axial.New(1, 2)), PathRoad, true))

	// Road reaches (1,2) and the distance rule holds there.
	require.NoError(t, b.PlaceBuilding(0, axial.New(1, 2), BuildSettlement, true))

	// Another player's road network does not count.
	err = b.ValidateSettlement(1, axial.New(2, 0), true)
	assert.True(t, errors.Is(err, ErrDisconnected))
}

func TestPlaceCity(t *testing.T) {
	b := newDefaultBoard(t)
	pos := axial.New(0, 1)
	require.NoError(t, b.PlaceBuilding(0, pos, BuildSettlement, false))

	err := b.PlaceBuilding(1, pos, BuildCity, false)
	assert.True(t, errors.Is(err, ErrNotOwnedByPlayer), "got %v", err)

	err = b.PlaceBuilding(0, axial.New(3, 2), BuildCity, false)
	assert.True(t, errors.Is(err, ErrWrongBuildType), "bare vertex: got %v", err)
	assert.True(t, errors.Is(err, ErrNotOwnedByPlayer), "bare vertex: got %v", err)

	require.NoError(t, b.PlaceBuilding(0, pos, BuildCity, false))
	v, _ := b.Vertex(pos)
	assert.Equal(t, BuildCity, v.Build)
	assert.Equal(t, PlayerID(0), v.Owner)

	err = b.PlaceBuilding(0, pos, BuildCity, false)
	assert.True(t, errors.Is(err, ErrWrongBuildType), "city on city: got %v", err)
}

func TestPlaceRoad(t *testing.T) {
	b := newDefaultBoard(t)
	coords := NewPathCoords(axial.New(1, 0), axial.New(0, 1))

	err := b.PlacePath(0, coords, PathRoad, true)
	assert.True(t, errors.Is(err, ErrDisconnected), "got %v", err)

	require.NoError(t, b.PlacePath(0, coords, PathRoad, false))
	e, ok := b.Edge(coords)
	require.True(t, ok)
	assert.Equal(t, PlayerID(0), e.Owner)
	assert.Equal(t, PathRoad, e.Path)

	// Reversed endpoints address the same edge.
	err = b.PlacePath(1, PathCoords{A: axial.New(1, 0), B: axial.New(0, 1)}, PathRoad, false)
	assert.True(t, errors.Is(err, ErrAlreadyOwned), "got %v", err)

	err = b.PlacePath(0, NewPathCoords(axial.New(40, 0), axial.New(41, 0)), PathRoad, false)
	assert.True(t, errors.Is(err, ErrNoSuchEdge))

	err = b.PlacePath(0, NewPathCoords(axial.New(0, 1), axial.New(0, 2)), PathNone, false)
	assert.True(t, errors.Is(err, ErrWrongBuildType))
}

func TestRoadConnectsThroughRoadOrBuilding(t *testing.T) {
	b := newDefaultBoard(t)
	require.NoError(t, b.PlaceBuilding(0, axial.New(0, 1), BuildSettlement, false))

	// Endpoint holds the player's settlement.
	require.NoError(t, b.PlacePath(0, NewPathCoords(axial.New(0, 1), axial.New(0, 2)), PathRoad, true))
	// Endpoint touches the player's road.
	require.NoError(t, b.PlacePath(0, NewPathCoords(axial.New(0, 2), axial.New(1, 2)), PathRoad, true))

	err := b.PlacePath(1, NewPathCoords(axial.New(1, 2), axial.New(2, 1)), PathRoad, true)
	assert.True(t, errors.Is(err, ErrDisconnected), "other player's road must not connect: %v", err)
}

func TestRoadDoesNotConnectThroughOpposingBuilding(t *testing.T) {
	b := newDefaultBoard(t)
	require.NoError(t, b.PlaceBuilding(0, axial.New(0, 1), BuildSettlement, false))
	require.NoError(t, b.PlacePath(0, NewPathCoords(axial.New(0, 1), axial.New(0, 2)), PathRoad, true))
	require.NoError(t, b.PlacePath(0, NewPathCoords(axial.New(0, 2), axial.New(1, 2)), PathRoad, true))
	require.NoError(t, b.PlaceBuilding(1, axial.New(1, 2), BuildSettlement, false))

	beyond := NewPathCoords(axial.New(1, 2), axial.New(2, 1))
	err := b.PlacePath(0, beyond, PathRoad, true)
	assert.True(t, errors.Is(err, ErrDisconnected), "road past player 1's settlement: %v", err)
	assert.NotContains(t, b.ValidPathSpots(0, true), beyond)

	// The settlement's owner may still build from it.
	assert.NoError(t, b.ValidateRoad(1, beyond, true))
}

func TestValidBuildSpotsMatchesPlacement(t *testing.T) {
	b := newDefaultBoard(t)

	spots := b.ValidBuildSpots(BuildSettlement, 0, false)
	assert.Len(t, spots, 54)
	for i := 1; i < len(spots); i++ {
		assert.True(t, spots[i-1].Less(spots[i]), "spots must be sorted")
	}

	require.NoError(t, b.PlaceBuilding(0, axial.New(0, 1), BuildSettlement, false))
	spots = b.ValidBuildSpots(BuildSettlement, 1, false)
	assert.Len(t, spots, 50)
	assert.NotContains(t, spots, axial.New(0, 1))
	for _, pos := range spots {
		assert.NoError(t, b.ValidateSettlement(1, pos, false))
	}

	assert.Equal(t, []axial.Axial{axial.New(0, 1)}, b.ValidBuildSpots(BuildCity, 0, false))
	assert.Empty(t, b.ValidBuildSpots(BuildCity, 1, false))
	assert.Empty(t, b.ValidBuildSpots(BuildSettlement, 0, true), "no roads yet")
	assert.Empty(t, b.ValidBuildSpots(BuildNone, 0, false))
}

func TestValidPathSpots(t *testing.T) {
	b := newDefaultBoard(t)
	assert.Len(t, b.ValidPathSpots(0, false), 72)
	assert.Empty(t, b.ValidPathSpots(0, true))

	require.NoError(t, b.PlaceBuilding(0, axial.New(0, 1), BuildSettlement, false))
	spots := b.ValidPathSpots(0, true)
	assert.Len(t, spots, 3)
	for _, coords := range spots {
		assert.True(t, coords.Contains(axial.New(0, 1)))
		assert.NoError(t, b.ValidateRoad(0, coords, true))
	}
}
