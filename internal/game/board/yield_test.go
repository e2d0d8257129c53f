package board

import (
	"testing"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYieldForRollSingleOwner(t *testing.T) {
	b := newDefaultBoard(t)
	// (3,2) is a corner of the Wood/9 tile at (2,2).
	require.NoError(t, b.PlaceBuilding(0, axial.New(3, 2), BuildSettlement, false))

	yields := b.YieldForRoll(9)
	assert.Equal(t, map[PlayerID]resource.Group{0: resource.Of(resource.Wood, 1)}, yields)
}

func TestYieldForRollOpeningPosition(t *testing.T) {
	b := newDefaultBoard(t)
	require.NoError(t, b.PlaceBuilding(0, axial.New(0, 1), BuildSettlement, false))

	assert.Equal(t, map[PlayerID]resource.Group{0: resource.Of(resource.Wood, 1)}, b.YieldForRoll(3))
	assert.Empty(t, b.YieldForRoll(5))
}

func TestYieldSkipsRobberHex(t *testing.T) {
	b := newDefaultBoard(t)
	require.NoError(t, b.PlaceBuilding(0, axial.New(3, 2), BuildSettlement, false))
	// (3,-4) is a corner of the Wheat/9 tile at (2,-4).
	require.NoError(t, b.PlaceBuilding(1, axial.New(3, -4), BuildSettlement, false))

	yields := b.YieldForRoll(9)
	assert.Equal(t, resource.Of(resource.Wood, 1), yields[0])
	assert.Equal(t, resource.Of(resource.Wheat, 1), yields[1])

	require.NoError(t, b.MoveRobber(axial.New(2, 2)))
	yields = b.YieldForRoll(9)
	assert.Equal(t, map[PlayerID]resource.Group{1: resource.Of(resource.Wheat, 1)}, yields)
}

func TestYieldCityCollectsDouble(t *testing.T) {
	b := newDefaultBoard(t)
	require.NoError(t, b.PlaceBuilding(0, axial.New(3, 2), BuildSettlement, false))
	require.NoError(t, b.PlaceBuilding(0, axial.New(3, 2), BuildCity, false))

	assert.Equal(t, map[PlayerID]resource.Group{0: resource.Of(resource.Wood, 2)}, b.YieldForRoll(9))
}

func TestYieldSevenAndOutOfRangeProduceNothing(t *testing.T) {
	b := newDefaultBoard(t)
	require.NoError(t, b.PlaceBuilding(0, axial.New(0, 1), BuildSettlement, false))

	assert.Empty(t, b.YieldForRoll(RobberRoll))
	assert.Empty(t, b.YieldForRoll(0))
	assert.Empty(t, b.YieldForRoll(13))
}

func TestYieldAggregatesAcrossTiles(t *testing.T) {
	b := newDefaultBoard(t)
	// (-1,0) touches Ore/3 at (-1,-1) and the desert; (0,1) touches Wood/3.
	require.NoError(t, b.PlaceBuilding(0, axial.New(-1, 0), BuildSettlement, false))
	require.NoError(t, b.PlaceBuilding(0, axial.New(0, 1), BuildSettlement, false))

	yields := b.YieldForRoll(3)
	assert.Equal(t, resource.New(1, 0, 0, 0, 1), yields[0])
}

func TestStartingYield(t *testing.T) {
	b := newDefaultBoard(t)
	assert.Equal(t, resource.New(0, 0, 1, 0, 1), b.StartingYield(axial.New(0, 1)))
}
