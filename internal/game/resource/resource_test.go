package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyHasEveryEntryAtZero(t *testing.T) {
	g := Empty()
	for _, kind := range Tradeable {
		assert.Equal(t, 0, g.Get(kind), kind.String())
	}
	assert.True(t, g.IsZero())
	assert.Equal(t, 0, g.Total())
}

func TestAddIgnoresKindsWithoutEntry(t *testing.T) {
	g := Empty()
	g.Add(None, 5)
	g.Add(Resource(42), 3)

	assert.True(t, g.IsZero())
	assert.Equal(t, 0, g.Get(None))
}

func TestAddAccumulates(t *testing.T) {
	g := Empty()
	g.Add(Wood, 1)
	g.Add(Wood, 2)
	g.Add(Ore, 1)

	assert.Equal(t, 3, g.Get(Wood))
	assert.Equal(t, 1, g.Get(Ore))
	assert.Equal(t, 4, g.Total())
}

func TestMergeIsCommutativeAndAssociative(t *testing.T) {
	a := New(1, 0, 2, 0, 3)
	b := New(0, 4, 0, 1, 0)
	c := New(2, 2, 2, 2, 2)

	assert.Equal(t, a.Plus(b), b.Plus(a))
	assert.Equal(t, a.Plus(b).Plus(c), a.Plus(b.Plus(c)))

	merged := a
	merged.Merge(b)
	assert.Equal(t, New(1, 4, 2, 1, 3), merged)
	assert.Equal(t, New(1, 0, 2, 0, 3), a, "Plus and Merge on a copy must leave the receiver alone")
}

func TestSubRejectsNegativeResult(t *testing.T) {
	hand := New(1, 1, 0, 0, 0)

	_, err := hand.Sub(New(2, 0, 0, 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficient))
	assert.Equal(t, New(1, 1, 0, 0, 0), hand)

	rest, err := hand.Sub(New(1, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, New(0, 1, 0, 0, 0), rest)
}

func TestCovers(t *testing.T) {
	hand := New(3, 2, 0, 0, 0)
	assert.True(t, hand.Covers(DefaultCosts().Cost(ItemCity)))
	assert.False(t, hand.Covers(DefaultCosts().Cost(ItemSettlement)))
}

func TestNth(t *testing.T) {
	hand := New(0, 2, 0, 1, 0)

	kind, ok := hand.Nth(0)
	require.True(t, ok)
	assert.Equal(t, Wheat, kind)

	kind, ok = hand.Nth(1)
	require.True(t, ok)
	assert.Equal(t, Wheat, kind)

	kind, ok = hand.Nth(2)
	require.True(t, ok)
	assert.Equal(t, Brick, kind)

	_, ok = hand.Nth(3)
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	kind, err := Parse("Wood")
	require.NoError(t, err)
	assert.Equal(t, Wood, kind)

	kind, err = Parse("desert")
	require.NoError(t, err)
	assert.Equal(t, None, kind)

	_, err = Parse("gold")
	assert.Error(t, err)
}

func TestFromMapAndString(t *testing.T) {
	g, err := FromMap(map[string]int{"ore": 3, "wheat": 2})
	require.NoError(t, err)
	assert.Equal(t, New(3, 2, 0, 0, 0), g)
	assert.Equal(t, "{ore:3 wheat:2}", g.String())
	assert.Equal(t, map[string]int{"ore": 3, "wheat": 2}, g.Map())

	_, err = FromMap(map[string]int{"none": 1})
	assert.Error(t, err)
}

func TestParseCostTableOverridesOnlyNamedItems(t *testing.T) {
	table, err := ParseCostTable(map[string]map[string]int{
		"city": {"ore": 2, "wheat": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, New(2, 2, 0, 0, 0), table.Cost(ItemCity))
	assert.Equal(t, DefaultCosts().Cost(ItemSettlement), table.Cost(ItemSettlement))

	_, err = ParseCostTable(map[string]map[string]int{"castle": {"ore": 1}})
	assert.Error(t, err)

	_, err = ParseCostTable(map[string]map[string]int{"road": {"wood": -1}})
	assert.Error(t, err)
}
