package game_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/hexharbor/settlers-server-go/internal/game"
	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func seededSettings(players int) game.Settings {
	settings := game.DefaultSettings()
	settings.Players = players
	settings.Seed = 7
	return settings
}

func TestManagerLifecycle(t *testing.T) {
	logger := zaptest.NewLogger(t)
	m := game.NewManager(logger)

	id, err := m.Create("", seededSettings(2), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, []string{id}, m.List())

	_, err = m.Create(id, seededSettings(2), nil)
	assert.Error(t, err)

	err = m.Do(id, func(g *game.Game) error {
		return g.PlaceInitialSettlement(0, axial.New(0, 1))
	})
	require.NoError(t, err)

	// A rejected move is not recorded.
	err = m.Do(id, func(g *game.Game) error {
		return g.PlaceInitialSettlement(0, axial.New(2, 0))
	})
	require.Error(t, err)

	history, err := m.History(id)
	require.NoError(t, err)
	assert.Equal(t, 2, history.Size())
	assert.Empty(t, history.At(0).Buildings)
	assert.Len(t, history.At(1).Buildings, 1)

	err = m.View(id, func(g *game.Game) error {
		assert.True(t, g.Phase().PlacingRoad)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, m.End(id))
	assert.Empty(t, m.List())
	assert.ErrorIs(t, m.Do(id, func(*game.Game) error { return nil }), game.ErrUnknownGame)
	assert.ErrorIs(t, m.End(id), game.ErrUnknownGame)
	_, err = m.History(id)
	assert.ErrorIs(t, err, game.ErrUnknownGame)
}

func TestManagerSerialisesPerGame(t *testing.T) {
	m := game.NewManager(zaptest.NewLogger(t))
	first, err := m.Create("first", seededSettings(3), nil)
	require.NoError(t, err)
	second, err := m.Create("second", seededSettings(3), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, id := range []string{first, second} {
		id := id
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = m.View(id, func(g *game.Game) error {
					_ = game.BuildView(g).Checksum()
					return nil
				})
			}()
		}
	}
	wg.Wait()

	err = m.Do(first, func(g *game.Game) error { return errors.New("boom") })
	assert.EqualError(t, err, "boom")
}

func TestViewChecksumIsDeterministic(t *testing.T) {
	newGame := func() *game.Game {
		g, err := game.NewGame("same", seededSettings(2), nil, zaptest.NewLogger(t))
		require.NoError(t, err)
		return g
	}
	a, b := newGame(), newGame()

	va, vb := game.BuildView(a), game.BuildView(b)
	assert.Equal(t, va.Checksum(), vb.Checksum())
	assert.Len(t, va.Hexes, 19)
	assert.Len(t, va.Harbors, 9)
	assert.Equal(t, va.Robber, axial.New(0, 0))

	require.NoError(t, a.PlaceInitialSettlement(0, axial.New(0, 1)))
	after := game.BuildView(a)
	assert.NotEqual(t, va.Checksum(), after.Checksum())
	require.Len(t, after.Buildings, 1)
	assert.Equal(t, axial.ToRenderSpace(axial.New(0, 1)), after.Buildings[0].Point)
	assert.Equal(t, board.BuildSettlement, after.Buildings[0].Build)
}

func TestHistoryCursor(t *testing.T) {
	h := game.NewHistory("g")
	assert.Nil(t, h.Next())
	assert.Nil(t, h.Skip(3))

	views := []*game.View{{LastRoll: 2}, {LastRoll: 3}, {LastRoll: 4}}
	for _, v := range views {
		h.Record(v)
	}
	assert.Equal(t, 3, h.Size())

	assert.Same(t, views[0], h.Next())
	assert.Same(t, views[1], h.Next())
	assert.Same(t, views[1], h.Previous())
	assert.Same(t, views[2], h.Skip(10))
	assert.Same(t, views[0], h.Skip(-10))
	h.Start()
	assert.Nil(t, h.Previous())
	assert.Nil(t, h.At(3))
}
