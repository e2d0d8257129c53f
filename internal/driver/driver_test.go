package driver

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hexharbor/settlers-server-go/internal/game"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/dice"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
	"github.com/hexharbor/settlers-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const opening = `
# two players, snake order
place 0 settlement 0,1
place 0 road 0,1 0,2
place 1 settlement 2,-2
place 1 road 2,-2 3,-2
place 1 settlement 1,-3
place 1 road 1,-3 1,-4
place 0 settlement 2,0
place 0 road 2,0 2,1
`

func newDriver(t *testing.T, src dice.Source) (*Driver, *game.Manager, string, *bytes.Buffer) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	m := game.NewManager(logger)
	settings := game.DefaultSettings()
	settings.Players = 2
	settings.Seed = 3
	id, err := m.Create("driver-test", settings, nil)
	require.NoError(t, err)
	var out bytes.Buffer
	return New(m, id, src, &out, logger), m, id, &out
}

func TestParseAction(t *testing.T) {
	action, err := ParseAction("build 1 road 0,1 0,2")
	require.NoError(t, err)
	assert.Equal(t, ActionBuild, action.Type)
	assert.Equal(t, board.PlayerID(1), action.Player)
	assert.Equal(t, []string{"road", "0,1", "0,2"}, action.Args)

	action, err = ParseAction("show")
	require.NoError(t, err)
	assert.Equal(t, board.Unowned, action.Player)

	_, err = ParseAction("   ")
	assert.Error(t, err)
	_, err = ParseAction("roll")
	assert.Error(t, err)
	_, err = ParseAction("roll zero")
	assert.Error(t, err)
}

func TestParseGroup(t *testing.T) {
	g, err := parseGroup("ore=1,wood=2,ore=1")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Get(resource.Ore))
	assert.Equal(t, 4, g.Total())

	_, err = parseGroup("ore")
	assert.Error(t, err)
	_, err = parseGroup("gold=1")
	assert.Error(t, err)
}

func TestRunOpeningAndRoll(t *testing.T) {
	d, m, id, out := newDriver(t, dice.NewFixed(2, 5))

	script := opening + "roll 0\nshow\nquit\nend 0\n"
	require.NoError(t, d.Run(context.Background(), strings.NewReader(script)))

	text := out.String()
	assert.Contains(t, text, "player 0 placed a settlement at (0,1)")
	assert.Contains(t, text, "player 0 rolled 9")
	assert.Contains(t, text, "player 1 receives {wheat:1}")
	assert.Contains(t, text, "checksum ")
	assert.NotContains(t, text, "error:")

	err := m.View(id, func(g *game.Game) error {
		assert.Equal(t, rules.Turn(0, rules.Free, rules.Ready), g.Phase())
		return nil
	})
	require.NoError(t, err)
}

func TestRunReportsRejectedCommands(t *testing.T) {
	d, _, _, out := newDriver(t, dice.NewFixed(0))

	script := "place 1 settlement 0,1\nfly 0\nbuild 0 castle 0,1\nspots 0 settlement\n"
	require.NoError(t, d.Run(context.Background(), strings.NewReader(script)))

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "error:"))
	assert.Contains(t, text, "unknown action: fly")
	assert.Contains(t, text, "54 spots:")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	d, _, _, _ := newDriver(t, dice.NewFixed(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, strings.NewReader("show\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
