// Package driver runs text commands against a game held by a manager. It
// is what the settlers command reads from standard input.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hexharbor/settlers-server-go/internal/game"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/dice"
	"go.uber.org/zap"
)

// Driver applies actions to one game.
type Driver struct {
	manager *game.Manager
	gameID  string
	dice    dice.Source
	out     io.Writer
	logger  *zap.Logger
}

// New returns a driver for gameID. Rolls without an explicit sum are thrown
// with src.
func New(manager *game.Manager, gameID string, src dice.Source, out io.Writer, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		manager: manager,
		gameID:  gameID,
		dice:    src,
		out:     out,
		logger:  logger.With(zap.String("game_id", gameID)),
	}
}

// Run executes one command per line of in until it is exhausted, ctx is
// cancelled, or a "quit" line is read. A failing command is reported on
// the output and does not stop the loop.
func (d *Driver) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := d.Execute(line); err != nil {
			fmt.Fprintf(d.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Execute parses and applies one command line.
func (d *Driver) Execute(line string) error {
	action, err := ParseAction(line)
	if err != nil {
		return err
	}
	if err := d.Process(action); err != nil {
		d.logger.Debug("action rejected",
			zap.String("action", string(action.Type)),
			zap.Int("player", int(action.Player)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Process routes an action to its handler.
func (d *Driver) Process(action Action) error {
	switch action.Type {
	case ActionShow:
		return d.manager.View(d.gameID, d.show)
	case ActionStats:
		return d.manager.View(d.gameID, d.stats)
	case ActionSpots:
		return d.manager.View(d.gameID, func(g *game.Game) error { return d.spots(g, action) })
	}
	return d.manager.Do(d.gameID, func(g *game.Game) error {
		switch action.Type {
		case ActionPlace:
			return d.handlePlace(g, action)
		case ActionRoll:
			return d.handleRoll(g, action)
		case ActionDiscard:
			return d.handleDiscard(g, action)
		case ActionRobber:
			return d.handleRobber(g, action)
		case ActionBuild:
			return d.handleBuild(g, action)
		case ActionBuy:
			return d.handleBuy(g, action)
		case ActionPlay:
			return d.handlePlay(g, action)
		case ActionTake:
			return d.handleTake(g, action)
		case ActionTrade:
			return d.handleTrade(g, action)
		case ActionEnd:
			return d.handleEnd(g, action)
		default:
			return fmt.Errorf("unknown action: %s", strings.ToLower(string(action.Type)))
		}
	})
}

// handlePlace handles "place <p> settlement q,r" and "place <p> road q,r q,r"
// during opening placement.
func (d *Driver) handlePlace(g *game.Game, a Action) error {
	what, err := a.arg(0)
	if err != nil {
		return err
	}
	switch strings.ToLower(what) {
	case "settlement":
		pos, err := a.pos(1)
		if err != nil {
			return err
		}
		if err := g.PlaceInitialSettlement(a.Player, pos); err != nil {
			return err
		}
		fmt.Fprintf(d.out, "player %d placed a settlement at %s\n", a.Player, pos)
	case "road":
		coords, err := a.path(1)
		if err != nil {
			return err
		}
		if err := g.PlaceInitialRoad(a.Player, coords); err != nil {
			return err
		}
		fmt.Fprintf(d.out, "player %d placed a road on %s\n", a.Player, coords)
	default:
		return fmt.Errorf("place: unknown piece %q", what)
	}
	d.announcePhase(g)
	return nil
}

func (d *Driver) handleRoll(g *game.Game, a Action) error {
	sum := 0
	if len(a.Args) > 0 {
		n, err := strconv.Atoi(a.Args[0])
		if err != nil {
			return fmt.Errorf("roll: invalid sum %q", a.Args[0])
		}
		sum = n
	} else {
		sum = dice.Roll2d6(d.dice)
	}
	paid, err := g.Roll(a.Player, sum)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "player %d rolled %d\n", a.Player, sum)
	owners := make([]board.PlayerID, 0, len(paid))
	for owner := range paid {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	for _, owner := range owners {
		fmt.Fprintf(d.out, "  player %d receives %s\n", owner, paid[owner])
	}
	d.announcePhase(g)
	return nil
}

// handleDiscard handles "discard <p> ore=1,wood=2".
func (d *Driver) handleDiscard(g *game.Game, a Action) error {
	raw, err := a.arg(0)
	if err != nil {
		return err
	}
	cards, err := parseGroup(raw)
	if err != nil {
		return err
	}
	if err := g.Discard(a.Player, cards); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "player %d discarded %s\n", a.Player, cards)
	d.announcePhase(g)
	return nil
}

// handleRobber handles "robber <p> q,r [victim]".
func (d *Driver) handleRobber(g *game.Game, a Action) error {
	hex, err := a.pos(0)
	if err != nil {
		return err
	}
	victim := board.Unowned
	if len(a.Args) > 1 {
		seat, err := strconv.Atoi(a.Args[1])
		if err != nil {
			return fmt.Errorf("robber: invalid victim %q", a.Args[1])
		}
		victim = board.PlayerID(seat)
	}
	stolen, err := g.MoveRobber(a.Player, hex, victim)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "player %d moved the robber to %s\n", a.Player, hex)
	if victim != board.Unowned {
		fmt.Fprintf(d.out, "  and took %s from player %d\n", stolen, victim)
	}
	d.announcePhase(g)
	return nil
}

// handleBuild handles "build <p> settlement|city q,r" and
// "build <p> road q,r q,r".
func (d *Driver) handleBuild(g *game.Game, a Action) error {
	what, err := a.arg(0)
	if err != nil {
		return err
	}
	switch strings.ToLower(what) {
	case "settlement", "city":
		pos, err := a.pos(1)
		if err != nil {
			return err
		}
		if strings.EqualFold(what, "city") {
			err = g.BuildCity(a.Player, pos)
		} else {
			err = g.BuildSettlement(a.Player, pos)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "player %d built a %s at %s\n", a.Player, strings.ToLower(what), pos)
	case "road":
		coords, err := a.path(1)
		if err != nil {
			return err
		}
		if err := g.BuildRoad(a.Player, coords); err != nil {
			return err
		}
		fmt.Fprintf(d.out, "player %d built a road on %s\n", a.Player, coords)
	default:
		return fmt.Errorf("build: unknown piece %q", what)
	}
	d.announcePhase(g)
	return nil
}

func (d *Driver) handleBuy(g *game.Game, a Action) error {
	card, err := g.BuyDevelopment(a.Player)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "player %d bought a %s\n", a.Player, card)
	return nil
}

func (d *Driver) handlePlay(g *game.Game, a Action) error {
	name, err := a.arg(0)
	if err != nil {
		return err
	}
	card, err := parseCard(name)
	if err != nil {
		return err
	}
	if err := g.PlayDevelopment(a.Player, card); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "player %d played %s\n", a.Player, card)
	d.announcePhase(g)
	return nil
}

func (d *Driver) handleTake(g *game.Game, a Action) error {
	kind, err := a.kind(0)
	if err != nil {
		return err
	}
	if err := g.TakeFromBank(a.Player, kind); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "player %d took %s from the bank\n", a.Player, kind)
	d.announcePhase(g)
	return nil
}

// handleTrade handles "trade <p> <give> <get>".
func (d *Driver) handleTrade(g *game.Game, a Action) error {
	give, err := a.kind(0)
	if err != nil {
		return err
	}
	get, err := a.kind(1)
	if err != nil {
		return err
	}
	ratio := g.TradeRatio(a.Player, give)
	if err := g.TradeWithBank(a.Player, give, get); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "player %d traded %d %s for 1 %s\n", a.Player, ratio, give, get)
	return nil
}

func (d *Driver) handleEnd(g *game.Game, a Action) error {
	if err := g.EndTurn(a.Player); err != nil {
		return err
	}
	d.announcePhase(g)
	return nil
}

// spots handles "spots <p> settlement|city|road".
func (d *Driver) spots(g *game.Game, a Action) error {
	what, err := a.arg(0)
	if err != nil {
		return err
	}
	var out []string
	switch strings.ToLower(what) {
	case "settlement":
		for _, pos := range g.ValidBuildSpots(a.Player, board.BuildSettlement) {
			out = append(out, pos.String())
		}
	case "city":
		for _, pos := range g.ValidBuildSpots(a.Player, board.BuildCity) {
			out = append(out, pos.String())
		}
	case "road":
		for _, coords := range g.ValidRoadSpots(a.Player) {
			out = append(out, coords.String())
		}
	default:
		return fmt.Errorf("spots: unknown piece %q", what)
	}
	fmt.Fprintf(d.out, "%d spots: %s\n", len(out), strings.Join(out, " "))
	return nil
}

func (d *Driver) show(g *game.Game) error {
	v := game.BuildView(g)
	fmt.Fprintf(d.out, "phase %s, last roll %d, robber %s\n", v.Phase, v.LastRoll, v.Robber)
	fmt.Fprintf(d.out, "bank %s, deck %d\n", v.Bank, v.DeckSize)
	for _, p := range v.Players {
		fmt.Fprintf(d.out, "player %d: %d points, hand %s, %d development cards, %d knights, road %d\n",
			p.ID, p.Points, p.Resources, p.DevelopmentCards, p.Knights, p.RoadLength)
	}
	fmt.Fprintf(d.out, "checksum %s\n", v.Checksum())
	return nil
}

func (d *Driver) stats(g *game.Game) error {
	hist := g.RollHistogram()
	sums := make([]int, 0, len(hist))
	for sum := range hist {
		sums = append(sums, sum)
	}
	sort.Ints(sums)
	for _, sum := range sums {
		fmt.Fprintf(d.out, "rolled %2d: %d\n", sum, hist[sum])
	}
	for _, p := range g.Players() {
		fmt.Fprintf(d.out, "player %d produced %s\n", p.ID, g.Production(p.ID))
	}
	return nil
}

func (d *Driver) announcePhase(g *game.Game) {
	if winner, ok := g.Winner(); ok {
		fmt.Fprintf(d.out, "player %d wins\n", winner)
		return
	}
	fmt.Fprintf(d.out, "now: %s\n", g.Phase())
}
