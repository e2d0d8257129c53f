// Package game runs one settlement game on top of the board, ledger and
// phase machine: it checks whose move it is, applies the move to the board
// and the hands, and publishes what happened.
//
// A Game is single-writer. Callers that share one across goroutines go
// through Manager, which serialises access per game.
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/dice"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
	"github.com/hexharbor/settlers-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// deckContents is the development deck before shuffling.
var deckContents = map[rules.DevelopmentCard]int{
	rules.CardKnight:       14,
	rules.CardRoadBuilding: 2,
	rules.CardYearOfPlenty: 2,
}

// Game is the state of one game session.
type Game struct {
	id       string
	settings Settings
	board    *board.Board
	players  []*Player
	bank     resource.Group
	deck     []rules.DevelopmentCard
	phase    rules.Phase
	lastRoll int

	// lastSettlement is the opening settlement the next opening road must touch.
	lastSettlement axial.Axial
	// pending lists discarders waiting behind the current one.
	pending []board.PlayerID

	longestRoad board.PlayerID
	largestArmy board.PlayerID

	rng      dice.Source
	logger   *zap.Logger
	events   *rules.EventBus
	watchers *rules.WatcherRegistry
}

// NewGame starts a game on b. An empty id gets a fresh UUID, a nil board
// gets the default layout and a nil logger logs nothing.
func NewGame(id string, settings Settings, b *board.Board, logger *zap.Logger) (*Game, error) {
	if settings.Costs == nil {
		settings.Costs = resource.DefaultCosts()
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}
	if b == nil {
		var err error
		if b, err = board.New(board.DefaultLayout()); err != nil {
			return nil, fmt.Errorf("build default board: %w", err)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rng, err := dice.NewSource(settings.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed game %s: %w", id, err)
	}

	g := &Game{
		id:          id,
		settings:    settings,
		board:       b,
		players:     make([]*Player, settings.Players),
		phase:       rules.StartGame,
		longestRoad: board.Unowned,
		largestArmy: board.Unowned,
		rng:         rng,
		logger:      logger.With(zap.String("game_id", id)),
		events:      rules.NewEventBus(),
		watchers:    rules.NewWatcherRegistry(),
	}
	for i := range g.players {
		g.players[i] = newPlayer(board.PlayerID(i))
	}
	for _, kind := range resource.Tradeable {
		g.bank.Add(kind, settings.BankStart)
	}
	g.shuffleDeck()

	g.watchers.Add(rules.NewProductionWatcher())
	g.watchers.Add(rules.NewRollWatcher())
	g.watchers.Add(rules.NewTurnBuildWatcher())
	g.events.Subscribe(g.watchers.Notify)

	g.logger.Info("game created",
		zap.Int("players", settings.Players),
		zap.Int("victory_points", settings.VictoryPoints),
		zap.Int64("seed", settings.Seed),
	)
	return g, nil
}

func (g *Game) shuffleDeck() {
	for _, card := range []rules.DevelopmentCard{rules.CardKnight, rules.CardRoadBuilding, rules.CardYearOfPlenty} {
		for i := 0; i < deckContents[card]; i++ {
			g.deck = append(g.deck, card)
		}
	}
	for i := len(g.deck) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	}
}

// SetSource replaces the random source used for robber steals and card
// draws.
func (g *Game) SetSource(src dice.Source) {
	if src != nil {
		g.rng = src
	}
}

func (g *Game) ID() string           { return g.id }
func (g *Game) Settings() Settings   { return g.settings }
func (g *Game) Phase() rules.Phase   { return g.phase }
func (g *Game) Bank() resource.Group { return g.bank }
func (g *Game) LastRoll() int        { return g.lastRoll }
func (g *Game) DeckSize() int        { return len(g.deck) }

// Board exposes the board for reading. Mutating it directly bypasses every
// rule the game enforces.
func (g *Game) Board() *board.Board { return g.board }

// Events returns the bus every game event is published on.
func (g *Game) Events() *rules.EventBus { return g.events }

// Player returns a copy of player id.
func (g *Game) Player(id board.PlayerID) (Player, error) {
	p, err := g.player(id)
	if err != nil {
		return Player{}, err
	}
	return p.clone(), nil
}

// Players returns copies of every player in seat order.
func (g *Game) Players() []Player {
	out := make([]Player, len(g.players))
	for i, p := range g.players {
		out[i] = p.clone()
	}
	return out
}

// Winner returns the winner once the game is finished.
func (g *Game) Winner() (board.PlayerID, bool) {
	if !g.phase.IsFinished() {
		return board.Unowned, false
	}
	return board.PlayerID(g.phase.Winner), true
}

// LongestRoadHolder returns who holds the longest road award, if anyone.
func (g *Game) LongestRoadHolder() board.PlayerID { return g.longestRoad }

// LargestArmyHolder returns who holds the largest army award, if anyone.
func (g *Game) LargestArmyHolder() board.PlayerID { return g.largestArmy }

// Points returns id's victory points: one per settlement, two per city and
// two for each award held.
func (g *Game) Points(id board.PlayerID) (int, error) {
	p, err := g.player(id)
	if err != nil {
		return 0, err
	}
	points := 0
	for _, pos := range p.Buildings {
		if v, ok := g.board.Vertex(pos); ok {
			points += v.Build.VictoryPoints()
		}
	}
	if g.longestRoad == id {
		points += AwardPoints
	}
	if g.largestArmy == id {
		points += AwardPoints
	}
	return points, nil
}

// Production returns everything id has collected from the board so far:
// the opening payout plus every roll.
func (g *Game) Production(id board.PlayerID) resource.Group {
	w, _ := g.watchers.Get(rules.ProductionWatcherKey).(*rules.ProductionWatcher)
	if w == nil {
		return resource.Empty()
	}
	return w.Total(int(id))
}

// RollHistogram counts how often each dice sum has been rolled.
func (g *Game) RollHistogram() map[int]int {
	w, _ := g.watchers.Get(rules.RollWatcherKey).(*rules.RollWatcher)
	if w == nil {
		return map[int]int{}
	}
	return w.Histogram()
}

// PlacedThisTurn counts pieces placed since the current turn began.
func (g *Game) PlacedThisTurn() int {
	w, _ := g.watchers.Get(rules.TurnBuildWatcherKey).(*rules.TurnBuildWatcher)
	if w == nil {
		return 0
	}
	return w.Placed()
}

// TradeRatio returns how many of give id must hand the bank for one card.
func (g *Game) TradeRatio(id board.PlayerID, give resource.Resource) int {
	ratio := BankTradeRatio
	for _, h := range g.board.HarborsOf(id) {
		if (h.Resource == resource.None || h.Resource == give) && h.Ratio < ratio {
			ratio = h.Ratio
		}
	}
	return ratio
}

// ValidBuildSpots lists the corners where id could place bt right now,
// taking the phase and id's hand into account. During opening placement
// only settlements are offered and no road connection is needed.
func (g *Game) ValidBuildSpots(id board.PlayerID, bt board.BuildType) []axial.Axial {
	p, err := g.player(id)
	if err != nil {
		return nil
	}
	if g.phase.Kind == rules.PhaseInitialPlacement {
		if bt != board.BuildSettlement || g.phase.CanPlaceInitial(int(id), false) != nil {
			return nil
		}
		return g.board.ValidBuildSpots(board.BuildSettlement, id, false)
	}
	item := resource.ItemSettlement
	if bt == board.BuildCity {
		item = resource.ItemCity
	}
	if g.phase.CanBuild(int(id)) != nil || !p.Resources.Covers(g.settings.Costs.Cost(item)) {
		return nil
	}
	return g.board.ValidBuildSpots(bt, id, true)
}

// ValidRoadSpots lists the sides where id could build a road right now.
func (g *Game) ValidRoadSpots(id board.PlayerID) []board.PathCoords {
	p, err := g.player(id)
	if err != nil {
		return nil
	}
	switch {
	case g.phase.CanPlaceInitial(int(id), true) == nil:
		var out []board.PathCoords
		for _, coords := range g.board.ValidPathSpots(id, false) {
			if coords.Contains(g.lastSettlement) {
				out = append(out, coords)
			}
		}
		return out
	case g.phase.CanBuildFreeRoad(int(id)) == nil:
		return g.board.ValidPathSpots(id, true)
	case g.phase.CanBuild(int(id)) == nil && p.Resources.Covers(g.settings.Costs.Cost(resource.ItemRoad)):
		return g.board.ValidPathSpots(id, true)
	default:
		return nil
	}
}

// RobberVictims lists the players id could steal from after moving the
// robber to hex: owners of a building on one of its corners, other than id,
// holding at least one card.
func (g *Game) RobberVictims(id board.PlayerID, hex axial.Axial) []board.PlayerID {
	var out []board.PlayerID
	for _, owner := range g.board.OwnersAround(hex) {
		if owner == id || int(owner) >= len(g.players) {
			continue
		}
		if g.players[owner].Resources.Total() > 0 {
			out = append(out, owner)
		}
	}
	return out
}

// PendingDiscards lists the players who still owe a discard, the current
// discarder first.
func (g *Game) PendingDiscards() []board.PlayerID {
	if !g.phase.IsTurn() || !g.phase.Turn.IsDiscard() {
		return nil
	}
	return append([]board.PlayerID{board.PlayerID(g.phase.Turn.Discarder)}, g.pending...)
}

func (g *Game) player(id board.PlayerID) (*Player, error) {
	if id < 0 || int(id) >= len(g.players) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchPlayer, id)
	}
	return g.players[id], nil
}

func (g *Game) publish(evt rules.Event) {
	evt.GameID = g.id
	g.events.Publish(evt)
}

func (g *Game) setPhase(next rules.Phase) {
	if next == g.phase {
		return
	}
	prev := g.phase
	g.phase = next
	g.logger.Debug("phase changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
	)
	evt := rules.NewEvent(rules.EventPhaseChanged, g.id, next.Player())
	evt.Phase = next
	g.publish(evt)
}

func seats(ids []board.PlayerID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
