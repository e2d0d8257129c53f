package game

import (
	"fmt"
	"slices"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
	"github.com/hexharbor/settlers-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// Every action below checks the phase gate, then every rule it depends on,
// and only then writes. A returned error means nothing changed.

// PlaceInitialSettlement places an opening settlement. The second opening
// settlement also collects one card for each tile it touches.
func (g *Game) PlaceInitialSettlement(id board.PlayerID, pos axial.Axial) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if err := g.phase.CanPlaceInitial(int(id), false); err != nil {
		return err
	}
	if err := g.board.ValidateSettlement(id, pos, false); err != nil {
		return err
	}
	next, err := g.phase.AfterSettlement()
	if err != nil {
		return err
	}

	var payout resource.Group
	if g.phase.PlacingSecond {
		payout = g.bankCover(g.board.StartingYield(pos))
	}
	bank, err := g.bank.Sub(payout)
	if err != nil {
		return err
	}

	if err := g.board.PlaceBuilding(id, pos, board.BuildSettlement, false); err != nil {
		return err
	}
	p.Buildings = append(p.Buildings, pos)
	g.lastSettlement = pos
	g.bank = bank
	p.Resources.Merge(payout)

	g.logger.Info("opening settlement placed",
		zap.Int("player", int(id)),
		zap.Stringer("pos", pos),
		zap.Stringer("payout", payout),
	)
	g.publishBuild(id, pos)
	if !payout.IsZero() {
		g.publishProduced(id, payout)
	}
	g.setPhase(next)
	return nil
}

// PlaceInitialRoad places the road that goes with the opening settlement
// just placed; it must touch that settlement.
func (g *Game) PlaceInitialRoad(id board.PlayerID, coords board.PathCoords) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	coords = board.NewPathCoords(coords.A, coords.B)
	if err := g.phase.CanPlaceInitial(int(id), true); err != nil {
		return err
	}
	if !coords.Contains(g.lastSettlement) {
		return fmt.Errorf("%w: opening road %s must touch %s", board.ErrDisconnected, coords, g.lastSettlement)
	}
	if err := g.board.ValidateRoad(id, coords, false); err != nil {
		return err
	}
	next, err := g.phase.AfterRoad(len(g.players))
	if err != nil {
		return err
	}

	if err := g.board.PlacePath(id, coords, board.PathRoad, false); err != nil {
		return err
	}
	p.Paths = append(p.Paths, coords)

	g.logger.Info("opening road placed",
		zap.Int("player", int(id)),
		zap.Stringer("coords", coords),
	)
	g.publishRoad(id, coords)
	g.setPhase(next)
	return nil
}

// Roll applies a dice sum rolled by id. A seven sends every player holding
// more than the hand limit to discard, in seat order from the roller, and
// then has the roller move the robber. Any other sum pays out what the
// board yields and returns the payout.
func (g *Game) Roll(id board.PlayerID, sum int) (map[board.PlayerID]resource.Group, error) {
	if _, err := g.player(id); err != nil {
		return nil, err
	}
	if err := g.phase.CanRoll(int(id)); err != nil {
		return nil, err
	}
	if sum < 2 || sum > 12 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRoll, sum)
	}

	if sum == rules.RobberRoll {
		discarders := g.discarders(id)
		next, err := g.phase.AfterRoll(sum, seats(discarders))
		if err != nil {
			return nil, err
		}
		g.lastRoll = sum
		g.pending = nil
		if len(discarders) > 1 {
			g.pending = slices.Clone(discarders[1:])
		}
		g.logger.Info("robber rolled",
			zap.Int("player", int(id)),
			zap.Int("discarders", len(discarders)),
		)
		g.publish(rules.NewEventWithAmount(rules.EventDiceRolled, g.id, int(id), sum))
		g.setPhase(next)
		return map[board.PlayerID]resource.Group{}, nil
	}

	next, err := g.phase.AfterRoll(sum, nil)
	if err != nil {
		return nil, err
	}
	paid, withheld := g.distribute(g.board.YieldForRoll(sum))
	total := resource.Empty()
	for _, group := range paid {
		total.Merge(group)
	}
	bank, err := g.bank.Sub(total)
	if err != nil {
		return nil, err
	}

	g.lastRoll = sum
	g.bank = bank
	for owner, group := range paid {
		g.players[owner].Resources.Merge(group)
	}

	g.logger.Info("dice rolled",
		zap.Int("player", int(id)),
		zap.Int("sum", sum),
		zap.Int("receivers", len(paid)),
	)
	g.publish(rules.NewEventWithAmount(rules.EventDiceRolled, g.id, int(id), sum))
	for _, owner := range sortedOwners(paid) {
		g.publishProduced(owner, paid[owner])
	}
	for _, kind := range withheld {
		evt := rules.NewEvent(rules.EventProductionWithheld, g.id, int(id))
		evt.Resources = resource.Of(kind, 1)
		g.publish(evt)
		g.logger.Info("bank short, production withheld", zap.Stringer("resource", kind))
	}
	g.setPhase(next)
	return paid, nil
}

// Discard gives cards from id's hand back to the bank. Exactly half the
// hand, rounded down, must go.
func (g *Game) Discard(id board.PlayerID, cards resource.Group) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if err := g.phase.CanDiscard(int(id)); err != nil {
		return err
	}
	if !cards.IsNonNegative() {
		return fmt.Errorf("%w: negative amounts in %s", ErrInvalidDiscard, cards)
	}
	owed := p.Resources.Total() / 2
	if cards.Total() != owed {
		return fmt.Errorf("%w: player %d must discard %d cards, offered %d", ErrInvalidDiscard, id, owed, cards.Total())
	}
	hand, err := p.Resources.Sub(cards)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDiscard, err)
	}
	next, err := g.phase.AfterDiscard(seats(g.pending))
	if err != nil {
		return err
	}

	p.Resources = hand
	g.bank.Merge(cards)
	if len(g.pending) > 0 {
		g.pending = g.pending[1:]
	}

	g.logger.Info("cards discarded",
		zap.Int("player", int(id)),
		zap.Stringer("cards", cards),
	)
	evt := rules.NewEventWithAmount(rules.EventCardsDiscarded, g.id, int(id), cards.Total())
	evt.Resources = cards
	g.publish(evt)
	g.setPhase(next)
	return nil
}

// MoveRobber moves the robber to hex and steals one random card from
// victim. victim must be one of RobberVictims(id, hex), or board.Unowned
// when that list is empty. It returns the stolen resource, None when
// nothing was taken.
func (g *Game) MoveRobber(id board.PlayerID, hex axial.Axial, victim board.PlayerID) (resource.Resource, error) {
	p, err := g.player(id)
	if err != nil {
		return resource.None, err
	}
	if err := g.phase.CanMoveRobber(int(id)); err != nil {
		return resource.None, err
	}
	if _, ok := g.board.Hex(hex); !ok {
		return resource.None, fmt.Errorf("%w: %s", board.ErrNoSuchHex, hex)
	}
	if hex == g.board.Robber() {
		return resource.None, fmt.Errorf("%w: already on %s", board.ErrRobberUnmoved, hex)
	}
	eligible := g.RobberVictims(id, hex)
	switch {
	case victim == board.Unowned && len(eligible) > 0:
		return resource.None, fmt.Errorf("%w: must steal from one of %v", ErrInvalidVictim, eligible)
	case victim != board.Unowned && !slices.Contains(eligible, victim):
		return resource.None, fmt.Errorf("%w: player %d cannot be robbed at %s", ErrInvalidVictim, victim, hex)
	}
	next, err := g.phase.AfterRobberMoved()
	if err != nil {
		return resource.None, err
	}

	if err := g.board.MoveRobber(hex); err != nil {
		return resource.None, err
	}
	knight := g.phase.Development.Step == rules.DevKnightActive
	if knight {
		p.Knights++
	}
	stolen := resource.None
	if victim != board.Unowned {
		v := g.players[victim]
		stolen, _ = v.Resources.Nth(g.rng.Intn(v.Resources.Total()))
		v.Resources.Add(stolen, -1)
		p.Resources.Add(stolen, 1)
	}

	g.logger.Info("robber moved",
		zap.Int("player", int(id)),
		zap.Stringer("hex", hex),
		zap.Int("victim", int(victim)),
		zap.Bool("knight", knight),
	)
	evt := rules.NewEvent(rules.EventRobberMoved, g.id, int(id))
	evt.Position = hex.String()
	evt.Target = int(victim)
	g.publish(evt)
	if stolen != resource.None {
		evt := rules.NewEvent(rules.EventResourceStolen, g.id, int(id))
		evt.Target = int(victim)
		evt.Resources = resource.Of(stolen, 1)
		g.publish(evt)
	}
	g.setPhase(next)
	if knight {
		g.updateLargestArmy()
		g.checkVictory(id)
	}
	return stolen, nil
}

// BuildSettlement buys a settlement at pos, which one of id's roads must
// reach.
func (g *Game) BuildSettlement(id board.PlayerID, pos axial.Axial) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if err := g.phase.CanBuild(int(id)); err != nil {
		return err
	}
	if err := g.board.ValidateSettlement(id, pos, true); err != nil {
		return err
	}
	cost := g.settings.Costs.Cost(resource.ItemSettlement)
	hand, err := p.Resources.Sub(cost)
	if err != nil {
		return fmt.Errorf("settlement at %s: %w", pos, err)
	}

	if err := g.board.PlaceBuilding(id, pos, board.BuildSettlement, true); err != nil {
		return err
	}
	p.Resources = hand
	g.bank.Merge(cost)
	p.Buildings = append(p.Buildings, pos)

	g.logger.Info("settlement built", zap.Int("player", int(id)), zap.Stringer("pos", pos))
	g.publishBuild(id, pos)
	// A settlement can split an opponent's road.
	g.updateLongestRoad(board.Unowned)
	g.checkVictory(id)
	return nil
}

// BuildCity upgrades id's settlement at pos.
func (g *Game) BuildCity(id board.PlayerID, pos axial.Axial) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if err := g.phase.CanBuild(int(id)); err != nil {
		return err
	}
	if err := g.board.ValidateCity(id, pos); err != nil {
		return err
	}
	cost := g.settings.Costs.Cost(resource.ItemCity)
	hand, err := p.Resources.Sub(cost)
	if err != nil {
		return fmt.Errorf("city at %s: %w", pos, err)
	}

	if err := g.board.PlaceBuilding(id, pos, board.BuildCity, false); err != nil {
		return err
	}
	p.Resources = hand
	g.bank.Merge(cost)

	g.logger.Info("city built", zap.Int("player", int(id)), zap.Stringer("pos", pos))
	g.publishBuild(id, pos)
	g.checkVictory(id)
	return nil
}

// BuildRoad builds a road along coords. While a road building card is
// being resolved the road is free; otherwise it is bought.
func (g *Game) BuildRoad(id board.PlayerID, coords board.PathCoords) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	coords = board.NewPathCoords(coords.A, coords.B)

	free := g.phase.CanBuildFreeRoad(int(id)) == nil
	if !free {
		if err := g.phase.CanBuild(int(id)); err != nil {
			return err
		}
	}
	if err := g.board.ValidateRoad(id, coords, true); err != nil {
		return err
	}

	hand := p.Resources
	cost := resource.Empty()
	next := g.phase
	if free {
		if next, err = g.phase.AfterDevelopmentStep(); err != nil {
			return err
		}
	} else {
		cost = g.settings.Costs.Cost(resource.ItemRoad)
		if hand, err = p.Resources.Sub(cost); err != nil {
			return fmt.Errorf("road at %s: %w", coords, err)
		}
	}

	if err := g.board.PlacePath(id, coords, board.PathRoad, true); err != nil {
		return err
	}
	p.Resources = hand
	g.bank.Merge(cost)
	p.Paths = append(p.Paths, coords)

	g.logger.Info("road built",
		zap.Int("player", int(id)),
		zap.Stringer("coords", coords),
		zap.Bool("free", free),
	)
	g.publishRoad(id, coords)
	g.setPhase(g.settleDevelopment(next))
	g.updateLongestRoad(id)
	g.checkVictory(id)
	return nil
}

// BuyDevelopment buys the top card of the development deck. It can be
// played from the next turn on.
func (g *Game) BuyDevelopment(id board.PlayerID) (rules.DevelopmentCard, error) {
	p, err := g.player(id)
	if err != nil {
		return 0, err
	}
	if err := g.phase.CanBuild(int(id)); err != nil {
		return 0, err
	}
	if len(g.deck) == 0 {
		return 0, ErrEmptyDeck
	}
	cost := g.settings.Costs.Cost(resource.ItemDevelopment)
	hand, err := p.Resources.Sub(cost)
	if err != nil {
		return 0, fmt.Errorf("development card: %w", err)
	}

	card := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	p.Resources = hand
	g.bank.Merge(cost)
	p.Fresh[card]++

	g.logger.Info("development card bought", zap.Int("player", int(id)), zap.Int("deck", len(g.deck)))
	return card, nil
}

// PlayDevelopment plays one of id's development cards. At most one card is
// played per turn, before rolling or once the roll is resolved.
func (g *Game) PlayDevelopment(id board.PlayerID, card rules.DevelopmentCard) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if err := g.phase.CanPlayDevelopment(int(id)); err != nil {
		return err
	}
	if p.Cards[card] == 0 {
		return fmt.Errorf("%w: player %d holds no playable %s", ErrNoCard, id, card)
	}
	next, err := g.phase.PlayDevelopment(card)
	if err != nil {
		return err
	}

	p.Cards[card]--
	if p.Cards[card] == 0 {
		delete(p.Cards, card)
	}

	g.logger.Info("development card played", zap.Int("player", int(id)), zap.Stringer("card", card))
	evt := rules.NewEvent(rules.EventDevelopmentPlayed, g.id, int(id))
	evt.Amount = int(card)
	g.publish(evt)
	g.setPhase(g.settleDevelopment(next))
	return nil
}

// TakeFromBank takes one card of kind while resolving year of plenty.
func (g *Game) TakeFromBank(id board.PlayerID, kind resource.Resource) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if err := g.phase.CanTakeFromBank(int(id)); err != nil {
		return err
	}
	if !kind.IsTradeable() {
		return fmt.Errorf("%w: cannot take %s", ErrInvalidTrade, kind)
	}
	bank, err := g.bank.Sub(resource.Of(kind, 1))
	if err != nil {
		return fmt.Errorf("bank: %w", err)
	}
	next, err := g.phase.AfterDevelopmentStep()
	if err != nil {
		return err
	}

	g.bank = bank
	p.Resources.Add(kind, 1)

	g.logger.Info("took from bank", zap.Int("player", int(id)), zap.Stringer("resource", kind))
	evt := rules.NewEvent(rules.EventBankWithdrawal, g.id, int(id))
	evt.Resources = resource.Of(kind, 1)
	g.publish(evt)
	g.setPhase(g.settleDevelopment(next))
	return nil
}

// TradeWithBank swaps TradeRatio(id, give) cards of give for one of get.
func (g *Game) TradeWithBank(id board.PlayerID, give, get resource.Resource) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if err := g.phase.CanBuild(int(id)); err != nil {
		return err
	}
	if !give.IsTradeable() || !get.IsTradeable() || give == get {
		return fmt.Errorf("%w: %s for %s", ErrInvalidTrade, give, get)
	}
	paid := resource.Of(give, g.TradeRatio(id, give))
	received := resource.Of(get, 1)
	hand, err := p.Resources.Sub(paid)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTrade, err)
	}
	bank, err := g.bank.Sub(received)
	if err != nil {
		return fmt.Errorf("%w: bank: %w", ErrInvalidTrade, err)
	}

	p.Resources = hand.Plus(received)
	g.bank = bank.Plus(paid)

	g.logger.Info("traded with bank",
		zap.Int("player", int(id)),
		zap.Stringer("paid", paid),
		zap.Stringer("received", received),
	)
	return nil
}

// EndTurn passes the turn to the next seat. Cards bought this turn become
// playable.
func (g *Game) EndTurn(id board.PlayerID) error {
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if err := g.phase.CanEndTurn(int(id)); err != nil {
		return err
	}
	next, err := g.phase.EndTurn(len(g.players))
	if err != nil {
		return err
	}

	for card, n := range p.Fresh {
		p.Cards[card] += n
	}
	clear(p.Fresh)

	g.logger.Info("turn ended", zap.Int("player", int(id)), zap.Int("next", next.Player()))
	g.publish(rules.NewEvent(rules.EventTurnEnded, g.id, int(id)))
	g.setPhase(next)
	return nil
}

// settleDevelopment finishes a two-part card early when its remaining parts
// cannot be carried out: no legal road is left, or the bank is empty.
func (g *Game) settleDevelopment(next rules.Phase) rules.Phase {
	for next.IsTurn() {
		id := board.PlayerID(next.Active)
		stuck := false
		switch next.Development.Step {
		case rules.DevRoadBuildingActive:
			stuck = len(g.board.ValidPathSpots(id, true)) == 0
		case rules.DevYearOfPlentyActive:
			stuck = g.bank.IsZero()
		}
		if !stuck {
			return next
		}
		advanced, err := next.AfterDevelopmentStep()
		if err != nil {
			return next
		}
		next = advanced
	}
	return next
}

// discarders lists, in seat order starting from roller, the players whose
// hand exceeds the limit.
func (g *Game) discarders(roller board.PlayerID) []board.PlayerID {
	var out []board.PlayerID
	n := len(g.players)
	for i := 0; i < n; i++ {
		id := board.PlayerID((int(roller) + i) % n)
		if g.players[id].Resources.Total() > g.settings.HandLimit {
			out = append(out, id)
		}
	}
	return out
}

// distribute applies the bank's stock to a roll's yields. A resource the
// bank cannot hand out in full goes to nobody.
func (g *Game) distribute(yields map[board.PlayerID]resource.Group) (map[board.PlayerID]resource.Group, []resource.Resource) {
	demand := resource.Empty()
	for _, group := range yields {
		demand.Merge(group)
	}
	var withheld []resource.Resource
	for _, kind := range resource.Tradeable {
		if demand.Get(kind) > g.bank.Get(kind) {
			withheld = append(withheld, kind)
		}
	}

	paid := make(map[board.PlayerID]resource.Group, len(yields))
	for owner, group := range yields {
		for _, kind := range withheld {
			group.Add(kind, -group.Get(kind))
		}
		if !group.IsZero() {
			paid[owner] = group
		}
	}
	return paid, withheld
}

// bankCover trims want to what the bank holds.
func (g *Game) bankCover(want resource.Group) resource.Group {
	out := resource.Empty()
	want.Each(func(kind resource.Resource, count int) {
		out.Add(kind, min(count, g.bank.Get(kind)))
	})
	return out
}

func (g *Game) updateLongestRoad(builder board.PlayerID) {
	lengths := make([]int, len(g.players))
	for i, p := range g.players {
		lengths[i] = g.board.LongestRoad(p.ID)
	}
	holder := awardHolder(g.longestRoad, lengths, LongestRoadMinimum)
	if holder != g.longestRoad {
		length := 0
		if holder != board.Unowned {
			length = lengths[holder]
		}
		g.logger.Info("longest road changed hands",
			zap.Int("from", int(g.longestRoad)),
			zap.Int("to", int(holder)),
			zap.Int("length", length),
			zap.Int("builder", int(builder)),
		)
		g.longestRoad = holder
	}
}

func (g *Game) updateLargestArmy() {
	knights := make([]int, len(g.players))
	for i, p := range g.players {
		knights[i] = p.Knights
	}
	holder := awardHolder(g.largestArmy, knights, LargestArmyMinimum)
	if holder != g.largestArmy {
		most := 0
		if holder != board.Unowned {
			most = knights[holder]
		}
		g.logger.Info("largest army changed hands",
			zap.Int("from", int(g.largestArmy)),
			zap.Int("to", int(holder)),
			zap.Int("knights", most),
		)
		g.largestArmy = holder
	}
}

// awardHolder picks who holds an award given every seat's score. The holder
// keeps it while still tied for the lead. Otherwise a sole leader at or above
// minimum takes it, and a tie sets it aside.
func awardHolder(holder board.PlayerID, scores []int, minimum int) board.PlayerID {
	best := 0
	for _, s := range scores {
		best = max(best, s)
	}
	if best < minimum {
		return board.Unowned
	}
	if holder != board.Unowned && scores[holder] == best {
		return holder
	}
	leader := board.Unowned
	for seat, s := range scores {
		if s != best {
			continue
		}
		if leader != board.Unowned {
			return board.Unowned
		}
		leader = board.PlayerID(seat)
	}
	return leader
}

// checkVictory ends the game if id, whose turn it is, has enough points.
func (g *Game) checkVictory(id board.PlayerID) {
	if !g.phase.IsTurn() {
		return
	}
	points, err := g.Points(id)
	if err != nil || points < g.settings.VictoryPoints {
		return
	}
	next, err := g.phase.Finish(int(id))
	if err != nil {
		return
	}
	g.logger.Info("game finished", zap.Int("winner", int(id)), zap.Int("points", points))
	g.publish(rules.NewEventWithAmount(rules.EventGameFinished, g.id, int(id), points))
	g.setPhase(next)
}

func (g *Game) publishBuild(id board.PlayerID, pos axial.Axial) {
	evt := rules.NewEvent(rules.EventBuildingPlaced, g.id, int(id))
	evt.Position = pos.String()
	g.publish(evt)
}

func (g *Game) publishRoad(id board.PlayerID, coords board.PathCoords) {
	evt := rules.NewEvent(rules.EventRoadPlaced, g.id, int(id))
	evt.Position = coords.String()
	g.publish(evt)
}

func (g *Game) publishProduced(id board.PlayerID, group resource.Group) {
	evt := rules.NewEventWithAmount(rules.EventResourcesProduced, g.id, int(id), group.Total())
	evt.Target = int(id)
	evt.Resources = group
	g.publish(evt)
}

func sortedOwners(m map[board.PlayerID]resource.Group) []board.PlayerID {
	out := make([]board.PlayerID, 0, len(m))
	for owner := range m {
		out = append(out, owner)
	}
	slices.Sort(out)
	return out
}
