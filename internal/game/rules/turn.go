package rules

import (
	"fmt"
)

// DevelopmentCard names the cards whose play changes the development step.
type DevelopmentCard int

const (
	CardKnight DevelopmentCard = iota
	CardRoadBuilding
	CardYearOfPlenty
)

var developmentCardNames = map[DevelopmentCard]string{
	CardKnight:       "KNIGHT",
	CardRoadBuilding: "ROAD_BUILDING",
	CardYearOfPlenty: "YEAR_OF_PLENTY",
}

func (c DevelopmentCard) String() string {
	if name, ok := developmentCardNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CARD_%d", int(c))
}

// RobberRoll is the dice sum that starts the discard and robber sequence.
const RobberRoll = 7

func illegal(p Phase, action string) error {
	return fmt.Errorf("%w: cannot %s during %s", ErrIllegalPhase, action, p)
}

// AfterSettlement moves an opening placement from the settlement to its road.
func (p Phase) AfterSettlement() (Phase, error) {
	if p.Kind != PhaseInitialPlacement || p.PlacingRoad {
		return p, illegal(p, "finish an opening settlement")
	}
	return InitialPlacement(p.Active, p.PlacingSecond, true), nil
}

// AfterRoad ends one player's opening placement. Players place forward in
// seat order, then the last player starts the second round which runs back
// to player 0; after player 0's second road the first turn begins.
func (p Phase) AfterRoad(players int) (Phase, error) {
	if p.Kind != PhaseInitialPlacement || !p.PlacingRoad {
		return p, illegal(p, "finish an opening road")
	}
	if players <= 0 {
		return p, fmt.Errorf("invalid player count %d", players)
	}
	if !p.PlacingSecond {
		if p.Active < players-1 {
			return InitialPlacement(p.Active+1, false, false), nil
		}
		return InitialPlacement(p.Active, true, false), nil
	}
	if p.Active > 0 {
		return InitialPlacement(p.Active-1, true, false), nil
	}
	return StartTurns, nil
}

// AfterRoll applies a dice sum rolled in the pre-roll step. A seven sends
// each of discarders, in order, to the discard step and then the roller to
// move the thief; any other sum frees the turn.
func (p Phase) AfterRoll(roll int, discarders []int) (Phase, error) {
	if p.Kind != PhaseTurn || p.Turn.Step != StepPreRoll || p.Development.Resolving() {
		return p, illegal(p, "roll")
	}
	if roll != RobberRoll {
		return Turn(p.Active, Free, p.Development), nil
	}
	return p.nextDiscard(discarders), nil
}

// AfterDiscard hands the discard step to the next of remaining, or to the
// roller's thief move once nobody is left.
func (p Phase) AfterDiscard(remaining []int) (Phase, error) {
	if p.Kind != PhaseTurn || p.Turn.Step != StepDiscard {
		return p, illegal(p, "discard")
	}
	return p.nextDiscard(remaining), nil
}

func (p Phase) nextDiscard(pending []int) Phase {
	if len(pending) > 0 {
		return Turn(p.Active, Discard(pending[0]), p.Development)
	}
	return Turn(p.Active, MoveThief, p.Development)
}

// AfterRobberMoved resolves whichever gate required the robber move: the
// thief step becomes free, or the knight is marked as played.
func (p Phase) AfterRobberMoved() (Phase, error) {
	if !p.IsThief() {
		return p, illegal(p, "move the robber")
	}
	if p.Turn.Step == StepMoveThief {
		return Turn(p.Active, Free, p.Development), nil
	}
	return Turn(p.Active, p.Turn, DevelopmentPlayed), nil
}

// PlayDevelopment starts resolving card. At most one card is played per
// turn, and only while the turn holder is free to act.
func (p Phase) PlayDevelopment(card DevelopmentCard) (Phase, error) {
	if p.Kind != PhaseTurn || !p.Turn.Unbound() || p.Development.Step != DevReady {
		return p, illegal(p, "play "+card.String())
	}
	switch card {
	case CardKnight:
		return Turn(p.Active, p.Turn, KnightActive), nil
	case CardRoadBuilding:
		return Turn(p.Active, p.Turn, RoadBuildingActive(true)), nil
	case CardYearOfPlenty:
		return Turn(p.Active, p.Turn, YearOfPlentyActive(true)), nil
	default:
		return p, fmt.Errorf("unknown development card %s", card)
	}
}

// AfterDevelopmentStep consumes one part of a two-part card.
func (p Phase) AfterDevelopmentStep() (Phase, error) {
	if p.Kind != PhaseTurn {
		return p, illegal(p, "resolve a development card")
	}
	switch p.Development.Step {
	case DevRoadBuildingActive:
		if p.Development.TwoLeft {
			return Turn(p.Active, p.Turn, RoadBuildingActive(false)), nil
		}
		return Turn(p.Active, p.Turn, DevelopmentPlayed), nil
	case DevYearOfPlentyActive:
		if p.Development.TwoLeft {
			return Turn(p.Active, p.Turn, YearOfPlentyActive(false)), nil
		}
		return Turn(p.Active, p.Turn, DevelopmentPlayed), nil
	default:
		return p, illegal(p, "resolve a development card")
	}
}

// EndTurn passes the turn to the next seat.
func (p Phase) EndTurn(players int) (Phase, error) {
	if p.Kind != PhaseTurn || p.Turn.Step != StepFree || p.Development.Resolving() {
		return p, illegal(p, "end the turn")
	}
	if players <= 0 {
		return p, fmt.Errorf("invalid player count %d", players)
	}
	return Turn((p.Active+1)%players, PreRoll, Ready), nil
}

// Finish ends the game with winner.
func (p Phase) Finish(winner int) (Phase, error) {
	if p.Kind == PhaseFinishedGame {
		return p, illegal(p, "finish the game")
	}
	return Finished(winner), nil
}

// CanPlaceInitial checks that player may place an opening settlement (road
// false) or road (road true).
func (p Phase) CanPlaceInitial(player int, road bool) error {
	if p.Kind != PhaseInitialPlacement || p.Active != player || p.PlacingRoad != road {
		what := "place an opening settlement"
		if road {
			what = "place an opening road"
		}
		return illegal(p, fmt.Sprintf("%s for player %d", what, player))
	}
	return nil
}

// CanRoll checks that player may roll the dice.
func (p Phase) CanRoll(player int) error {
	if p.Kind != PhaseTurn || p.Active != player || p.Turn.Step != StepPreRoll || p.Development.Resolving() {
		return illegal(p, fmt.Sprintf("roll for player %d", player))
	}
	return nil
}

// CanDiscard checks that player is the one who must discard now.
func (p Phase) CanDiscard(player int) error {
	if p.Kind != PhaseTurn || !p.Turn.IsDiscard() || p.Turn.Discarder != player {
		return illegal(p, fmt.Sprintf("discard for player %d", player))
	}
	return nil
}

// CanMoveRobber checks that player must move the robber now.
func (p Phase) CanMoveRobber(player int) error {
	if !p.IsThief() || p.Active != player {
		return illegal(p, fmt.Sprintf("move the robber for player %d", player))
	}
	return nil
}

// CanBuild checks that player may buy and build. Free roads granted by road
// building are checked with CanBuildFreeRoad instead.
func (p Phase) CanBuild(player int) error {
	if p.Kind != PhaseTurn || p.Active != player || p.Turn.Step != StepFree || p.Development.Resolving() {
		return illegal(p, fmt.Sprintf("build for player %d", player))
	}
	return nil
}

// CanBuildFreeRoad checks that player is resolving road building.
func (p Phase) CanBuildFreeRoad(player int) error {
	if p.Kind != PhaseTurn || p.Active != player || p.Development.Step != DevRoadBuildingActive {
		return illegal(p, fmt.Sprintf("build a free road for player %d", player))
	}
	return nil
}

// CanTakeFromBank checks that player is resolving year of plenty.
func (p Phase) CanTakeFromBank(player int) error {
	if p.Kind != PhaseTurn || p.Active != player || p.Development.Step != DevYearOfPlentyActive {
		return illegal(p, fmt.Sprintf("take from the bank for player %d", player))
	}
	return nil
}

// CanPlayDevelopment checks that player may play a development card.
func (p Phase) CanPlayDevelopment(player int) error {
	if p.Kind != PhaseTurn || p.Active != player || !p.Turn.Unbound() || p.Development.Step != DevReady {
		return illegal(p, fmt.Sprintf("play a development card for player %d", player))
	}
	return nil
}

// CanEndTurn checks that player may pass the turn.
func (p Phase) CanEndTurn(player int) error {
	if p.Kind != PhaseTurn || p.Active != player || p.Turn.Step != StepFree || p.Development.Resolving() {
		return illegal(p, fmt.Sprintf("end the turn for player %d", player))
	}
	return nil
}
