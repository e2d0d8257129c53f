package rules

import (
	"errors"
	"fmt"
)

// ErrIllegalPhase is returned for any action attempted outside the phase,
// turn step or development step that allows it.
var ErrIllegalPhase = errors.New("illegal in current phase")

// PhaseKind selects which variant of Phase is active.
type PhaseKind int

const (
	PhaseInitialPlacement PhaseKind = iota
	PhaseTurn
	PhaseFinishedGame
)

var phaseKindNames = map[PhaseKind]string{
	PhaseInitialPlacement: "INITIAL_PLACEMENT",
	PhaseTurn:             "TURN",
	PhaseFinishedGame:     "FINISHED_GAME",
}

func (k PhaseKind) String() string {
	if name, ok := phaseKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(k))
}

// TurnStep is the sub-phase of a main-game turn.
type TurnStep int

const (
	StepPreRoll TurnStep = iota
	StepDiscard
	StepMoveThief
	StepFree
)

var turnStepNames = map[TurnStep]string{
	StepPreRoll:   "PRE_ROLL",
	StepDiscard:   "DISCARD",
	StepMoveThief: "MOVE_THIEF",
	StepFree:      "FREE",
}

func (s TurnStep) String() string {
	if name, ok := turnStepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

// TurnPhase is a TurnStep plus, for StepDiscard, the player who must discard.
type TurnPhase struct {
	Step      TurnStep
	Discarder int
}

var (
	PreRoll   = TurnPhase{Step: StepPreRoll}
	MoveThief = TurnPhase{Step: StepMoveThief}
	Free      = TurnPhase{Step: StepFree}
)

// Discard is the step in which player must give up half their hand.
func Discard(player int) TurnPhase {
	return TurnPhase{Step: StepDiscard, Discarder: player}
}

// Unbound reports whether the active player is free to choose their next
// action (before rolling or after all roll consequences resolved).
func (tp TurnPhase) Unbound() bool {
	return tp.Step == StepPreRoll || tp.Step == StepFree
}

// IsDiscard reports whether some player is discarding.
func (tp TurnPhase) IsDiscard() bool {
	return tp.Step == StepDiscard
}

func (tp TurnPhase) String() string {
	if tp.Step == StepDiscard {
		return fmt.Sprintf("%s(%d)", tp.Step, tp.Discarder)
	}
	return tp.Step.String()
}

// DevelopmentStep tracks development card play within a turn.
type DevelopmentStep int

const (
	DevReady DevelopmentStep = iota
	DevKnightActive
	DevRoadBuildingActive
	DevYearOfPlentyActive
	DevPlayed
)

var developmentStepNames = map[DevelopmentStep]string{
	DevReady:              "READY",
	DevKnightActive:       "KNIGHT_ACTIVE",
	DevRoadBuildingActive: "ROAD_BUILDING_ACTIVE",
	DevYearOfPlentyActive: "YEAR_OF_PLENTY_ACTIVE",
	DevPlayed:             "DEVELOPMENT_PLAYED",
}

func (s DevelopmentStep) String() string {
	if name, ok := developmentStepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DEV_%d", int(s))
}

// DevelopmentPhase is a DevelopmentStep plus, for the two-part cards, whether
// both parts are still outstanding.
type DevelopmentPhase struct {
	Step    DevelopmentStep
	TwoLeft bool
}

var (
	Ready             = DevelopmentPhase{Step: DevReady}
	KnightActive      = DevelopmentPhase{Step: DevKnightActive}
	DevelopmentPlayed = DevelopmentPhase{Step: DevPlayed}
)

// RoadBuildingActive is the road building card with one or two free roads left.
func RoadBuildingActive(twoLeft bool) DevelopmentPhase {
	return DevelopmentPhase{Step: DevRoadBuildingActive, TwoLeft: twoLeft}
}

// YearOfPlentyActive is the year of plenty card with one or two picks left.
func YearOfPlentyActive(twoLeft bool) DevelopmentPhase {
	return DevelopmentPhase{Step: DevYearOfPlentyActive, TwoLeft: twoLeft}
}

// Resolving reports whether a played card still has effects pending.
func (dp DevelopmentPhase) Resolving() bool {
	switch dp.Step {
	case DevKnightActive, DevRoadBuildingActive, DevYearOfPlentyActive:
		return true
	default:
		return false
	}
}

func (dp DevelopmentPhase) String() string {
	switch dp.Step {
	case DevRoadBuildingActive, DevYearOfPlentyActive:
		return fmt.Sprintf("%s(two_left=%t)", dp.Step, dp.TwoLeft)
	default:
		return dp.Step.String()
	}
}

// Phase is the game's control state: exactly one variant, selected by Kind,
// is meaningful at a time.
//
//   - PhaseInitialPlacement uses Active, PlacingSecond, PlacingRoad.
//   - PhaseTurn uses Active, Turn, Development.
//   - PhaseFinishedGame uses Winner.
type Phase struct {
	Kind PhaseKind

	Active        int
	PlacingSecond bool
	PlacingRoad   bool

	Turn        TurnPhase
	Development DevelopmentPhase

	Winner int
}

// InitialPlacement builds the opening-placement variant.
func InitialPlacement(player int, placingSecond, placingRoad bool) Phase {
	return Phase{
		Kind:          PhaseInitialPlacement,
		Active:        player,
		PlacingSecond: placingSecond,
		PlacingRoad:   placingRoad,
	}
}

// Turn builds the main-game variant.
func Turn(player int, turn TurnPhase, development DevelopmentPhase) Phase {
	return Phase{
		Kind:        PhaseTurn,
		Active:      player,
		Turn:        turn,
		Development: development,
	}
}

// Finished builds the terminal variant.
func Finished(winner int) Phase {
	return Phase{Kind: PhaseFinishedGame, Winner: winner}
}

var (
	// StartGame is the first player's first settlement.
	StartGame = InitialPlacement(0, false, false)
	// StartTurns is the first main-game turn.
	StartTurns = Turn(0, PreRoll, Ready)
)

// Player returns the player whose input the game is waiting for. While
// someone discards this is the discarder rather than the turn holder; once
// the game is finished it is the winner.
func (p Phase) Player() int {
	switch p.Kind {
	case PhaseTurn:
		if p.Turn.Step == StepDiscard {
			return p.Turn.Discarder
		}
		return p.Active
	case PhaseFinishedGame:
		return p.Winner
	default:
		return p.Active
	}
}

// IsTurn reports whether the main game is running.
func (p Phase) IsTurn() bool {
	return p.Kind == PhaseTurn
}

// IsFinished reports whether the game is over.
func (p Phase) IsFinished() bool {
	return p.Kind == PhaseFinishedGame
}

// IsThief reports whether moving the robber is the only legal action, either
// after a seven or while a knight is being played.
func (p Phase) IsThief() bool {
	if p.Kind != PhaseTurn {
		return false
	}
	return p.Turn.Step == StepMoveThief || p.Development.Step == DevKnightActive
}

func (p Phase) String() string {
	switch p.Kind {
	case PhaseInitialPlacement:
		return fmt.Sprintf("%s{player=%d second=%t road=%t}",
			p.Kind, p.Active, p.PlacingSecond, p.PlacingRoad)
	case PhaseTurn:
		return fmt.Sprintf("%s{player=%d turn=%s development=%s}",
			p.Kind, p.Active, p.Turn, p.Development)
	case PhaseFinishedGame:
		return fmt.Sprintf("%s{winner=%d}", p.Kind, p.Winner)
	default:
		return p.Kind.String()
	}
}
