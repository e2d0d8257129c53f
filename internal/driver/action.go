package driver

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
	"github.com/hexharbor/settlers-server-go/internal/game/rules"
)

// ActionType names a command a player can issue.
type ActionType string

const (
	ActionPlace   ActionType = "PLACE"
	ActionRoll    ActionType = "ROLL"
	ActionDiscard ActionType = "DISCARD"
	ActionRobber  ActionType = "ROBBER"
	ActionBuild   ActionType = "BUILD"
	ActionBuy     ActionType = "BUY"
	ActionPlay    ActionType = "PLAY"
	ActionTake    ActionType = "TAKE"
	ActionTrade   ActionType = "TRADE"
	ActionEnd     ActionType = "END"
	ActionSpots   ActionType = "SPOTS"
	ActionShow    ActionType = "SHOW"
	ActionStats   ActionType = "STATS"
)

// playerless actions take no seat number.
var playerless = map[ActionType]bool{
	ActionShow:  true,
	ActionStats: true,
}

// Action is one parsed command line, e.g. "build 0 road 0,1 0,2".
type Action struct {
	Type      ActionType
	Player    board.PlayerID
	Args      []string
	Timestamp time.Time
}

// ParseAction splits a command line into an action. The first word is the
// action, the second the acting seat; everything after is left to the
// handler.
func ParseAction(line string) (Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("empty command")
	}
	action := Action{
		Type:      ActionType(strings.ToUpper(fields[0])),
		Player:    board.Unowned,
		Timestamp: time.Now(),
	}
	rest := fields[1:]
	if !playerless[action.Type] {
		if len(rest) == 0 {
			return Action{}, fmt.Errorf("%s: missing player", strings.ToLower(string(action.Type)))
		}
		seat, err := strconv.Atoi(rest[0])
		if err != nil {
			return Action{}, fmt.Errorf("%s: invalid player %q", strings.ToLower(string(action.Type)), rest[0])
		}
		action.Player = board.PlayerID(seat)
		rest = rest[1:]
	}
	action.Args = rest
	return action, nil
}

func (a Action) arg(i int) (string, error) {
	if i >= len(a.Args) {
		return "", fmt.Errorf("%s: expected at least %d arguments, got %d", strings.ToLower(string(a.Type)), i+1, len(a.Args))
	}
	return a.Args[i], nil
}

func (a Action) pos(i int) (axial.Axial, error) {
	s, err := a.arg(i)
	if err != nil {
		return axial.Axial{}, err
	}
	return axial.Parse(s)
}

func (a Action) path(i int) (board.PathCoords, error) {
	from, err := a.pos(i)
	if err != nil {
		return board.PathCoords{}, err
	}
	to, err := a.pos(i + 1)
	if err != nil {
		return board.PathCoords{}, err
	}
	return board.NewPathCoords(from, to), nil
}

func (a Action) kind(i int) (resource.Resource, error) {
	s, err := a.arg(i)
	if err != nil {
		return resource.None, err
	}
	return resource.Parse(s)
}

// parseGroup reads "ore=1,wood=2".
func parseGroup(s string) (resource.Group, error) {
	counts := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return resource.Group{}, fmt.Errorf("invalid card count %q, want name=count", part)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return resource.Group{}, fmt.Errorf("invalid card count %q: %w", part, err)
		}
		counts[name] += n
	}
	return resource.FromMap(counts)
}

var cardNames = map[string]rules.DevelopmentCard{
	"knight":         rules.CardKnight,
	"road_building":  rules.CardRoadBuilding,
	"year_of_plenty": rules.CardYearOfPlenty,
}

func parseCard(s string) (rules.DevelopmentCard, error) {
	card, ok := cardNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown development card %q", s)
	}
	return card, nil
}
