package game

import (
	"maps"
	"slices"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
	"github.com/hexharbor/settlers-server-go/internal/game/rules"
)

// Player is a seat at the table. Buildings and Paths mirror what the board
// records for this player and are updated with every successful build.
type Player struct {
	ID        board.PlayerID
	Buildings []axial.Axial
	Paths     []board.PathCoords
	Resources resource.Group

	// Cards holds development cards playable this turn; Fresh holds those
	// bought this turn, which become playable when the turn ends.
	Cards   map[rules.DevelopmentCard]int
	Fresh   map[rules.DevelopmentCard]int
	Knights int
}

func newPlayer(id board.PlayerID) *Player {
	return &Player{
		ID:    id,
		Cards: make(map[rules.DevelopmentCard]int),
		Fresh: make(map[rules.DevelopmentCard]int),
	}
}

// CardCount returns the number of development cards held, playable or not.
func (p *Player) CardCount() int {
	n := 0
	for _, c := range p.Cards {
		n += c
	}
	for _, c := range p.Fresh {
		n += c
	}
	return n
}

func (p *Player) clone() Player {
	out := *p
	out.Buildings = slices.Clone(p.Buildings)
	out.Paths = slices.Clone(p.Paths)
	out.Cards = maps.Clone(p.Cards)
	out.Fresh = maps.Clone(p.Fresh)
	return out
}
