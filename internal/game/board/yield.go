package board

import (
	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
)

// RobberRoll is the dice sum that produces nothing and summons the robber.
const RobberRoll = 7

// YieldForRoll computes what every player collects for a dice sum. Each tile
// numbered roll and not under the robber credits each building on its
// corners with the building's yield multiplier. Players who collect nothing
// are absent from the result.
func (b *Board) YieldForRoll(roll int) map[PlayerID]resource.Group {
	yields := make(map[PlayerID]resource.Group)
	if roll == RobberRoll || roll < 2 || roll > 12 {
		return yields
	}
	for _, hex := range b.hexes {
		if hex.Number != roll || hex.Pos == b.robber || !hex.Resource.IsTradeable() {
			continue
		}
		for _, v := range b.AdjacentVertices(hex.Pos) {
			if !v.Owned() {
				continue
			}
			amount := v.Build.YieldMultiplier()
			if amount == 0 {
				continue
			}
			group := yields[v.Owner]
			group.Add(hex.Resource, amount)
			yields[v.Owner] = group
		}
	}
	return yields
}

// StartingYield is one unit of each resource produced by the tiles around
// pos, paid out for a player's second opening settlement.
func (b *Board) StartingYield(pos axial.Axial) resource.Group {
	g := resource.Empty()
	for _, h := range b.AdjacentHexes(pos) {
		g.Add(h.Resource, 1)
	}
	return g
}
