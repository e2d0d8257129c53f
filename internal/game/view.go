package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"time"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
)

// View is a read-only snapshot of a game, with render-space positions for
// drawing it.
type View struct {
	GameID      string
	Phase       string
	Active      int
	LastRoll    int
	Robber      axial.Axial
	Bank        resource.Group
	DeckSize    int
	LongestRoad board.PlayerID
	LargestArmy board.PlayerID
	Players     []PlayerView
	Hexes       []HexView
	Buildings   []BuildingView
	Roads       []RoadView
	Harbors     []HarborView
	Timestamp   time.Time
}

type PlayerView struct {
	ID               board.PlayerID
	Points           int
	Resources        resource.Group
	DevelopmentCards int
	Knights          int
	RoadLength       int
}

type HexView struct {
	Pos      axial.Axial
	Center   axial.Point
	Resource resource.Resource
	Number   int
	Robber   bool
}

type BuildingView struct {
	Pos   axial.Axial
	Point axial.Point
	Owner board.PlayerID
	Build board.BuildType
}

type RoadView struct {
	Coords board.PathCoords
	From   axial.Point
	To     axial.Point
	Owner  board.PlayerID
}

type HarborView struct {
	Coords   board.PathCoords
	Resource resource.Resource
	Ratio    int
}

// BuildView snapshots g. Slices are ordered by position so two views of the
// same state are equal apart from Timestamp.
func BuildView(g *Game) *View {
	v := &View{
		GameID:      g.id,
		Phase:       g.phase.String(),
		Active:      g.phase.Player(),
		LastRoll:    g.lastRoll,
		Robber:      g.board.Robber(),
		Bank:        g.bank,
		DeckSize:    len(g.deck),
		LongestRoad: g.longestRoad,
		LargestArmy: g.largestArmy,
		Timestamp:   time.Now(),
	}
	for _, p := range g.players {
		points, _ := g.Points(p.ID)
		v.Players = append(v.Players, PlayerView{
			ID:               p.ID,
			Points:           points,
			Resources:        p.Resources,
			DevelopmentCards: p.CardCount(),
			Knights:          p.Knights,
			RoadLength:       g.board.LongestRoad(p.ID),
		})
	}
	for _, h := range g.board.Hexes() {
		v.Hexes = append(v.Hexes, HexView{
			Pos:      h.Pos,
			Center:   axial.ToRenderSpace(h.Pos),
			Resource: h.Resource,
			Number:   h.Number,
			Robber:   h.Pos == v.Robber,
		})
	}
	for _, vx := range g.board.Vertices() {
		if !vx.Owned() {
			continue
		}
		v.Buildings = append(v.Buildings, BuildingView{
			Pos:   vx.Pos,
			Point: axial.ToRenderSpace(vx.Pos),
			Owner: vx.Owner,
			Build: vx.Build,
		})
	}
	for _, e := range g.board.Edges() {
		if !e.Owned() {
			continue
		}
		v.Roads = append(v.Roads, RoadView{
			Coords: e.Coords,
			From:   axial.ToRenderSpace(e.Coords.A),
			To:     axial.ToRenderSpace(e.Coords.B),
			Owner:  e.Owner,
		})
	}
	for coords, h := range g.board.Harbors() {
		v.Harbors = append(v.Harbors, HarborView{Coords: coords, Resource: h.Resource, Ratio: h.Ratio})
	}
	slices.SortFunc(v.Harbors, func(x, y HarborView) int { return x.Coords.Compare(y.Coords) })
	return v
}

// Checksum returns the hex SHA-256 of the view's canonical text form.
// Timestamp is left out, so equal states hash equal.
func (v *View) Checksum() string {
	sum := sha256.Sum256([]byte(v.canonical()))
	return hex.EncodeToString(sum[:])
}

func (v *View) canonical() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "GAME:%s|%s|%d|%s|%s|%d|%d|%d\n",
		v.GameID, v.Phase, v.LastRoll, v.Robber, v.Bank, v.DeckSize, v.LongestRoad, v.LargestArmy)
	for _, p := range v.Players {
		fmt.Fprintf(&buf, "PLAYER:%d|%d|%s|%d|%d\n", p.ID, p.Points, p.Resources, p.DevelopmentCards, p.Knights)
	}
	for _, h := range v.Hexes {
		fmt.Fprintf(&buf, "HEX:%s|%s|%d\n", h.Pos, h.Resource, h.Number)
	}
	for _, b := range v.Buildings {
		fmt.Fprintf(&buf, "BUILD:%s|%d|%s\n", b.Pos, b.Owner, b.Build)
	}
	for _, r := range v.Roads {
		fmt.Fprintf(&buf, "ROAD:%s|%d\n", r.Coords, r.Owner)
	}
	for _, h := range v.Harbors {
		fmt.Fprintf(&buf, "HARBOR:%s|%s|%d\n", h.Coords, h.Resource, h.Ratio)
	}
	return buf.String()
}
