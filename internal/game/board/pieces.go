package board

import (
	"fmt"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
)

// PlayerID identifies a player for the lifetime of a game.
type PlayerID int

// Unowned marks a vertex or edge nobody has built on.
const Unowned PlayerID = -1

// Hex is a placed tile. Tiles never change after the board is built.
type Hex struct {
	Pos      axial.Axial
	Resource resource.Resource
	Number   int
}

// BuildType is what stands on a vertex.
type BuildType int

const (
	BuildNone BuildType = iota
	BuildSettlement
	BuildCity
)

var buildTypeNames = map[BuildType]string{
	BuildNone:       "NONE",
	BuildSettlement: "SETTLEMENT",
	BuildCity:       "CITY",
}

func (b BuildType) String() string {
	if name, ok := buildTypeNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BUILD_%d", int(b))
}

// YieldMultiplier is how many units a building collects from each producing
// adjacent tile.
func (b BuildType) YieldMultiplier() int {
	switch b {
	case BuildSettlement:
		return 1
	case BuildCity:
		return 2
	default:
		return 0
	}
}

// VictoryPoints is the score a building is worth.
func (b BuildType) VictoryPoints() int {
	switch b {
	case BuildSettlement:
		return 1
	case BuildCity:
		return 2
	default:
		return 0
	}
}

// Vertex is a tile corner.
type Vertex struct {
	Pos   axial.Axial
	Build BuildType
	Owner PlayerID
}

// Owned reports whether anyone has built on v.
func (v *Vertex) Owned() bool {
	return v.Owner != Unowned
}

// OwnedBy reports whether p has built on v.
func (v *Vertex) OwnedBy(p PlayerID) bool {
	return v.Owner != Unowned && v.Owner == p
}

// PathType is what runs along an edge.
type PathType int

const (
	PathNone PathType = iota
	PathRoad
)

func (p PathType) String() string {
	switch p {
	case PathNone:
		return "NONE"
	case PathRoad:
		return "ROAD"
	default:
		return fmt.Sprintf("PATH_%d", int(p))
	}
}

// PathCoords identifies an edge by its two endpoints, smaller first.
// Always construct through NewPathCoords so equal edges compare equal.
type PathCoords struct {
	A axial.Axial
	B axial.Axial
}

// NewPathCoords returns the canonical key for the edge between a and b.
func NewPathCoords(a, b axial.Axial) PathCoords {
	if b.Less(a) {
		a, b = b, a
	}
	return PathCoords{A: a, B: b}
}

// Contains reports whether c is an endpoint.
func (pc PathCoords) Contains(c axial.Axial) bool {
	return pc.A == c || pc.B == c
}

// Endpoints returns both endpoints, smaller first.
func (pc PathCoords) Endpoints() [2]axial.Axial {
	return [2]axial.Axial{pc.A, pc.B}
}

// Compare orders edges by their first then second endpoint.
func (pc PathCoords) Compare(other PathCoords) int {
	if c := pc.A.Compare(other.A); c != 0 {
		return c
	}
	return pc.B.Compare(other.B)
}

func (pc PathCoords) String() string {
	return pc.A.String() + "-" + pc.B.String()
}

// Edge is a tile side between two corners.
type Edge struct {
	Coords PathCoords
	Path   PathType
	Owner  PlayerID
}

// Owned reports whether anyone has built on e.
func (e *Edge) Owned() bool {
	return e.Owner != Unowned
}

// OwnedBy reports whether p has built on e.
func (e *Edge) OwnedBy(p PlayerID) bool {
	return e.Owner != Unowned && e.Owner == p
}

// Trade ratios. A harbor trades at MinHarborRatio or better, and always
// better than BankRatio.
const (
	MinHarborRatio = 2
	BankRatio      = 4
)

// Harbor is a trade-ratio modifier on a coastal edge. Resource None means a
// generic harbor.
type Harbor struct {
	Resource resource.Resource
	Ratio    int
}

func (h Harbor) String() string {
	if h.Resource == resource.None {
		return fmt.Sprintf("%d:1", h.Ratio)
	}
	return fmt.Sprintf("%d:1 %s", h.Ratio, h.Resource)
}
