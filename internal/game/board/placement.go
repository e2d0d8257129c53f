package board

import (
	"fmt"
	"slices"

	"github.com/hexharbor/settlers-server-go/internal/game/axial"
)

// ValidateSettlement checks that p may found a settlement at pos: the corner
// exists, is unowned, and no corner sharing a side with it is owned. With
// ensureConnected, one of p's roads must also end at pos.
func (b *Board) ValidateSettlement(p PlayerID, pos axial.Axial, ensureConnected bool) error {
	v, ok := b.vertices[pos]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchVertex, pos)
	}
	if v.Owned() {
		return fmt.Errorf("%w: vertex %s belongs to player %d", ErrAlreadyOwned, pos, v.Owner)
	}
	for _, neighbor := range b.AdjacentVertices(pos) {
		if neighbor.Owned() {
			return fmt.Errorf("%w: %s next to %s", ErrNeighborOccupied, neighbor.Pos, pos)
		}
	}
	if ensureConnected && !b.hasRoadAt(p, pos) {
		return fmt.Errorf("%w: no road of player %d reaches %s", ErrDisconnected, p, pos)
	}
	return nil
}

// ValidateCity checks that p may upgrade the settlement at pos.
func (b *Board) ValidateCity(p PlayerID, pos axial.Axial) error {
	v, ok := b.vertices[pos]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchVertex, pos)
	}
	if !v.Owned() {
		// A bare corner is both unclaimed and settlement-less.
		return fmt.Errorf("%w: %w: vertex %s is empty", ErrWrongBuildType, ErrNotOwnedByPlayer, pos)
	}
	if !v.OwnedBy(p) {
		return fmt.Errorf("%w: vertex %s belongs to player %d", ErrNotOwnedByPlayer, pos, v.Owner)
	}
	if v.Build != BuildSettlement {
		return fmt.Errorf("%w: vertex %s holds %s", ErrWrongBuildType, pos, v.Build)
	}
	return nil
}

// ValidateRoad checks that p may build along coords. With ensureConnected,
// one endpoint must hold p's building or touch another of p's roads.
func (b *Board) ValidateRoad(p PlayerID, coords PathCoords, ensureConnected bool) error {
	coords = NewPathCoords(coords.A, coords.B)
	e, ok := b.edges[coords]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchEdge, coords)
	}
	if e.Owned() {
		return fmt.Errorf("%w: edge %s belongs to player %d", ErrAlreadyOwned, coords, e.Owner)
	}
	if ensureConnected && !b.roadConnects(p, coords) {
		return fmt.Errorf("%w: edge %s", ErrDisconnected, coords)
	}
	return nil
}

// ValidateBuild dispatches to the validator for buildType.
func (b *Board) ValidateBuild(buildType BuildType, p PlayerID, pos axial.Axial, ensureConnected bool) error {
	switch buildType {
	case BuildSettlement:
		return b.ValidateSettlement(p, pos, ensureConnected)
	case BuildCity:
		return b.ValidateCity(p, pos)
	default:
		return fmt.Errorf("%w: cannot build %s", ErrWrongBuildType, buildType)
	}
}

// PlaceBuilding validates and then writes buildType for p at pos. Nothing is
// written when validation fails.
func (b *Board) PlaceBuilding(p PlayerID, pos axial.Axial, buildType BuildType, ensureConnected bool) error {
	if err := b.ValidateBuild(buildType, p, pos, ensureConnected); err != nil {
		return err
	}
	v := b.vertices[pos]
	v.Build = buildType
	v.Owner = p
	return nil
}

// PlacePath validates and then writes pathType for p along coords.
func (b *Board) PlacePath(p PlayerID, coords PathCoords, pathType PathType, ensureConnected bool) error {
	if pathType != PathRoad {
		return fmt.Errorf("%w: cannot build %s", ErrWrongBuildType, pathType)
	}
	coords = NewPathCoords(coords.A, coords.B)
	if err := b.ValidateRoad(p, coords, ensureConnected); err != nil {
		return err
	}
	e := b.edges[coords]
	e.Path = pathType
	e.Owner = p
	return nil
}

// ValidBuildSpots lists, in position order, every corner where
// PlaceBuilding(p, pos, buildType, ensureConnected) would currently succeed.
func (b *Board) ValidBuildSpots(buildType BuildType, p PlayerID, ensureConnected bool) []axial.Axial {
	var out []axial.Axial
	for pos := range b.vertices {
		if b.ValidateBuild(buildType, p, pos, ensureConnected) == nil {
			out = append(out, pos)
		}
	}
	slices.SortFunc(out, axial.Axial.Compare)
	return out
}

// ValidPathSpots lists, in coordinate order, every side where p could build
// a road right now.
func (b *Board) ValidPathSpots(p PlayerID, ensureConnected bool) []PathCoords {
	var out []PathCoords
	for coords := range b.edges {
		if b.ValidateRoad(p, coords, ensureConnected) == nil {
			out = append(out, coords)
		}
	}
	slices.SortFunc(out, PathCoords.Compare)
	return out
}

func (b *Board) hasRoadAt(p PlayerID, pos axial.Axial) bool {
	for _, e := range b.IncidentEdges(pos) {
		if e.OwnedBy(p) {
			return true
		}
	}
	return false
}

func (b *Board) roadConnects(p PlayerID, coords PathCoords) bool {
	for _, end := range coords.Endpoints() {
		v, ok := b.vertices[end]
		if ok && v.OwnedBy(p) {
			return true
		}
		// An opponent's building cuts the corner.
		if ok && v.Owned() {
			continue
		}
		for _, e := range b.IncidentEdges(end) {
			if e.Coords != coords && e.OwnedBy(p) {
				return true
			}
		}
	}
	return false
}
