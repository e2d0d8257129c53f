package board

import "errors"

// Placement and robber errors. Every rejected mutation wraps at least one of
// these; match with errors.Is.
var (
	ErrNoSuchVertex     = errors.New("no such vertex")
	ErrNoSuchEdge       = errors.New("no such edge")
	ErrNoSuchHex        = errors.New("no such hex")
	ErrAlreadyOwned     = errors.New("already owned")
	ErrNeighborOccupied = errors.New("neighboring vertex occupied")
	ErrNotOwnedByPlayer = errors.New("not owned by player")
	ErrWrongBuildType   = errors.New("wrong build type")
	ErrDisconnected     = errors.New("not connected to player's roads")
	ErrRobberUnmoved    = errors.New("robber must move to a different hex")
	ErrInvalidLayout    = errors.New("invalid tile layout")
)
