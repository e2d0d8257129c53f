package game

import "errors"

var (
	ErrNoSuchPlayer    = errors.New("no such player")
	ErrInvalidRoll     = errors.New("invalid dice roll")
	ErrInvalidDiscard  = errors.New("invalid discard")
	ErrInvalidVictim   = errors.New("invalid robber victim")
	ErrInvalidTrade    = errors.New("invalid trade")
	ErrNoCard          = errors.New("no playable development card")
	ErrEmptyDeck       = errors.New("development deck is empty")
	ErrInvalidSettings = errors.New("invalid game settings")
	ErrUnknownGame     = errors.New("unknown game")
)
