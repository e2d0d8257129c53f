package game

import (
	"fmt"

	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
)

const (
	MinPlayers = 2
	MaxPlayers = 6

	// LongestRoadMinimum is the trail length needed to claim longest road.
	LongestRoadMinimum = 5
	// LargestArmyMinimum is the knight count needed to claim largest army.
	LargestArmyMinimum = 3
	// AwardPoints is what each of longest road and largest army is worth.
	AwardPoints = 2
	// BankTradeRatio is the trade rate without a harbor.
	BankTradeRatio = board.BankRatio
)

// Settings are the rule parameters of one game.
type Settings struct {
	Players       int
	HandLimit     int
	VictoryPoints int
	BankStart     int
	Costs         resource.CostTable
	// Seed drives robber steals and the development deck shuffle. Zero
	// picks a random seed.
	Seed int64
}

// DefaultSettings returns the standard four-player rules.
func DefaultSettings() Settings {
	return Settings{
		Players:       4,
		HandLimit:     7,
		VictoryPoints: 10,
		BankStart:     19,
		Costs:         resource.DefaultCosts(),
	}
}

func (s Settings) validate() error {
	if s.Players < MinPlayers || s.Players > MaxPlayers {
		return fmt.Errorf("%w: players must be between %d and %d, got %d", ErrInvalidSettings, MinPlayers, MaxPlayers, s.Players)
	}
	if s.HandLimit < 0 {
		return fmt.Errorf("%w: negative hand limit %d", ErrInvalidSettings, s.HandLimit)
	}
	if s.VictoryPoints <= 0 {
		return fmt.Errorf("%w: victory points must be positive, got %d", ErrInvalidSettings, s.VictoryPoints)
	}
	if s.BankStart < 0 {
		return fmt.Errorf("%w: negative bank start %d", ErrInvalidSettings, s.BankStart)
	}
	return nil
}
