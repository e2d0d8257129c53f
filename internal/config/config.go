// Package config loads server settings from a YAML file, SETTLERS_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hexharbor/settlers-server-go/internal/game"
	"github.com/hexharbor/settlers-server-go/internal/game/axial"
	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SETTLERS_GAME_PLAYERS.
const EnvPrefix = "SETTLERS"

type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig holds the rule parameters and, optionally, a custom map. An
// empty Tiles list means the default tiles; an empty Harbors list means the
// default harbors.
type GameConfig struct {
	Players       int                       `mapstructure:"players"`
	HandLimit     int                       `mapstructure:"hand_limit"`
	VictoryPoints int                       `mapstructure:"victory_points"`
	BankStart     int                       `mapstructure:"bank_start"`
	Seed          int64                     `mapstructure:"seed"`
	Costs         map[string]map[string]int `mapstructure:"costs"`
	Tiles         []TileConfig              `mapstructure:"tiles"`
	Harbors       []HarborConfig            `mapstructure:"harbors"`
}

type TileConfig struct {
	Pos      string `mapstructure:"pos"`
	Resource string `mapstructure:"resource"`
	Number   int    `mapstructure:"number"`
}

// HarborConfig places a harbor on the side between corners A and B. An
// empty or "any" resource makes it generic.
type HarborConfig struct {
	A        string `mapstructure:"a"`
	B        string `mapstructure:"b"`
	Resource string `mapstructure:"resource"`
	Ratio    int    `mapstructure:"ratio"`
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":      "logging.level",
	"log-format":     "logging.format",
	"players":        "game.players",
	"seed":           "game.seed",
	"victory-points": "game.victory_points",
}

func setDefaults(v *viper.Viper) {
	defaults := game.DefaultSettings()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("game.players", defaults.Players)
	v.SetDefault("game.hand_limit", defaults.HandLimit)
	v.SetDefault("game.victory_points", defaults.VictoryPoints)
	v.SetDefault("game.bank_start", defaults.BankStart)
	v.SetDefault("game.seed", 0)
}

// Load reads the configuration. A missing file is not an error: defaults,
// environment and flags still apply. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Settings converts the game section into game settings.
func (c GameConfig) Settings() (game.Settings, error) {
	costs, err := resource.ParseCostTable(c.Costs)
	if err != nil {
		return game.Settings{}, fmt.Errorf("costs: %w", err)
	}
	return game.Settings{
		Players:       c.Players,
		HandLimit:     c.HandLimit,
		VictoryPoints: c.VictoryPoints,
		BankStart:     c.BankStart,
		Costs:         costs,
		Seed:          c.Seed,
	}, nil
}

// Layout converts the configured map into a board layout. Configured
// harbors replace the default ones even when the default tiles are kept.
func (c GameConfig) Layout() (board.Layout, error) {
	harbors, err := c.harbors()
	if err != nil {
		return board.Layout{}, err
	}
	if len(c.Tiles) == 0 {
		layout := board.DefaultLayout()
		if len(harbors) > 0 {
			layout.Harbors = harbors
		}
		return layout, nil
	}
	layout := board.Layout{Harbors: harbors}
	for i, t := range c.Tiles {
		pos, err := axial.Parse(t.Pos)
		if err != nil {
			return board.Layout{}, fmt.Errorf("tile %d: %w", i, err)
		}
		kind, err := resource.Parse(t.Resource)
		if err != nil {
			return board.Layout{}, fmt.Errorf("tile %d: %w", i, err)
		}
		layout.Tiles = append(layout.Tiles, board.Tile{Pos: pos, Resource: kind, Number: t.Number})
	}
	return layout, nil
}

func (c GameConfig) harbors() ([]board.HarborSpec, error) {
	var out []board.HarborSpec
	for i, h := range c.Harbors {
		a, err := axial.Parse(h.A)
		if err != nil {
			return nil, fmt.Errorf("harbor %d: %w", i, err)
		}
		b, err := axial.Parse(h.B)
		if err != nil {
			return nil, fmt.Errorf("harbor %d: %w", i, err)
		}
		kind := resource.None
		if name := strings.ToLower(strings.TrimSpace(h.Resource)); name != "" && name != "any" {
			if kind, err = resource.Parse(name); err != nil {
				return nil, fmt.Errorf("harbor %d: %w", i, err)
			}
		}
		out = append(out, board.HarborSpec{
			A:      a,
			B:      b,
			Harbor: board.Harbor{Resource: kind, Ratio: h.Ratio},
		})
	}
	return out, nil
}

// Board builds the configured board.
func (c GameConfig) Board() (*board.Board, error) {
	layout, err := c.Layout()
	if err != nil {
		return nil, err
	}
	return board.New(layout)
}
