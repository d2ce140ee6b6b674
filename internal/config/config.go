// Package config provides YAML-based engine configuration loading and
// difficulty management for candysoda.
package config

import (
	"fmt"
	"time"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

// EngineConfig contains all configuration for the match-3 engine.
type EngineConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Specials   SpecialsConfig   `yaml:"specials"`
	Hints      HintConfig       `yaml:"hints"`
	Repair     RepairConfig     `yaml:"repair"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines board generation parameters.
type BoardConfig struct {
	Width                 int     `yaml:"width"`
	Height                int     `yaml:"height"`
	Colors                int     `yaml:"colors"`
	ObstacleRatio         float64 `yaml:"obstacle_ratio"`
	SpecialRatio          float64 `yaml:"special_ratio"`
	PreventInitialMatches bool    `yaml:"prevent_initial_matches"`
	EnsureSolvability     bool    `yaml:"ensure_solvability"`
	MinColorShare         float64 `yaml:"min_color_share"`
	MaxAttempts           int     `yaml:"max_attempts"`
	ColorRetries          int     `yaml:"color_retries"`
	Pattern               string  `yaml:"pattern"`  // "", checkerboard, spiral, diamond, cross
	Symmetry              string  `yaml:"symmetry"` // "", horizontal, vertical, rotational
}

// ScoringConfig defines the scoring constants.
type ScoringConfig struct {
	MatchTile      int `yaml:"match_tile"`
	FourBonus      int `yaml:"four_bonus"`
	FiveBonus      int `yaml:"five_bonus"`
	ChainPotential int `yaml:"chain_potential"`
	LineWeight     int `yaml:"line_weight"`
	BombWeight     int `yaml:"bomb_weight"`
	RainbowWeight  int `yaml:"rainbow_weight"`
}

// SpecialsConfig defines special tile activation parameters.
type SpecialsConfig struct {
	Power         int `yaml:"power"`
	MaxChainDepth int `yaml:"max_chain_depth"` // Negative disables chain reactions
	MaxCascades   int `yaml:"max_cascades"`
}

// HintConfig defines hint selection parameters.
type HintConfig struct {
	Cooldown    time.Duration `yaml:"cooldown"`     // e.g. "3s"
	TopFraction float64       `yaml:"top_fraction"` // Share of best moves a hint is drawn from
}

// RepairConfig defines deadlock repair parameters.
type RepairConfig struct {
	ShuffleAttempts int `yaml:"shuffle_attempts"`
}

// DifficultyConfig defines how boards get harder as a player scores.
type DifficultyConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraColors   int     `yaml:"extra_colors"`   // Colors added at max difficulty
	ObstacleRatio float64 `yaml:"obstacle_ratio"` // Obstacle ratio added at max difficulty
}

// Validate checks names and ranges that the engine would otherwise clamp
// silently.
func (c EngineConfig) Validate() error {
	if _, ok := core.ParsePattern(c.Board.Pattern); !ok {
		return fmt.Errorf("unknown pattern %q", c.Board.Pattern)
	}
	if _, ok := core.ParseSymmetry(c.Board.Symmetry); !ok {
		return fmt.Errorf("unknown symmetry %q", c.Board.Symmetry)
	}
	if c.Board.Colors != 0 && (c.Board.Colors < core.MinColors || c.Board.Colors > core.MaxColors) {
		return fmt.Errorf("colors must be between %d and %d, got %d", core.MinColors, core.MaxColors, c.Board.Colors)
	}
	if c.Board.ObstacleRatio < 0 || c.Board.ObstacleRatio > 1 {
		return fmt.Errorf("obstacle_ratio must be in [0,1], got %v", c.Board.ObstacleRatio)
	}
	if c.Board.SpecialRatio < 0 || c.Board.SpecialRatio > 1 {
		return fmt.Errorf("special_ratio must be in [0,1], got %v", c.Board.SpecialRatio)
	}
	if c.Hints.TopFraction < 0 || c.Hints.TopFraction > 1 {
		return fmt.Errorf("hints.top_fraction must be in [0,1], got %v", c.Hints.TopFraction)
	}
	return nil
}

// Params converts the configuration to engine parameters.
func (c EngineConfig) Params() core.Params {
	return core.Params{
		Scoring: core.ScoringParams{
			MatchTile:      c.Scoring.MatchTile,
			FourBonus:      c.Scoring.FourBonus,
			FiveBonus:      c.Scoring.FiveBonus,
			ChainPotential: c.Scoring.ChainPotential,
			LineWeight:     c.Scoring.LineWeight,
			BombWeight:     c.Scoring.BombWeight,
			RainbowWeight:  c.Scoring.RainbowWeight,
		},
		Power:           c.Specials.Power,
		MaxChainDepth:   c.Specials.MaxChainDepth,
		MaxCascades:     c.Specials.MaxCascades,
		ShuffleAttempts: c.Repair.ShuffleAttempts,
		HintCooldown:    c.Hints.Cooldown,
		HintTopFraction: c.Hints.TopFraction,
	}
}

// Settings converts the board section to generation settings.
// Unknown pattern or symmetry names fall back to none; call Validate first.
func (c EngineConfig) Settings() core.GenerationSettings {
	pattern, _ := core.ParsePattern(c.Board.Pattern)
	symmetry, _ := core.ParseSymmetry(c.Board.Symmetry)
	return core.GenerationSettings{
		Width:                 c.Board.Width,
		Height:                c.Board.Height,
		Colors:                c.Board.Colors,
		ObstacleRatio:         c.Board.ObstacleRatio,
		SpecialRatio:          c.Board.SpecialRatio,
		PreventInitialMatches: c.Board.PreventInitialMatches,
		EnsureSolvability:     c.Board.EnsureSolvability,
		MinColorShare:         c.Board.MinColorShare,
		MaxAttempts:           c.Board.MaxAttempts,
		ColorRetries:          c.Board.ColorRetries,
		Pattern:               pattern,
		Symmetry:              symmetry,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a name to a preset. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}
