package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Board: BoardConfig{
			Width:                 8,
			Height:                8,
			Colors:                5,
			ObstacleRatio:         0.0,
			SpecialRatio:          0.0,
			PreventInitialMatches: true,
			EnsureSolvability:     true,
			MinColorShare:         0.10,
			MaxAttempts:           20,
			ColorRetries:          10,
		},
		Scoring: ScoringConfig{
			MatchTile:      10,
			FourBonus:      50,
			FiveBonus:      100,
			ChainPotential: 20,
			LineWeight:     50,
			BombWeight:     75,
			RainbowWeight:  100,
		},
		Specials: SpecialsConfig{
			Power:         1,
			MaxChainDepth: 5,
			MaxCascades:   20,
		},
		Hints: HintConfig{
			Cooldown:    3 * time.Second,
			TopFraction: 0.3,
		},
		Repair: RepairConfig{
			ShuffleAttempts: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				ExtraColors:   1,
				ObstacleRatio: 0.08,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultEngineYAML
}
