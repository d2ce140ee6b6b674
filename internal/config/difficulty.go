package config

import (
	"math"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

// DifficultyManager derives generation settings for the next board from the
// score reached so far.
type DifficultyManager struct {
	cfg  DifficultyConfig
	base core.GenerationSettings
}

// NewDifficultyManager creates a new difficulty manager around base settings.
func NewDifficultyManager(cfg DifficultyConfig, base core.GenerationSettings) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: base}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "score" {
		return 0
	}
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	return clampF(float64(score)/maxAt, 0.0, 1.0)
}

// Settings returns the generation settings for a board dealt at score.
func (d *DifficultyManager) Settings(score int) core.GenerationSettings {
	level := d.Level(score)
	s := d.base

	colors := s.Colors
	if colors == 0 {
		colors = core.DefaultColors
	}
	colors += int(math.Round(level * float64(d.cfg.Scaling.ExtraColors)))
	s.Colors = min(colors, core.MaxColors)

	s.ObstacleRatio = clampF(s.ObstacleRatio+level*d.cfg.Scaling.ObstacleRatio, 0.0, 0.5)
	return s
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
