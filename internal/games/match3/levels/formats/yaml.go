// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Size          YAMLSize          `yaml:"size"`
	Colors        int               `yaml:"colors,omitempty"`
	ObstacleRatio float64           `yaml:"obstacle_ratio,omitempty"`
	SpecialRatio  float64           `yaml:"special_ratio,omitempty"`
	Pattern       string            `yaml:"pattern,omitempty"`
	Symmetry      string            `yaml:"symmetry,omitempty"`
	Obstacles     []YAMLCell        `yaml:"obstacles,omitempty"`
	Specials      []YAMLCell        `yaml:"specials,omitempty"`
	Fixed         []YAMLCell        `yaml:"fixed,omitempty"`
	Layout        string            `yaml:"layout,omitempty"` // ASCII board, overrides generation
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLCell represents a single constrained cell in YAML format.
type YAMLCell struct {
	X int    `yaml:"x"`
	Y int    `yaml:"y"`
	K string `yaml:"k,omitempty"` // Kind as string
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Name        string
	Settings    core.GenerationSettings
	Constraints core.Constraints
	Layout      *core.Board
	Metadata    map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	settings := core.DefaultSettings()
	if yl.Size.W > 0 {
		settings.Width = yl.Size.W
	}
	if yl.Size.H > 0 {
		settings.Height = yl.Size.H
	}
	if yl.Colors > 0 {
		settings.Colors = yl.Colors
	}
	settings.ObstacleRatio = yl.ObstacleRatio
	settings.SpecialRatio = yl.SpecialRatio

	var ok bool
	if settings.Pattern, ok = core.ParsePattern(yl.Pattern); !ok {
		return Level{}, fmt.Errorf("unknown pattern %q", yl.Pattern)
	}
	if settings.Symmetry, ok = core.ParseSymmetry(yl.Symmetry); !ok {
		return Level{}, fmt.Errorf("unknown symmetry %q", yl.Symmetry)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Settings: settings,
		Metadata: yl.Metadata,
	}

	for _, c := range yl.Obstacles {
		level.Constraints.Obstacles = append(level.Constraints.Obstacles, core.C(c.X, c.Y))
	}
	for _, c := range yl.Specials {
		kind, ok := core.ParseKind(c.K)
		if !ok || !kind.IsSpecial() {
			continue // Skip invalid kinds
		}
		level.Constraints.Specials = append(level.Constraints.Specials, core.Placement{Pos: core.C(c.X, c.Y), Kind: kind})
	}
	for _, c := range yl.Fixed {
		kind, ok := core.ParseKind(c.K)
		if !ok || !kind.IsNormal() {
			continue
		}
		level.Constraints.Fixed = append(level.Constraints.Fixed, core.Placement{Pos: core.C(c.X, c.Y), Kind: kind})
	}

	if yl.Layout != "" {
		b, err := core.ParseBoard(yl.Layout, yl.Colors)
		if err != nil {
			return Level{}, fmt.Errorf("layout: %w", err)
		}
		level.Layout = b
		level.Settings.Width, level.Settings.Height, level.Settings.Colors = b.W, b.H, b.Colors
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
