// Package match3 registers the built-in board profiles.
package match3

import (
	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/registry"
)

// DefaultProfile is dealt when no profile is named.
const DefaultProfile = "classic"

func init() {
	registry.Register("classic", func() registry.Profile {
		return registry.Profile{Title: "Classic 8x8", Settings: core.DefaultSettings()}
	})
	registry.Register("mini", func() registry.Profile {
		s := core.DefaultSettings()
		s.Width, s.Height, s.Colors = 6, 6, 4
		return registry.Profile{Title: "Mini 6x6", Settings: s}
	})
	registry.Register("obstacles", func() registry.Profile {
		s := core.DefaultSettings()
		s.ObstacleRatio = 0.1
		return registry.Profile{Title: "Scattered obstacles", Settings: s}
	})
	registry.Register("specials", func() registry.Profile {
		s := core.DefaultSettings()
		s.SpecialRatio = 0.05
		return registry.Profile{Title: "Pre-seeded specials", Settings: s}
	})
	registry.Register("fortress", func() registry.Profile {
		return NewFortress()
	})

	for _, p := range core.Patterns() {
		pattern := p
		registry.Register(string(pattern), func() registry.Profile {
			s := core.DefaultSettings()
			s.Pattern = pattern
			return registry.Profile{Title: "Pattern: " + string(pattern), Settings: s}
		})
	}

	registry.Register("mirror", func() registry.Profile {
		s := core.DefaultSettings()
		s.Symmetry = core.SymmetryVertical
		return registry.Profile{Title: "Mirrored halves", Settings: s}
	})
	registry.Register("kaleidoscope", func() registry.Profile {
		s := core.DefaultSettings()
		s.Pattern = core.PatternDiamond
		s.Symmetry = core.SymmetryRotational
		return registry.Profile{Title: "Kaleidoscope", Settings: s}
	})
}

// NewFortress returns a 9x9 profile walled at the four corners with a bomb
// in the middle.
func NewFortress() registry.Profile {
	s := core.DefaultSettings()
	s.Width, s.Height = 9, 9

	var walls []core.Coord
	for _, corner := range []core.Coord{core.C(0, 0), core.C(7, 0), core.C(0, 7), core.C(7, 7)} {
		walls = append(walls, corner, corner.Add(1, 0), corner.Add(0, 1), corner.Add(1, 1))
	}

	return registry.Profile{
		Title:    "Fortress",
		Settings: s,
		Constraints: core.Constraints{
			Obstacles: walls,
			Specials:  []core.Placement{{Pos: core.C(4, 4), Kind: core.KindBomb}},
		},
	}
}
