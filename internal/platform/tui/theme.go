package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

// Theme contains all configurable visual styles for the board.
type Theme struct {
	// Tile colors
	Red    lipgloss.Style
	Green  lipgloss.Style
	Blue   lipgloss.Style
	Yellow lipgloss.Style
	Purple lipgloss.Style
	Orange lipgloss.Style

	Special  lipgloss.Style
	Obstacle lipgloss.Style
	Empty    lipgloss.Style

	// Cell highlights
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style

	// HUD styles
	HUDTitle   lipgloss.Style
	HUDValue   lipgloss.Style
	HUDLabel   lipgloss.Style
	HUDWarning lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		Purple: lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		Orange: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),

		Special:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Obstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("236")),

		Cursor:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("57")),
		Hint:     lipgloss.NewStyle().Background(lipgloss.Color("22")),

		HUDTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}
}

// MonochromeTheme returns a grayscale theme where tiles are told apart by
// their letters only.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	plain := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	theme.Red = plain
	theme.Green = plain
	theme.Blue = plain
	theme.Yellow = plain
	theme.Purple = plain
	theme.Orange = plain
	return theme
}

// TileStyle returns the style of a tile kind.
func (t Theme) TileStyle(k core.Kind) lipgloss.Style {
	switch k {
	case core.KindRed:
		return t.Red
	case core.KindGreen:
		return t.Green
	case core.KindBlue:
		return t.Blue
	case core.KindYellow:
		return t.Yellow
	case core.KindPurple:
		return t.Purple
	case core.KindOrange:
		return t.Orange
	case core.KindObstacle:
		return t.Obstacle
	case core.KindEmpty:
		return t.Empty
	default:
		return t.Special
	}
}
