package tui

import (
	"fmt"
	"strings"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

// Marks are the cells drawn with a highlight.
type Marks struct {
	Cursor   *core.Coord
	Selected *core.Coord
	Hint     []core.Coord
}

// RenderBoard converts a board to a styled string, one row per line and
// three columns per cell.
func RenderBoard(b *core.Board, theme Theme, marks Marks) string {
	hinted := make(map[core.Coord]bool, len(marks.Hint))
	for _, c := range marks.Hint {
		hinted[c] = true
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(b.W*b.H*12 + b.H)

	for y := 0; y < b.H; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < b.W; x++ {
			c := core.C(x, y)
			style := theme.TileStyle(b.Get(c))
			switch {
			case marks.Selected != nil && *marks.Selected == c:
				style = style.Inherit(theme.Selected)
			case marks.Cursor != nil && *marks.Cursor == c:
				style = style.Inherit(theme.Cursor)
			case hinted[c]:
				style = style.Inherit(theme.Hint)
			}
			sb.WriteString(style.Render(" " + string(b.Get(c).Char()) + " "))
		}
	}
	return sb.String()
}

// RenderPlain renders a board without styles, with a coordinate ruler.
func RenderPlain(b *core.Board) string {
	var sb strings.Builder
	sb.WriteString("  ")
	for x := 0; x < b.W; x++ {
		fmt.Fprintf(&sb, " %d", x%10)
	}
	for y := 0; y < b.H; y++ {
		fmt.Fprintf(&sb, "\n%2d", y)
		for x := 0; x < b.W; x++ {
			sb.WriteString(" ")
			sb.WriteRune(b.Get(core.C(x, y)).Char())
		}
	}
	return sb.String()
}
