package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedBoard is returned by ParseBoard for unusable layouts.
var ErrMalformedBoard = errors.New("malformed board layout")

// FormatBoard creates an ASCII representation of a board.
// This is used for storage, debugging and tests (golden layouts).
//
// Format, one line per row:
//   - empty='.', obstacle='#'
//   - colors R/G/B/Y/P/O
//   - specials: row-clear='-', column-clear='|', bomb='*', rainbow='@'
func FormatBoard(b *Board) string {
	var sb strings.Builder
	sb.Grow(b.W*b.H + b.H)
	for y := 0; y < b.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.W; x++ {
			sb.WriteRune(b.Get(C(x, y)).Char())
		}
	}
	return sb.String()
}

// ParseBoard parses a layout produced by FormatBoard.
// Blank lines and surrounding whitespace are ignored. The palette size is
// colors when positive, otherwise inferred from the highest color present.
func ParseBoard(layout string, colors int) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedBoard)
	}

	w := len([]rune(rows[0]))
	b := NewBoard(w, len(rows), MinColors)
	highest := 0
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, y, len(runes), w)
		}
		for x, r := range runes {
			k, ok := KindFromChar(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown tile %q at %v", ErrMalformedBoard, r, C(x, y))
			}
			if k.IsNormal() && k.ColorIndex()+1 > highest {
				highest = k.ColorIndex() + 1
			}
			b.Set(C(x, y), k)
		}
	}

	if colors <= 0 {
		colors = highest
	}
	b.Colors = clampColors(colors)
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures; it panics on malformed input.
func MustParseBoard(layout string) *Board {
	b, err := ParseBoard(layout, 0)
	if err != nil {
		panic(err)
	}
	return b
}
