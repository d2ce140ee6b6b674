// Package levels reads level files: generation settings and constraints for
// a board, or a hand-made layout.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/games/match3/levels/formats"
)

// ErrLevelNotFound is returned by LoadByID for an unknown ID.
var ErrLevelNotFound = errors.New("level not found")

// Level is one level file.
type Level struct {
	ID          string
	Name        string
	Settings    core.GenerationSettings
	Constraints core.Constraints
	Layout      *core.Board // Hand-made board, nil when the level is generated
	Metadata    map[string]string
	FilePath    string
}

// Board returns the level's board: a copy of the layout when the level has
// one, a freshly generated board otherwise.
func (l *Level) Board(e *core.Engine) core.GenerationResult {
	if l.Layout != nil {
		return core.GenerationResult{Board: l.Layout.Clone()}
	}
	return e.Generate(l.Settings, l.Constraints)
}

// Loader reads the level files below Root.
type Loader struct {
	Root string

	// Invalid maps the files the last scan could not parse to their error.
	Invalid map[string]error
}

// NewLoader creates a loader for a level directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll walks Root and parses every level file, sorted by ID.
// Files that fail to parse are skipped and listed in Invalid. Two files
// declaring the same ID are an error.
func (l *Loader) LoadAll() ([]Level, error) {
	l.Invalid = make(map[string]error)
	byID := make(map[string]Level)

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			l.Invalid[path] = err
			return nil
		}
		if prev, dup := byID[lvl.ID]; dup {
			return fmt.Errorf("duplicate level id %q in %s and %s", lvl.ID, prev.FilePath, path)
		}
		byID[lvl.ID] = lvl
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	levels := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		levels = append(levels, lvl)
	}
	slices.SortFunc(levels, func(a, b Level) int { return strings.Compare(a.ID, b.ID) })
	return levels, nil
}

// LoadFile parses a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Settings:    parsed.Settings,
		Constraints: parsed.Constraints,
		Layout:      parsed.Layout,
		Metadata:    parsed.Metadata,
		FilePath:    path,
	}, nil
}

// LoadByID finds a level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	i, found := slices.BinarySearchFunc(levels, id, func(lvl Level, id string) int {
		return strings.Compare(lvl.ID, id)
	})
	if !found {
		return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
	}
	return levels[i], nil
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

// parseByExtension routes to the parser of a file extension.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
