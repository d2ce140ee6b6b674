// Package tables runs independent play sessions ("tables") over the rules
// engine. Every table owns one engine and one board behind its own mutex, so
// callers on different goroutines never share engine state.
package tables

import (
	"errors"
	"time"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

// TableID uniquely identifies a table.
type TableID string

// Short returns the first eight characters of the ID, for logs and status lines.
func (id TableID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// EndReason describes why a table was closed.
type EndReason int

const (
	EndClosed      EndReason = iota // Closed by the player
	EndMoveLimit                    // Move limit reached
	EndTargetScore                  // Target score reached
	EndIdle                         // Expired by the cleanup loop
)

// String returns a human-readable end reason.
func (r EndReason) String() string {
	switch r {
	case EndClosed:
		return "closed"
	case EndMoveLimit:
		return "move_limit"
	case EndTargetScore:
		return "target_score"
	case EndIdle:
		return "idle"
	default:
		return "unknown"
	}
}

var (
	// ErrTableClosed is returned for operations on a closed table.
	ErrTableClosed = errors.New("table is closed")
	// ErrUnknownTable is returned when a table ID is not registered.
	ErrUnknownTable = errors.New("unknown table")
)

// Scaler derives the generation settings of the next board from the score.
// config.DifficultyManager implements it.
type Scaler interface {
	Settings(score int) core.GenerationSettings
}

// ResultSaver is an interface for saving table results.
// This allows the manager to save results without depending on the storage package.
type ResultSaver interface {
	SaveTableResult(result ResultData) error
}

// ResultData contains table result data for persistence.
type ResultData struct {
	TableID       string
	Profile       string
	Seed          int64
	Score         int
	Moves         int
	Cascades      int
	Shuffles      int
	Regenerations int
	EndReason     string
	DurationSecs  int
}

// Stats is a snapshot of a table's counters.
type Stats struct {
	Score         int
	Moves         int
	Cascades      int
	Shuffles      int
	Regenerations int
	StartedAt     time.Time
	Closed        bool
}

// Config holds limits shared by all tables of a manager.
type Config struct {
	MoveLimit     int           // Moves before a table closes, 0 for unlimited
	TargetScore   int           // Score that closes a table, 0 for unlimited
	IdleTimeout   time.Duration // How long before an untouched table expires
	CleanupPeriod time.Duration // How often to look for idle tables
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:   30 * time.Minute,
		CleanupPeriod: time.Minute,
	}
}
