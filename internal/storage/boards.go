package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

// BoardRecord is a dealt board as stored.
type BoardRecord struct {
	ID        string
	Profile   string
	Seed      int64
	Width     int
	Height    int
	Colors    int
	Layout    string // FormatBoard output
	Fallback  bool
	Attempts  int
	CreatedAt time.Time
}

// NewBoardRecord builds a record from a generation result.
func NewBoardRecord(profile string, seed int64, res core.GenerationResult) BoardRecord {
	return BoardRecord{
		Profile:  profile,
		Seed:     seed,
		Width:    res.Board.W,
		Height:   res.Board.H,
		Colors:   res.Board.Colors,
		Layout:   core.FormatBoard(res.Board),
		Fallback: res.Fallback,
		Attempts: res.Attempts,
	}
}

// Board decodes the stored layout.
func (r BoardRecord) Board() (*core.Board, error) {
	b, err := core.ParseBoard(r.Layout, r.Colors)
	if err != nil {
		return nil, fmt.Errorf("storage: board %s: %w", r.ID, err)
	}
	return b, nil
}

// AnalysisRecord is a stored board analysis.
type AnalysisRecord struct {
	BoardID         string
	TotalMoves      int
	AverageScore    float64
	SpecialMoves    int
	BestScore       int
	Difficulty      int
	Solvability     int
	Recommendations []string
	CreatedAt       time.Time
}

// SaveBoard records a dealt board. A record without an ID gets a fresh UUID.
// Returns the ID of the stored board.
func (s *Store) SaveBoard(rec BoardRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO boards (id, profile, seed, width, height, colors, layout, fallback, attempts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Profile, rec.Seed, rec.Width, rec.Height, rec.Colors, rec.Layout, rec.Fallback, rec.Attempts,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save board: %w", err)
	}
	return rec.ID, nil
}

// BoardByID retrieves a board by its ID. Returns nil if it does not exist.
func (s *Store) BoardByID(id string) (*BoardRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, profile, seed, width, height, colors, layout, fallback, attempts, created_at
		 FROM boards
		 WHERE id = ?`,
		id,
	)
	rec, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query board: %w", err)
	}
	return &rec, nil
}

// BoardByPrefix retrieves the board whose ID starts with prefix, so short
// IDs from listings can be used. Returns nil if none matches and an error
// if the prefix is ambiguous.
func (s *Store) BoardByPrefix(prefix string) (*BoardRecord, error) {
	if rec, err := s.BoardByID(prefix); rec != nil || err != nil {
		return rec, err
	}

	pattern := strings.NewReplacer("%", `\%`, "_", `\_`).Replace(prefix) + "%"
	rows, err := s.db.Query(
		`SELECT id, profile, seed, width, height, colors, layout, fallback, attempts, created_at
		 FROM boards
		 WHERE id LIKE ? ESCAPE '\'
		 LIMIT 2`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query board: %w", err)
	}
	defer rows.Close()

	var found []BoardRecord
	for rows.Next() {
		rec, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("storage: board prefix %q is ambiguous", prefix)
	}
}

// RecentBoards retrieves the most recently dealt boards, optionally limited
// to one profile.
func (s *Store) RecentBoards(profile string, limit int) ([]BoardRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, profile, seed, width, height, colors, layout, fallback, attempts, created_at
		 FROM boards
		 WHERE ? = '' OR profile = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		profile, profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query boards: %w", err)
	}
	defer rows.Close()

	var records []BoardRecord
	for rows.Next() {
		rec, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBoard(row scanner) (BoardRecord, error) {
	var rec BoardRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.Profile,
		&rec.Seed,
		&rec.Width,
		&rec.Height,
		&rec.Colors,
		&rec.Layout,
		&rec.Fallback,
		&rec.Attempts,
		&createdAt,
	)
	rec.CreatedAt = parseTime(createdAt)
	return rec, err
}

// SaveAnalysis records the analysis of a stored board, replacing any
// previous one.
func (s *Store) SaveAnalysis(boardID string, a core.BoardAnalysis) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO analyses
		 (board_id, total_moves, average_score, special_moves, best_score, difficulty, solvability, recommendations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		boardID,
		a.TotalMoves,
		a.AverageScore,
		a.SpecialMoves,
		a.BestScore,
		a.Difficulty,
		a.Solvability,
		strings.Join(a.Recommendations, "\n"),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save analysis: %w", err)
	}
	return nil
}

// AnalysisFor retrieves the analysis of a board. Returns nil if none exists.
func (s *Store) AnalysisFor(boardID string) (*AnalysisRecord, error) {
	var rec AnalysisRecord
	var recs string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT board_id, total_moves, average_score, special_moves, best_score,
		        difficulty, solvability, recommendations, created_at
		 FROM analyses
		 WHERE board_id = ?`,
		boardID,
	).Scan(
		&rec.BoardID,
		&rec.TotalMoves,
		&rec.AverageScore,
		&rec.SpecialMoves,
		&rec.BestScore,
		&rec.Difficulty,
		&rec.Solvability,
		&recs,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query analysis: %w", err)
	}

	if recs != "" {
		rec.Recommendations = strings.Split(recs, "\n")
	}
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// DifficultyStats aggregates the analyses of the boards dealt for a profile.
type DifficultyStats struct {
	Profile         string
	Boards          int
	Fallbacks       int
	AvgDifficulty   float64
	AvgSolvability  float64
	AvgMoves        float64
	DeadlockedCount int
}

// GetDifficultyStats retrieves difficulty telemetry for one profile.
func (s *Store) GetDifficultyStats(profile string) (*DifficultyStats, error) {
	stats := &DifficultyStats{Profile: profile}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(b.fallback), 0),
		        COALESCE(AVG(a.difficulty), 0),
		        COALESCE(AVG(a.solvability), 0),
		        COALESCE(AVG(a.total_moves), 0),
		        COALESCE(SUM(CASE WHEN a.total_moves = 0 THEN 1 ELSE 0 END), 0)
		 FROM boards b
		 LEFT JOIN analyses a ON a.board_id = b.id
		 WHERE b.profile = ?`,
		profile,
	).Scan(
		&stats.Boards,
		&stats.Fallbacks,
		&stats.AvgDifficulty,
		&stats.AvgSolvability,
		&stats.AvgMoves,
		&stats.DeadlockedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get difficulty stats: %w", err)
	}
	return stats, nil
}
