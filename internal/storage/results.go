package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lausiv7/candysoda-sub005/internal/tables"
)

// TableResult is the stored outcome of a closed table.
type TableResult struct {
	ID            int64
	TableID       string
	Profile       string
	Seed          int64
	Score         int
	Moves         int
	Cascades      int
	Shuffles      int
	Regenerations int
	EndReason     string // "closed", "move_limit", "target_score", "idle"
	Duration      int    // Duration in seconds
	CreatedAt     time.Time
}

const tableResultColumns = `id, table_id, profile, seed, score, moves, cascades,
		        shuffles, regenerations, end_reason, duration_secs, created_at`

// SaveTableResult implements tables.ResultSaver.
// The final score is also recorded on the profile's scoreboard.
func (s *Store) SaveTableResult(data tables.ResultData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO table_results
		 (table_id, profile, seed, score, moves, cascades, shuffles, regenerations, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.TableID,
		data.Profile,
		data.Seed,
		data.Score,
		data.Moves,
		data.Cascades,
		data.Shuffles,
		data.Regenerations,
		data.EndReason,
		data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save table result: %w", err)
	}

	if data.Moves > 0 {
		if _, err := tx.Exec("INSERT INTO scores (profile, score) VALUES (?, ?)", data.Profile, data.Score); err != nil {
			return fmt.Errorf("storage: cannot save score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit table result: %w", err)
	}
	return nil
}

// Ensure Store implements ResultSaver
var _ tables.ResultSaver = (*Store)(nil)

// TableResultByID retrieves a table result by its table ID.
// Returns nil if it does not exist.
func (s *Store) TableResultByID(tableID string) (*TableResult, error) {
	row := s.db.QueryRow(
		`SELECT `+tableResultColumns+`
		 FROM table_results
		 WHERE table_id = ?`,
		tableID,
	)
	result, err := scanTableResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query table result: %w", err)
	}
	return &result, nil
}

// RecentTableResults retrieves the most recent table results.
func (s *Store) RecentTableResults(limit int) ([]TableResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+tableResultColumns+`
		 FROM table_results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query table results: %w", err)
	}
	defer rows.Close()

	var results []TableResult
	for rows.Next() {
		result, err := scanTableResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

func scanTableResult(row scanner) (TableResult, error) {
	var result TableResult
	var createdAt any
	err := row.Scan(
		&result.ID,
		&result.TableID,
		&result.Profile,
		&result.Seed,
		&result.Score,
		&result.Moves,
		&result.Cascades,
		&result.Shuffles,
		&result.Regenerations,
		&result.EndReason,
		&result.Duration,
		&createdAt,
	)
	result.CreatedAt = parseTime(createdAt)
	return result, err
}
