package tables

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/registry"
)

// Table is one play session: a board, the engine that owns its random
// source and hint cooldown, and the running score.
type Table struct {
	id      TableID
	profile registry.Profile
	seed    int64
	scaler  Scaler
	config  Config
	logger  *log.Logger
	now     func() time.Time
	onEnd   func(ResultData)

	mu         sync.Mutex
	engine     *core.Engine
	board      *core.Board
	stats      Stats
	reason     EndReason
	lastActive time.Time
	lastDeal   core.GenerationResult
}

func newTable(id TableID, opts OpenOptions, params core.Params, cfg Config, logger *log.Logger, now func() time.Time) *Table {
	t := &Table{
		id:      id,
		profile: opts.Profile,
		seed:    opts.Seed,
		scaler:  opts.Scaler,
		config:  cfg,
		logger:  logger.With("table", id.Short()),
		now:     now,
	}
	t.engine = core.NewEngine(params,
		core.WithSeed(opts.Seed),
		core.WithLogger(t.logger),
		core.WithClock(now),
	)
	t.stats.StartedAt = now()
	t.lastActive = t.stats.StartedAt
	if opts.Board != nil {
		t.lastDeal = core.GenerationResult{Board: opts.Board.Clone()}
		t.board = opts.Board.Clone()
	} else {
		t.dealLocked()
	}
	return t
}

// ID returns the table identifier.
func (t *Table) ID() TableID { return t.id }

// Profile returns the profile the table deals from.
func (t *Table) Profile() string { return t.profile.ID }

// Seed returns the seed of the table's random source.
func (t *Table) Seed() int64 { return t.seed }

// Board returns a copy of the current board.
func (t *Table) Board() *core.Board {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.board.Clone()
}

// LastDeal returns the result of the most recent board generation.
func (t *Table) LastDeal() core.GenerationResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := t.lastDeal
	res.Board = res.Board.Clone()
	return res
}

// Stats returns a snapshot of the table counters.
func (t *Table) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Swap plays a swap on the table's board.
func (t *Table) Swap(from, to core.Coord) (core.SwapResult, error) {
	return t.play(func(b *core.Board) (core.SwapResult, error) {
		return t.engine.Swap(b, from, to)
	})
}

// Trigger fires the special tile at cell as a move.
func (t *Table) Trigger(cell core.Coord, target *core.Coord) (core.SwapResult, error) {
	return t.play(func(b *core.Board) (core.SwapResult, error) {
		return t.engine.Trigger(b, cell, target)
	})
}

// play runs one move under the lock and reports the end of the table, if the
// move ended it, after the lock is released.
func (t *Table) play(move func(*core.Board) (core.SwapResult, error)) (core.SwapResult, error) {
	t.mu.Lock()
	if t.stats.Closed {
		t.mu.Unlock()
		return core.SwapResult{}, ErrTableClosed
	}

	res, err := move(t.board)
	var ended *ResultData
	if err == nil {
		ended = t.applyLocked(res)
	}
	t.mu.Unlock()

	t.notify(ended)
	return res, err
}

func (t *Table) applyLocked(res core.SwapResult) *ResultData {
	t.board = res.Board
	t.stats.Score += res.Score
	t.stats.Moves++
	t.stats.Cascades += res.Cascades
	t.lastActive = t.now()

	if res.Repair != nil {
		if m := res.Repair.Method; m == core.RepairShuffle || m == core.RepairShuffleRefill {
			t.stats.Shuffles++
		}
		if !res.Repair.Success {
			t.logger.Info("board regenerated after failed repair", "message", res.Repair.Message)
			t.stats.Regenerations++
			t.dealLocked()
		}
	}

	switch {
	case t.config.TargetScore > 0 && t.stats.Score >= t.config.TargetScore:
		return t.closeLocked(EndTargetScore)
	case t.config.MoveLimit > 0 && t.stats.Moves >= t.config.MoveLimit:
		return t.closeLocked(EndMoveLimit)
	}
	return nil
}

// Hint returns a suggested move, or false inside the hint cooldown.
func (t *Table) Hint() (core.Move, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stats.Closed {
		return core.Move{}, false
	}
	t.lastActive = t.now()
	return t.engine.Hint(t.board)
}

// HintReady reports whether the hint cooldown has elapsed.
func (t *Table) HintReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.HintReady()
}

// Preview returns the cells the special at cell would affect.
func (t *Table) Preview(cell core.Coord) ([]core.Coord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Preview(t.board, cell)
}

// Moves lists the legal swaps of the current board.
func (t *Table) Moves() []core.Move {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.FindMoves(t.board)
}

// Analyze computes the diagnostic of the current board.
func (t *Table) Analyze() core.BoardAnalysis {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Analyze(t.board)
}

// Shuffle permutes the board on request. A shuffle that finds no legal
// move leaves the board untouched.
func (t *Table) Shuffle() (core.ShuffleResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stats.Closed {
		return core.ShuffleResult{}, ErrTableClosed
	}

	res := t.engine.Shuffle(t.board)
	if res.Success {
		t.board = res.Board
	}
	t.stats.Shuffles++
	t.lastActive = t.now()
	return res, nil
}

// Redeal replaces the board with a freshly generated one. The score is kept.
func (t *Table) Redeal() (core.GenerationResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stats.Closed {
		return core.GenerationResult{}, ErrTableClosed
	}

	t.stats.Regenerations++
	t.lastActive = t.now()
	t.dealLocked()
	res := t.lastDeal
	res.Board = res.Board.Clone()
	return res, nil
}

// dealLocked generates a new board, scaled to the score when the table has
// a scaler.
func (t *Table) dealLocked() {
	settings := t.profile.Settings
	if t.scaler != nil {
		settings = t.scaler.Settings(t.stats.Score)
	}
	t.lastDeal = t.engine.Generate(settings, t.profile.Constraints)
	t.board = t.lastDeal.Board.Clone()
}

// Close ends the table and returns its result.
func (t *Table) Close() (ResultData, error) {
	return t.end(EndClosed)
}

// end closes the table for reason unless it is already closed.
func (t *Table) end(reason EndReason) (ResultData, error) {
	t.mu.Lock()
	if t.stats.Closed {
		t.mu.Unlock()
		return ResultData{}, ErrTableClosed
	}
	result := t.closeLocked(reason)
	t.mu.Unlock()

	t.notify(result)
	return *result, nil
}

// idleSince reports whether the table has been untouched since cutoff.
func (t *Table) idleSince(cutoff time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stats.Closed && t.lastActive.Before(cutoff)
}

func (t *Table) closeLocked(reason EndReason) *ResultData {
	t.stats.Closed = true
	t.reason = reason
	return &ResultData{
		TableID:       string(t.id),
		Profile:       t.profile.ID,
		Seed:          t.seed,
		Score:         t.stats.Score,
		Moves:         t.stats.Moves,
		Cascades:      t.stats.Cascades,
		Shuffles:      t.stats.Shuffles,
		Regenerations: t.stats.Regenerations,
		EndReason:     reason.String(),
		DurationSecs:  int(t.now().Sub(t.stats.StartedAt).Seconds()),
	}
}

// EndReason returns why the table closed. Only meaningful once closed.
func (t *Table) EndReason() EndReason {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason
}

func (t *Table) notify(result *ResultData) {
	if result != nil && t.onEnd != nil {
		t.onEnd(*result)
	}
}
