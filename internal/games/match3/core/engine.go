package core

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Engine ties the rules to one set of parameters, one random source and one
// hint cooldown. An Engine is not safe for concurrent use: give every table
// its own instance.
type Engine struct {
	params Params
	rng    Rand
	logger *log.Logger
	now    func() time.Time
	hints  *HintSelector
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source. The default is seeded from the clock.
func WithRand(rng Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds a fresh random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = NewRand(seed) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the clock used by the hint cooldown.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine. Zero-valued parameters take their defaults.
func NewEngine(p Params, opts ...Option) *Engine {
	e := &Engine{params: p.normalized()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(0)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.hints = NewHintSelector(e.params.HintCooldown, e.params.HintTopFraction, e.now)
	return e
}

// Params returns the effective parameters.
func (e *Engine) Params() Params { return e.params }

// Generate builds a new board and resets the hint cooldown.
func (e *Engine) Generate(s GenerationSettings, cons Constraints) GenerationResult {
	res := Generate(s, cons, e.rng)
	if res.Fallback {
		e.logger.Warn("generation fell back to safe board", "attempts", res.Attempts, "error", res.LastError)
	} else {
		e.logger.Debug("board generated", "w", res.Board.W, "h", res.Board.H, "attempts", res.Attempts)
	}
	e.hints.Reset()
	return res
}

// Validate checks a board against generation settings.
func (e *Engine) Validate(b *Board, s GenerationSettings) error {
	return ValidateBoard(b, s.normalized())
}

// FindMoves enumerates the legal swaps of a board.
func (e *Engine) FindMoves(b *Board) []Move {
	return FindMoves(b, e.params.Scoring)
}

// Analyze computes the board diagnostic.
func (e *Engine) Analyze(b *Board) BoardAnalysis {
	return AnalyzeBoard(b, e.params.Scoring)
}

// Hint returns a suggested move, or false inside the cooldown or when the
// board has no legal move.
func (e *Engine) Hint(b *Board) (Move, bool) {
	return e.hints.Hint(b, e.params.Scoring, e.rng)
}

// HintReady reports whether a hint may be requested.
func (e *Engine) HintReady() bool {
	return e.hints.Ready()
}

// Activate fires the special tile at cell and folds in chain reactions.
// Target optionally selects the color of a rainbow.
func (e *Engine) Activate(b *Board, cell Coord, target *Coord) (ActivationResult, error) {
	first, err := Activate(b, ActivationRequest{Cell: cell, Target: target, Power: e.params.Power}, e.params.Scoring)
	if err != nil {
		return ActivationResult{}, err
	}
	return Propagate(b, first, e.params.MaxChainDepth, e.params.Power, e.params.Scoring), nil
}

// Preview returns the cells the special at cell would affect, without chains.
func (e *Engine) Preview(b *Board, cell Coord) ([]Coord, error) {
	return Preview(b, cell, e.params.Power)
}

// Combine computes the effect of two adjacent specials and folds in chain
// reactions.
func (e *Engine) Combine(b *Board, a, c Coord) (ActivationResult, error) {
	first, err := Combine(b, a, c, e.rng)
	if err != nil {
		return ActivationResult{}, err
	}
	return Propagate(b, first, e.params.MaxChainDepth, e.params.Power, e.params.Scoring), nil
}

// Repair shuffles or patches a deadlocked board.
func (e *Engine) Repair(b *Board) ShuffleResult {
	res := Repair(b, e.params.ShuffleAttempts, e.rng)
	e.logger.Debug("repair", "success", res.Success, "method", res.Method, "attempts", res.Attempts)
	return res
}

// Shuffle permutes the board on request, whether or not it is deadlocked.
func (e *Engine) Shuffle(b *Board) ShuffleResult {
	res := Shuffle(b, e.params.ShuffleAttempts, e.rng)
	e.logger.Debug("shuffle", "success", res.Success, "method", res.Method, "attempts", res.Attempts)
	return res
}

// Trigger fires the special tile at cell as a move of its own: the affected
// cells are cleared, then gravity, refill, cascades and deadlock repair run
// as for a swap. The input board is never modified.
func (e *Engine) Trigger(b *Board, cell Coord, target *Coord) (SwapResult, error) {
	res, err := e.resolveTrigger(b, cell, target)
	if err != nil {
		e.logger.Debug("trigger rejected", "cell", cell, "error", err)
	}
	return res, err
}

// Swap resolves a player swap: combinations, matches, cascades, gravity,
// refill and post-move deadlock repair. The input board is never modified;
// the resolved board is SwapResult.Board.
func (e *Engine) Swap(b *Board, from, to Coord) (SwapResult, error) {
	res, err := e.resolveSwap(b, from, to)
	if err != nil {
		e.logger.Debug("swap rejected", "from", from, "to", to, "error", err)
	}
	return res, err
}
