package tables

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/registry"
)

// OpenOptions describes a new table.
type OpenOptions struct {
	Profile registry.Profile
	Seed    int64       // 0 picks a seed from the clock
	Scaler  Scaler      // Optional, scales settings with the score
	Board   *core.Board // Optional first board, e.g. a hand-made level
}

// Manager owns the open tables.
type Manager struct {
	config      Config
	params      core.Params
	logger      *log.Logger
	resultSaver ResultSaver // Optional, can be nil
	now         func() time.Time

	mu     sync.RWMutex
	tables map[TableID]*Table

	done     chan struct{}
	stopOnce sync.Once
}

// NewManager creates a new manager. A nil logger discards output.
func NewManager(cfg Config, params core.Params, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		config: cfg,
		params: params,
		logger: logger,
		now:    time.Now,
		tables: make(map[TableID]*Table),
		done:   make(chan struct{}),
	}
}

// SetResultSaver sets the optional table result saver.
func (m *Manager) SetResultSaver(saver ResultSaver) {
	m.resultSaver = saver
}

// SetClock replaces the clock used for durations, idle checks and hints.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Start begins the manager's background cleanup.
func (m *Manager) Start() {
	go m.cleanupLoop()
}

// Stop shuts down the background cleanup.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

// Open deals a new table.
func (m *Manager) Open(opts OpenOptions) *Table {
	if opts.Seed == 0 {
		opts.Seed = m.now().UnixNano()
	}
	if opts.Profile.ID == "" {
		opts.Profile.ID = "custom"
	}

	id := TableID(uuid.NewString())
	t := newTable(id, opts, m.params, m.config, m.logger, m.now)
	t.onEnd = m.handleTableEnded

	m.mu.Lock()
	m.tables[id] = t
	m.mu.Unlock()

	m.logger.Debug("table opened", "table", id.Short(), "profile", opts.Profile.ID, "seed", opts.Seed)
	return t
}

// Get returns an open table.
func (m *Manager) Get(id TableID) (*Table, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[id]
	return t, ok
}

// Close ends an open table and returns its result.
func (m *Manager) Close(id TableID) (ResultData, error) {
	t, ok := m.Get(id)
	if !ok {
		return ResultData{}, fmt.Errorf("%w: %s", ErrUnknownTable, id)
	}
	return t.Close()
}

// Count returns the number of open tables.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}

func (m *Manager) handleTableEnded(result ResultData) {
	m.mu.Lock()
	delete(m.tables, TableID(result.TableID))
	m.mu.Unlock()

	m.logger.Info("table closed",
		"table", TableID(result.TableID).Short(),
		"reason", result.EndReason,
		"score", result.Score,
		"moves", result.Moves,
	)

	if m.resultSaver != nil {
		// Best effort save, the table is gone either way
		if err := m.resultSaver.SaveTableResult(result); err != nil {
			m.logger.Error("failed to save table result", "error", err)
		}
	}
}

func (m *Manager) cleanupLoop() {
	period := m.config.CleanupPeriod
	if period <= 0 {
		period = DefaultConfig().CleanupPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupIdleTables()
		case <-m.done:
			return
		}
	}
}

// cleanupIdleTables closes tables untouched for longer than IdleTimeout.
func (m *Manager) cleanupIdleTables() int {
	if m.config.IdleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.config.IdleTimeout)

	m.mu.RLock()
	var idle []*Table
	for _, t := range m.tables {
		if t.idleSince(cutoff) {
			idle = append(idle, t)
		}
	}
	m.mu.RUnlock()

	closed := 0
	for _, t := range idle {
		if _, err := t.end(EndIdle); err == nil {
			closed++
		}
	}
	return closed
}
