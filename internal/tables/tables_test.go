package tables

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/registry"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingSaver struct {
	mu      sync.Mutex
	results []ResultData
}

func (s *recordingSaver) SaveTableResult(r ResultData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *recordingSaver) all() []ResultData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ResultData(nil), s.results...)
}

type fixedScaler struct{ s core.GenerationSettings }

func (f fixedScaler) Settings(int) core.GenerationSettings { return f.s }

func testProfile() registry.Profile {
	return registry.Profile{ID: "test", Title: "Test", Settings: core.DefaultSettings()}
}

func newTestManager(cfg Config) (*Manager, *fakeClock, *recordingSaver) {
	clock := newFakeClock()
	saver := &recordingSaver{}
	m := NewManager(cfg, core.DefaultParams(), nil)
	m.SetClock(clock.Now)
	m.SetResultSaver(saver)
	return m, clock, saver
}

// playFirstMove swaps the first legal move of the table's board.
func playFirstMove(t *testing.T, tbl *Table) core.SwapResult {
	t.Helper()
	moves := tbl.Moves()
	if len(moves) == 0 {
		t.Fatalf("board has no legal move:\n%s", core.FormatBoard(tbl.Board()))
	}
	res, err := tbl.Swap(moves[0].From, moves[0].To)
	if err != nil {
		t.Fatalf("Swap(%v, %v) failed: %v", moves[0].From, moves[0].To, err)
	}
	return res
}

func TestOpenDealsPlayableBoard(t *testing.T) {
	m, _, _ := newTestManager(DefaultConfig())
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 42})

	if m.Count() != 1 {
		t.Errorf("expected 1 open table, got %d", m.Count())
	}
	if got, ok := m.Get(tbl.ID()); !ok || got != tbl {
		t.Error("Get did not return the opened table")
	}
	if tbl.Profile() != "test" || tbl.Seed() != 42 {
		t.Errorf("unexpected profile/seed: %s/%d", tbl.Profile(), tbl.Seed())
	}
	b := tbl.Board()
	if b.W != core.DefaultWidth || b.H != core.DefaultHeight {
		t.Errorf("expected default size, got %dx%d", b.W, b.H)
	}
	if core.DetectDeadlock(b) != core.StateStable {
		t.Error("dealt board is deadlocked")
	}
}

func TestOpenIsDeterministicPerSeed(t *testing.T) {
	m, _, _ := newTestManager(DefaultConfig())
	a := m.Open(OpenOptions{Profile: testProfile(), Seed: 7})
	b := m.Open(OpenOptions{Profile: testProfile(), Seed: 7})

	if a.ID() == b.ID() {
		t.Fatal("tables share an ID")
	}
	if !a.Board().Equal(b.Board()) {
		t.Error("same seed dealt different boards")
	}
}

func TestSwapUpdatesStats(t *testing.T) {
	m, _, _ := newTestManager(DefaultConfig())
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 3})

	res := playFirstMove(t, tbl)
	st := tbl.Stats()
	if st.Moves != 1 {
		t.Errorf("expected 1 move, got %d", st.Moves)
	}
	if st.Score != res.Score || st.Score <= 0 {
		t.Errorf("expected score %d > 0, got %d", res.Score, st.Score)
	}
	if st.Cascades != res.Cascades {
		t.Errorf("expected %d cascades, got %d", res.Cascades, st.Cascades)
	}
	if !tbl.Board().Equal(res.Board) {
		t.Error("table board does not match the resolved board")
	}
}

func TestRejectedSwapKeepsState(t *testing.T) {
	m, _, _ := newTestManager(DefaultConfig())
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 3})
	before := tbl.Board()

	_, err := tbl.Swap(core.C(0, 0), core.C(2, 0))
	if !errors.Is(err, core.ErrNotAdjacent) {
		t.Errorf("expected ErrNotAdjacent, got %v", err)
	}
	if tbl.Stats().Moves != 0 {
		t.Error("rejected swap counted as a move")
	}
	if !tbl.Board().Equal(before) {
		t.Error("rejected swap changed the board")
	}
}

func TestMoveLimitClosesTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MoveLimit = 2
	m, clock, saver := newTestManager(cfg)
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 5})

	playFirstMove(t, tbl)
	clock.Advance(90 * time.Second)
	playFirstMove(t, tbl)

	if !tbl.Stats().Closed || tbl.EndReason() != EndMoveLimit {
		t.Fatalf("expected table closed by move limit, got closed=%v reason=%s", tbl.Stats().Closed, tbl.EndReason())
	}
	if m.Count() != 0 {
		t.Errorf("closed table still registered")
	}

	results := saver.all()
	if len(results) != 1 {
		t.Fatalf("expected 1 saved result, got %d", len(results))
	}
	r := results[0]
	if r.TableID != string(tbl.ID()) || r.Profile != "test" || r.Seed != 5 {
		t.Errorf("unexpected result identity: %+v", r)
	}
	if r.Moves != 2 || r.EndReason != "move_limit" || r.DurationSecs != 90 {
		t.Errorf("unexpected result counters: %+v", r)
	}

	if _, err := tbl.Swap(core.C(0, 0), core.C(1, 0)); !errors.Is(err, ErrTableClosed) {
		t.Errorf("expected ErrTableClosed, got %v", err)
	}
	if _, err := tbl.Shuffle(); !errors.Is(err, ErrTableClosed) {
		t.Errorf("expected ErrTableClosed from Shuffle, got %v", err)
	}
}

func TestTargetScoreClosesTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetScore = 1
	m, _, saver := newTestManager(cfg)
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 8})

	playFirstMove(t, tbl)
	if tbl.EndReason() != EndTargetScore {
		t.Errorf("expected target score end, got %s", tbl.EndReason())
	}
	if len(saver.all()) != 1 {
		t.Error("expected the result to be saved")
	}
}

func TestCloseTable(t *testing.T) {
	m, _, saver := newTestManager(DefaultConfig())
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 9})

	res, err := m.Close(tbl.ID())
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if res.EndReason != "closed" {
		t.Errorf("expected closed reason, got %s", res.EndReason)
	}
	if _, err := tbl.Close(); !errors.Is(err, ErrTableClosed) {
		t.Errorf("second close: expected ErrTableClosed, got %v", err)
	}
	if _, err := m.Close(tbl.ID()); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}
	if len(saver.all()) != 1 {
		t.Errorf("expected exactly one saved result, got %d", len(saver.all()))
	}
}

func TestCleanupClosesIdleTables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleTimeout = 10 * time.Minute
	m, clock, saver := newTestManager(cfg)
	idle := m.Open(OpenOptions{Profile: testProfile(), Seed: 1})

	clock.Advance(6 * time.Minute)
	busy := m.Open(OpenOptions{Profile: testProfile(), Seed: 2})
	clock.Advance(6 * time.Minute)

	if n := m.cleanupIdleTables(); n != 1 {
		t.Fatalf("expected 1 idle table closed, got %d", n)
	}
	if idle.EndReason() != EndIdle || !idle.Stats().Closed {
		t.Error("idle table not closed")
	}
	if _, ok := m.Get(busy.ID()); !ok {
		t.Error("busy table was closed")
	}
	if r := saver.all(); len(r) != 1 || r[0].EndReason != "idle" {
		t.Errorf("unexpected saved results: %+v", r)
	}
}

func TestHintCooldownPerTable(t *testing.T) {
	m, clock, _ := newTestManager(DefaultConfig())
	a := m.Open(OpenOptions{Profile: testProfile(), Seed: 1})
	b := m.Open(OpenOptions{Profile: testProfile(), Seed: 2})

	if _, ok := a.Hint(); !ok {
		t.Fatal("expected a first hint")
	}
	if _, ok := a.Hint(); ok {
		t.Error("expected the cooldown to block a second hint")
	}
	if !b.HintReady() {
		t.Error("cooldown leaked to another table")
	}

	clock.Advance(core.DefaultParams().HintCooldown)
	if _, ok := a.Hint(); !ok {
		t.Error("expected a hint after the cooldown")
	}
}

func TestShuffleAndRedeal(t *testing.T) {
	m, _, _ := newTestManager(DefaultConfig())
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 12})

	res, err := tbl.Shuffle()
	if err != nil {
		t.Fatalf("Shuffle failed: %v", err)
	}
	if res.Success && !tbl.Board().Equal(res.Board) {
		t.Error("successful shuffle not applied")
	}

	deal, err := tbl.Redeal()
	if err != nil {
		t.Fatalf("Redeal failed: %v", err)
	}
	if !tbl.Board().Equal(deal.Board) {
		t.Error("redeal not applied")
	}
	st := tbl.Stats()
	if st.Shuffles != 1 || st.Regenerations != 1 {
		t.Errorf("expected 1 shuffle and 1 regeneration, got %d/%d", st.Shuffles, st.Regenerations)
	}
}

func TestRepairCountsOnlyShuffles(t *testing.T) {
	tests := []struct {
		name          string
		method        core.RepairMethod
		success       bool
		shuffles      int
		regenerations int
	}{
		{"shuffle", core.RepairShuffle, true, 1, 0},
		{"shuffle with refill", core.RepairShuffleRefill, true, 1, 0},
		{"replacement", core.RepairReplacement, true, 0, 0},
		{"failed replacement", core.RepairReplacement, false, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestManager(DefaultConfig())
			tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 9})

			tbl.mu.Lock()
			board := tbl.board.Clone()
			tbl.applyLocked(core.SwapResult{
				Board:  board,
				Repair: &core.ShuffleResult{Success: tt.success, Method: tt.method, Board: board},
			})
			tbl.mu.Unlock()

			st := tbl.Stats()
			if st.Shuffles != tt.shuffles {
				t.Errorf("shuffles: expected %d, got %d", tt.shuffles, st.Shuffles)
			}
			if st.Regenerations != tt.regenerations {
				t.Errorf("regenerations: expected %d, got %d", tt.regenerations, st.Regenerations)
			}
		})
	}
}

func TestScalerDrivesDeal(t *testing.T) {
	m, _, _ := newTestManager(DefaultConfig())
	s := core.DefaultSettings()
	s.Width, s.Height, s.Colors = 5, 6, 4
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 4, Scaler: fixedScaler{s}})

	b := tbl.Board()
	if b.W != 5 || b.H != 6 || b.Colors != 4 {
		t.Errorf("expected 5x6 with 4 colors, got %dx%d with %d", b.W, b.H, b.Colors)
	}
}

func TestConcurrentTables(t *testing.T) {
	m, _, _ := newTestManager(DefaultConfig())

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: seed})
			for j := 0; j < 5; j++ {
				moves := tbl.Moves()
				if len(moves) == 0 {
					return
				}
				_, _ = tbl.Swap(moves[0].From, moves[0].To)
			}
			_, _ = tbl.Close()
		}(int64(i))
	}
	wg.Wait()

	if m.Count() != 0 {
		t.Errorf("expected all tables closed, got %d open", m.Count())
	}
}

func TestEndReasonString(t *testing.T) {
	tests := []struct {
		r    EndReason
		want string
	}{
		{EndClosed, "closed"},
		{EndMoveLimit, "move_limit"},
		{EndTargetScore, "target_score"},
		{EndIdle, "idle"},
		{EndReason(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestOpenWithFixedBoard(t *testing.T) {
	m, _, _ := newTestManager(DefaultConfig())
	layout := core.SafeBoard(5, 5, 3)
	tbl := m.Open(OpenOptions{Profile: testProfile(), Seed: 1, Board: layout})

	if !tbl.Board().Equal(layout) {
		t.Error("table did not start from the given board")
	}
	if tbl.LastDeal().Attempts != 0 {
		t.Error("a fixed board should not count generation attempts")
	}
}
