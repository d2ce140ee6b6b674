package core

import (
	"fmt"
	"sort"
)

// Analysis thresholds.
const (
	fewMovesThreshold  = 5
	manyMovesThreshold = 20
	lowAverageScore    = 40.0
	underrepresented   = 0.10
)

// BoardAnalysis is a read-only diagnostic of a board, for telemetry and
// difficulty tuning.
type BoardAnalysis struct {
	TotalMoves      int
	AverageScore    float64
	SpecialMoves    int // Moves that would create a special tile
	BestScore       int
	ColorCounts     map[Kind]int
	Difficulty      int // 0 (trivial) to 100 (hard)
	Solvability     int // 0 (stuck) to 100 (comfortable)
	Recommendations []string
}

// AnalyzeBoard computes the diagnostic for a board. It does not modify the
// board and does not use randomness, so repeated calls return equal values.
func AnalyzeBoard(b *Board, sc ScoringParams) BoardAnalysis {
	moves := FindMoves(b, sc)
	a := BoardAnalysis{
		TotalMoves:  len(moves),
		ColorCounts: b.ColorCounts(),
	}

	total := 0
	for _, m := range moves {
		total += m.Score
		if m.SpecialsCreated > 0 {
			a.SpecialMoves++
		}
		a.BestScore = max(a.BestScore, m.Score)
	}
	if len(moves) > 0 {
		a.AverageScore = float64(total) / float64(len(moves))
	}

	spread, weakest := colorSpread(b, a.ColorCounts)
	a.Difficulty = difficultyScore(a)
	a.Solvability = solvabilityScore(a.TotalMoves, spread)
	a.Recommendations = recommend(b, a, weakest)
	return a
}

// colorSpread returns the gap between the most and least common color as a
// share of the normal tiles, plus the colors below the underrepresented share.
func colorSpread(b *Board, counts map[Kind]int) (float64, []Kind) {
	normal := b.NormalCount()
	if normal == 0 || len(counts) == 0 {
		return 0, nil
	}

	lo, hi := normal, 0
	var weakest []Kind
	for k, n := range counts {
		lo = min(lo, n)
		hi = max(hi, n)
		if float64(n)/float64(normal) < underrepresented {
			weakest = append(weakest, k)
		}
	}
	sort.Slice(weakest, func(i, j int) bool { return weakest[i] < weakest[j] })
	return float64(hi-lo) / float64(normal), weakest
}

// difficultyScore starts at 50 and moves with the number and quality of moves.
func difficultyScore(a BoardAnalysis) int {
	d := 50
	switch {
	case a.TotalMoves == 0:
		return 100
	case a.TotalMoves < fewMovesThreshold:
		d += 30
	case a.TotalMoves > manyMovesThreshold:
		d -= 20
	}
	if a.AverageScore < lowAverageScore {
		d += 15
	}
	if a.SpecialMoves == 0 {
		d += 5
	} else {
		d -= min(a.SpecialMoves*2, 15)
	}
	return clampPercent(d)
}

// solvabilityScore penalizes boards close to deadlock and uneven palettes.
func solvabilityScore(moves int, spread float64) int {
	if moves == 0 {
		return 0
	}
	s := 100
	switch {
	case moves < 3:
		s -= 40
	case moves < fewMovesThreshold:
		s -= 20
	}
	s -= int(spread * 50)
	return clampPercent(s)
}

func clampPercent(v int) int {
	return max(0, min(100, v))
}

// recommend derives free-text advice from threshold checks.
func recommend(b *Board, a BoardAnalysis, weakest []Kind) []string {
	var out []string
	switch {
	case a.TotalMoves == 0:
		out = append(out, "board is deadlocked: shuffle or regenerate it")
	case a.TotalMoves < fewMovesThreshold:
		out = append(out, fmt.Sprintf("only %d legal moves: use fewer colors or obstacles", a.TotalMoves))
	case a.TotalMoves > manyMovesThreshold:
		out = append(out, fmt.Sprintf("%d legal moves: add a color or obstacles for a harder board", a.TotalMoves))
	}
	if a.TotalMoves > 0 && a.AverageScore < lowAverageScore {
		out = append(out, fmt.Sprintf("average move score %.1f is low: seed larger match opportunities", a.AverageScore))
	}
	if a.TotalMoves > 0 && a.SpecialMoves == 0 {
		out = append(out, "no move creates a special tile")
	}
	for _, k := range weakest {
		out = append(out, fmt.Sprintf("color %s is underrepresented (%d of %d tiles)", k, a.ColorCounts[k], b.NormalCount()))
	}
	return out
}
