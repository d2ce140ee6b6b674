package core

import "time"

// ScoringParams holds the canonical scoring constants.
type ScoringParams struct {
	MatchTile      int // Points per matched tile
	FourBonus      int // Bonus per match of size >= 4
	FiveBonus      int // Additional bonus per match of size >= 5
	ChainPotential int // Points per unit of chain potential in move scoring

	LineWeight    int // Per affected cell, row/column clear activation
	BombWeight    int // Per affected cell, bomb activation
	RainbowWeight int // Per affected cell, rainbow activation
}

// Params configures an Engine. Use DefaultParams and override fields.
type Params struct {
	Scoring ScoringParams

	Power           int           // Activation power of special tiles
	MaxChainDepth   int           // Chain depth limit; negative disables chains but rainbow-converted tiles still fire
	MaxCascades     int           // Cascade steps per swap resolution
	ShuffleAttempts int           // Shuffle attempts before strategic replacement
	HintCooldown    time.Duration // Minimum time between two hints, negative disables
	HintTopFraction float64       // Fraction of best moves a hint is drawn from
}

// DefaultParams returns the canonical engine parameters.
func DefaultParams() Params {
	return Params{
		Scoring:         DefaultScoring(),
		Power:           1,
		MaxChainDepth:   5,
		MaxCascades:     20,
		ShuffleAttempts: 10,
		HintCooldown:    3 * time.Second,
		HintTopFraction: 0.3,
	}
}

// DefaultScoring returns the canonical scoring constants.
// Bomb and rainbow use the higher of the two historic weight sets.
func DefaultScoring() ScoringParams {
	return ScoringParams{
		MatchTile:      10,
		FourBonus:      50,
		FiveBonus:      100,
		ChainPotential: 20,
		LineWeight:     50,
		BombWeight:     75,
		RainbowWeight:  100,
	}
}

// normalized fills zero-valued fields with defaults.
func (p Params) normalized() Params {
	d := DefaultParams()
	if p.Scoring == (ScoringParams{}) {
		p.Scoring = d.Scoring
	}
	if p.Power <= 0 {
		p.Power = d.Power
	}
	switch {
	case p.MaxChainDepth == 0:
		p.MaxChainDepth = d.MaxChainDepth
	case p.MaxChainDepth < 0:
		p.MaxChainDepth = 0
	}
	if p.MaxCascades <= 0 {
		p.MaxCascades = d.MaxCascades
	}
	if p.ShuffleAttempts <= 0 {
		p.ShuffleAttempts = d.ShuffleAttempts
	}
	switch {
	case p.HintCooldown == 0:
		p.HintCooldown = d.HintCooldown
	case p.HintCooldown < 0:
		p.HintCooldown = 0
	}
	if p.HintTopFraction <= 0 || p.HintTopFraction > 1 {
		p.HintTopFraction = d.HintTopFraction
	}
	return p
}
