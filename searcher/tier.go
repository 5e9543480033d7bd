package searcher

import (
	"time"

	"creatures/eval"
)

// SearchThreshold is the weakest tier that runs the alpha-beta search;
// weaker tiers rank moves at a single ply.
const SearchThreshold = eval.Medium

// TierConfig is everything a tier controls.
type TierConfig struct {
	Tier            eval.Tier
	MaxDepth        int
	TimeBudget      time.Duration
	Search          bool // iterative deepening instead of single-ply ranking
	DefensiveFilter bool // single-ply only: skip moves that hand the opponent a win
	Weights         eval.Weights
}

var (
	maxDepths = map[eval.Tier]int{
		eval.Beginner: 1,
		eval.Easy:     1,
		eval.Medium:   3,
		eval.Hard:     5,
		eval.Expert:   7,
	}
	budgets = map[eval.Tier]time.Duration{
		eval.Beginner: 150 * time.Millisecond,
		eval.Easy:     250 * time.Millisecond,
		eval.Medium:   600 * time.Millisecond,
		eval.Hard:     1500 * time.Millisecond,
		eval.Expert:   3000 * time.Millisecond,
	}
)

// DefaultTierConfig returns the standard settings for t. It panics on an
// unknown tier.
func DefaultTierConfig(t eval.Tier) TierConfig {
	if !t.Valid() {
		panic("unknown tier")
	}
	return TierConfig{
		Tier:            t,
		MaxDepth:        maxDepths[t],
		TimeBudget:      budgets[t],
		Search:          t >= SearchThreshold,
		DefensiveFilter: t == eval.Easy,
		Weights:         eval.DefaultWeights(t),
	}
}
