package experiments

import (
	"context"
	"time"

	"creatures/eval"
	"creatures/experiments/metrics"
)

// BudgetSweep pairs tier at each budget against the same tier at baseline.
// Colours alternate so neither side always moves first.
func BudgetSweep(tier eval.Tier, baseline time.Duration, budgets []time.Duration, games int) []metrics.MatchUp {
	matchUps := []metrics.MatchUp{}
	for i, budget := range budgets {
		m := metrics.MatchUp{
			ID:          i + 1,
			Black:       int(tier),
			White:       int(tier),
			BlackBudget: budget,
			WhiteBudget: baseline,
			Games:       games,
		}
		if i%2 == 1 {
			m.BlackBudget, m.WhiteBudget = baseline, budget
		}
		matchUps = append(matchUps, m)
	}
	return matchUps
}

// RunBudgetExperiment measures how playing strength and search depth scale
// with the time budget of a single tier.
func RunBudgetExperiment(ctx context.Context, cfg Config, tier eval.Tier) (Report, error) {
	budgets := []time.Duration{TimeBudget / 4, TimeBudget / 2, TimeBudget, 2 * TimeBudget, 4 * TimeBudget}
	return RunTournament(ctx, "budget_"+tier.String(), cfg, BudgetSweep(tier, TimeBudget, budgets, NumGames))
}
