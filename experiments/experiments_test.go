package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"creatures/eval"
	"creatures/experiments/metrics"
	"creatures/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func quickConfig(t *testing.T) Config {
	return Config{
		Game:    game.Config{Radius: 2, WinningScore: 4, PiecesPerPlayer: 6},
		Workers: 2,
		Seed:    11,
		OutDir:  t.TempDir(),
	}
}

func TestRoundRobin(t *testing.T) {
	matchUps := RoundRobin([]eval.Tier{eval.Beginner, eval.Easy, eval.Medium}, time.Second, 4)

	require.Len(t, matchUps, 6)
	seen := map[[2]int]bool{}
	for i, m := range matchUps {
		require.Equal(t, i+1, m.ID)
		require.NotEqual(t, m.Black, m.White)
		require.Equal(t, 4, m.Games)
		require.Equal(t, time.Second, m.BlackBudget)
		seen[[2]int{m.Black, m.White}] = true
	}
	require.Len(t, seen, 6)
}

func TestBudgetSweep(t *testing.T) {
	budgets := []time.Duration{time.Millisecond, 2 * time.Millisecond}
	matchUps := BudgetSweep(eval.Hard, 5*time.Millisecond, budgets, 2)

	require.Len(t, matchUps, 2)
	require.Equal(t, time.Millisecond, matchUps[0].BlackBudget)
	require.Equal(t, 5*time.Millisecond, matchUps[0].WhiteBudget)
	require.Equal(t, 5*time.Millisecond, matchUps[1].BlackBudget)
	require.Equal(t, 2*time.Millisecond, matchUps[1].WhiteBudget)
	require.Equal(t, int(eval.Hard), matchUps[1].White)
}

func TestRunTournament(t *testing.T) {
	t.Run("plays every game and stores the records", func(t *testing.T) {
		cfg := quickConfig(t)
		matchUps := RoundRobin([]eval.Tier{eval.Beginner, eval.Easy}, 5*time.Millisecond, 2)

		report, err := RunTournament(context.Background(), "quick", cfg, matchUps)

		require.NoError(t, err)
		require.Len(t, report.Standings, 2)
		require.Len(t, report.Games, 4)
		for _, s := range report.Standings {
			require.Equal(t, 2, s.BlackWins+s.WhiteWins+s.Draws+s.Unfinished)
		}
		moves := 0
		for _, g := range report.Games {
			moves += g.TotalMoves
		}
		require.Len(t, report.Moves, moves)
		for _, file := range []string{"match_ups.csv", "game_records.csv", "move_records.csv"} {
			_, err := os.Stat(filepath.Join(report.Dir, file))
			require.NoError(t, err)
		}
	})

	t.Run("nothing is written without an output directory", func(t *testing.T) {
		cfg := quickConfig(t)
		cfg.OutDir = ""
		matchUps := []metrics.MatchUp{{ID: 1, Black: int(eval.Beginner), White: int(eval.Beginner), Games: 1}}

		report, err := RunTournament(context.Background(), "quick", cfg, matchUps)

		require.NoError(t, err)
		require.Empty(t, report.Dir)
		require.Len(t, report.Games, 1)
	})

	t.Run("rejects an unknown tier", func(t *testing.T) {
		matchUps := []metrics.MatchUp{{ID: 1, Black: 9, White: 1, Games: 1}}
		_, err := RunTournament(context.Background(), "bad", quickConfig(t), matchUps)
		require.True(t, errors.Is(err, game.ErrInvalidConfig))
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		matchUps := RoundRobin([]eval.Tier{eval.Beginner, eval.Easy}, time.Millisecond, 3)

		_, err := RunTournament(ctx, "cancelled", quickConfig(t), matchUps)

		require.True(t, errors.Is(err, context.Canceled))
	})
}
