package searcher

import (
	"testing"
	"time"

	"creatures/eval"
	"creatures/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// steppingClock advances by step on every read, so searches are reproducible.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func position(t *testing.T, radius int, black, white []game.HexCoord) *game.Board {
	t.Helper()
	b, err := game.NewGame(radius, 12, 30)
	require.NoError(t, err)
	for _, c := range black {
		require.True(t, b.Put(c, game.Black))
	}
	for _, c := range white {
		require.True(t, b.Put(c, game.White))
	}
	return b
}

func play(t *testing.T, b *game.Board, c game.HexCoord) game.MoveResult {
	t.Helper()
	res, err := game.ApplyMove(b.Clone(), b.Current(), c)
	require.NoError(t, err)
	return res
}

func TestChooseMove(t *testing.T) {
	t.Run("takes an immediate win at every tier", func(t *testing.T) {
		b := position(t, 3,
			[]game.HexCoord{{Q: 0, R: -1}, {Q: 2, R: -1}},
			[]game.HexCoord{{Q: -1, R: 0}, {Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 2, R: 0}},
		)
		b.SetScore(game.Black, 8)
		for _, tier := range eval.Tiers {
			e := New(WithSeed(1), WithClock(steppingClock(time.Microsecond)))
			move, err := e.ChooseMove(b, game.Black, tier, 0)
			require.NoError(t, err)
			res := play(t, b, move)
			require.Equal(t, game.Won, res.Result.Status, "tier %v", tier)
			require.Equal(t, game.Black, res.Result.Winner)
		}
	})

	t.Run("does not modify the live board", func(t *testing.T) {
		b := position(t, 2, []game.HexCoord{{Q: 0, R: 0}}, []game.HexCoord{{Q: 1, R: -1}})
		before := b.Clone()
		e := New(WithSeed(1), WithClock(steppingClock(time.Microsecond)))
		_, err := e.ChooseMove(b, game.Black, eval.Medium, 0)
		require.NoError(t, err)
		require.Equal(t, before, b)
	})

	t.Run("captures when a free capture is available", func(t *testing.T) {
		b := position(t, 2, []game.HexCoord{{Q: 0, R: 0}}, []game.HexCoord{{Q: 1, R: -1}})
		e := New(WithSeed(1), WithClock(steppingClock(time.Microsecond)))
		move, err := e.ChooseMove(b, game.Black, eval.Medium, 0)
		require.NoError(t, err)
		require.Equal(t, 1, play(t, b, move).Captured, "chose %v", move)
	})

	t.Run("defensive filter avoids handing over the win", func(t *testing.T) {
		// White wins by pairing up next to any lone black piece.
		b := position(t, 3, []game.HexCoord{{Q: 0, R: 0}}, []game.HexCoord{{Q: 2, R: -1}})
		b.SetScore(game.White, 11)
		for seed := uint64(0); seed < 5; seed++ {
			e := New(WithSeed(seed))
			move, err := e.ChooseMove(b, game.Black, eval.Easy, 0)
			require.NoError(t, err)

			after := b.Clone()
			_, err = game.ApplyMove(after, game.Black, move)
			require.NoError(t, err)
			require.False(t, canWinNow(after, game.White), "seed %d chose %v", seed, move)
		}
	})

	t.Run("is reproducible with a fixed clock and seed", func(t *testing.T) {
		b := position(t, 2,
			[]game.HexCoord{{Q: 0, R: 0}, {Q: -1, R: 1}},
			[]game.HexCoord{{Q: 1, R: 0}, {Q: 0, R: -2}},
		)
		first, _, err := New(WithSeed(9), WithClock(steppingClock(time.Microsecond))).Search(b, game.Black, eval.Medium, 0)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, _, err := New(WithSeed(9), WithClock(steppingClock(time.Microsecond))).Search(b, game.Black, eval.Medium, 0)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})

	t.Run("falls back to the first legal move when time runs out at once", func(t *testing.T) {
		b := position(t, 2, []game.HexCoord{{Q: 0, R: 0}}, []game.HexCoord{{Q: 1, R: 1}})
		e := New(WithSeed(1), WithClock(steppingClock(time.Hour)))
		d, _, err := e.Search(b, game.Black, eval.Expert, time.Second)
		require.NoError(t, err)
		require.Equal(t, game.LegalMoves(b, game.Black)[0], d.Move)
		require.Zero(t, d.Depth, "no iteration completed")
	})

	t.Run("reports metrics when enabled", func(t *testing.T) {
		b := position(t, 2, []game.HexCoord{{Q: 0, R: 0}}, []game.HexCoord{{Q: 1, R: 1}})
		e := New(WithSeed(1), WithMetrics(), WithClock(steppingClock(time.Microsecond)))
		d, m, err := e.Search(b, game.Black, eval.Medium, 0)
		require.NoError(t, err)
		require.Equal(t, int(eval.Medium), m.Tier)
		require.Positive(t, m.Nodes)
		require.Positive(t, m.TTProbes)
		require.Equal(t, d.Depth, m.Depth)
		require.LessOrEqual(t, d.Depth, e.TierConfig(eval.Medium).MaxDepth)
	})

	t.Run("rejects finished games, wrong turns and unknown tiers", func(t *testing.T) {
		e := New()
		b := position(t, 2, nil, nil)

		_, err := e.ChooseMove(b, game.White, eval.Easy, 0)
		require.True(t, errors.Is(err, game.ErrIllegalMove))

		_, err = e.ChooseMove(b, game.Black, eval.Tier(9), 0)
		require.True(t, errors.Is(err, game.ErrInvalidConfig))

		b.SetScore(game.White, 12)
		_, err = e.ChooseMove(b, game.Black, eval.Easy, 0)
		require.True(t, errors.Is(err, game.ErrGameOver))
	})

	t.Run("reset clears the transposition table", func(t *testing.T) {
		b := position(t, 2, []game.HexCoord{{Q: 0, R: 0}}, []game.HexCoord{{Q: 1, R: 1}})
		e := New(WithSeed(1), WithClock(steppingClock(time.Microsecond)))
		_, err := e.ChooseMove(b, game.Black, eval.Medium, 0)
		require.NoError(t, err)
		require.Positive(t, e.tt.len())

		e.Reset()
		require.Zero(t, e.tt.len())
	})

	t.Run("a custom tier config is honoured", func(t *testing.T) {
		cfg := DefaultTierConfig(eval.Hard)
		cfg.MaxDepth = 1
		e := New(WithTierConfig(cfg), WithSeed(1), WithClock(steppingClock(time.Microsecond)))
		b := position(t, 2, []game.HexCoord{{Q: 0, R: 0}}, []game.HexCoord{{Q: 1, R: 1}})
		d, _, err := e.Search(b, game.Black, eval.Hard, 0)
		require.NoError(t, err)
		require.Equal(t, 1, d.Depth)
	})
}

func TestDefaultTierConfig(t *testing.T) {
	for k := 1; k < len(eval.Tiers); k++ {
		prev, cur := DefaultTierConfig(eval.Tiers[k-1]), DefaultTierConfig(eval.Tiers[k])
		require.GreaterOrEqual(t, cur.MaxDepth, prev.MaxDepth)
		require.Greater(t, cur.TimeBudget, prev.TimeBudget)
	}
	require.False(t, DefaultTierConfig(eval.Easy).Search)
	require.True(t, DefaultTierConfig(eval.Easy).DefensiveFilter)
	require.True(t, DefaultTierConfig(eval.Medium).Search)
	require.Panics(t, func() { DefaultTierConfig(eval.Tier(0)) })
}

func TestTableScoresAcrossPlies(t *testing.T) {
	b := position(t, 2, []game.HexCoord{{Q: 0, R: 0}}, []game.HexCoord{{Q: 1, R: 0}})
	b.SetScore(game.Black, 12)
	e := New(WithSeed(1), WithClock(steppingClock(0)))
	e.begin(b, game.Black, e.TierConfig(eval.Medium), time.Hour)
	won := eval.WinScore + 12

	t.Run("decided scores shrink with ply", func(t *testing.T) {
		require.Equal(t, won-3, e.minimax(b, 2, -infinity, infinity, 3))
	})

	t.Run("the table stores the distance from the position itself", func(t *testing.T) {
		ent, ok := e.tt.probe(e.key(b))
		require.True(t, ok)
		require.Equal(t, int32(won), ent.score)
		require.Equal(t, int8(terminalDepth), ent.depth)
	})

	t.Run("a hit at another ply is adjusted to that ply", func(t *testing.T) {
		require.Equal(t, won-1, e.minimax(b, 4, -infinity, infinity, 1))
	})

	t.Run("heuristic scores are stored unchanged", func(t *testing.T) {
		require.Equal(t, 250, toTT(250, 5))
		require.Equal(t, -250, fromTT(-250, 5))
		require.Equal(t, -winBound-7, fromTT(toTT(-winBound-7, 4), 4))
	})
}
