package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// position builds a board with the given pieces placed and Black to move.
func position(t *testing.T, radius int, black, white []HexCoord) *Board {
	t.Helper()
	b, err := NewBoard(Config{Radius: radius, WinningScore: 12, PiecesPerPlayer: 30})
	require.NoError(t, err)
	for _, c := range black {
		require.True(t, b.Put(c, Black), "black %v should be on the board", c)
	}
	for _, c := range white {
		require.True(t, b.Put(c, White), "white %v should be on the board", c)
	}
	return b
}

func TestCreatureAt(t *testing.T) {
	t.Run("empty and off-board cells yield size 0", func(t *testing.T) {
		b := position(t, 2, []HexCoord{{0, 0}}, nil)
		require.Equal(t, 0, b.CreatureAt(HexCoord{1, 0}).Size())
		require.Equal(t, 0, b.CreatureAt(HexCoord{5, 5}).Size())
	})

	t.Run("collects the connected group of one owner", func(t *testing.T) {
		b := position(t, 3,
			[]HexCoord{{0, 0}, {1, 0}, {1, -1}, {-2, 2}},
			[]HexCoord{{-1, 0}},
		)
		cr := b.CreatureAt(HexCoord{1, -1})
		require.Equal(t, Black, cr.Owner)
		require.Equal(t, 3, cr.Size())
		require.ElementsMatch(t, []HexCoord{{0, 0}, {1, 0}, {1, -1}}, cr.Coords(b.Grid()))

		i, _ := b.Grid().Index(HexCoord{1, -1})
		require.True(t, cr.Contains(i), "creature should contain the query cell")
		for _, j := range cr.Cells {
			require.Equal(t, Black, b.Cell(j))
		}
	})

	t.Run("membership does not depend on the query cell", func(t *testing.T) {
		b := position(t, 3, []HexCoord{{0, 0}, {0, 1}, {0, 2}, {1, 1}}, nil)
		want := b.CreatureAt(HexCoord{0, 0}).Coords(b.Grid())
		for _, c := range want {
			require.ElementsMatch(t, want, b.CreatureAt(c).Coords(b.Grid()))
		}
	})

	t.Run("hypothetical placement joins neighbouring groups without mutating", func(t *testing.T) {
		b := position(t, 3, []HexCoord{{-2, 0}, {-1, 0}, {1, 0}, {2, 0}}, nil)
		before := b.Clone()

		cr := b.HypotheticalCreatureAt(HexCoord{0, 0}, Black)

		require.Equal(t, 5, cr.Size())
		require.Equal(t, before, b, "board should not change")
		p, _ := b.At(HexCoord{0, 0})
		require.Equal(t, None, p)
	})

	t.Run("hypothetical placement of the other owner is isolated", func(t *testing.T) {
		b := position(t, 3, []HexCoord{{-1, 0}, {1, 0}}, nil)
		require.Equal(t, 1, b.HypotheticalCreatureAt(HexCoord{0, 0}, White).Size())
	})
}

func TestCreatures(t *testing.T) {
	b := position(t, 3,
		[]HexCoord{{0, 0}, {1, 0}, {-3, 3}, {3, -3}, {3, -2}},
		[]HexCoord{{0, 1}},
	)

	got := b.Creatures(Black)

	require.Len(t, got, 3)
	total := 0
	for _, cr := range got {
		total += cr.Size()
	}
	require.Equal(t, b.Count(Black), total, "creatures should partition the pieces")
	require.Len(t, b.Creatures(White), 1)
}
