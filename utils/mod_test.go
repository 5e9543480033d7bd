package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]int{4, 5, 6}, 5))
	require.Equal(t, -1, FindIndex([]string{"a"}, "b"))
}

func TestSplitList(t *testing.T) {
	t.Run("trims and lowercases items", func(t *testing.T) {
		require.Equal(t, []string{"easy", "hard", "3"}, SplitList(" Easy,hard , 3"))
	})

	t.Run("drops empty and repeated items", func(t *testing.T) {
		require.Equal(t, []string{"easy"}, SplitList("easy,,easy,"))
		require.Empty(t, SplitList(""))
	})
}
