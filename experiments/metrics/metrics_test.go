package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts search events", func(t *testing.T) {
		c := NewCollector()
		c.Start(3, time.Second)
		for i := 0; i < 5; i++ {
			c.AddNode()
		}
		c.AddProbe(true)
		c.AddProbe(false)
		c.AddCutoff()
		c.CompleteDepth(2, 40)
		c.CompleteDepth(3, -7)

		m := c.Complete()

		require.Equal(t, 3, m.Tier)
		require.Equal(t, time.Second, m.Budget)
		require.Equal(t, 5, m.Nodes)
		require.Equal(t, 2, m.TTProbes)
		require.Equal(t, 1, m.TTHits)
		require.Equal(t, 1, m.Cutoffs)
		require.Equal(t, 3, m.Depth)
		require.Equal(t, -7, m.Score)
		require.False(t, m.Aborted)
	})

	t.Run("start clears the previous search", func(t *testing.T) {
		c := NewCollector()
		c.Start(5, time.Second)
		c.AddNode()
		c.Abort()

		c.Start(5, time.Second)

		m := c.Complete()
		require.Zero(t, m.Nodes)
		require.False(t, m.Aborted)
	})

	t.Run("the dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3, time.Second)
		c.AddNode()
		c.Abort()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "tournament")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "tournament"), filepath.Dir(w.Dir()))

	t.Run("writes match ups", func(t *testing.T) {
		err := w.WriteMatchUps([]MatchUp{{ID: 1, Black: 3, White: 5, BlackBudget: time.Second, Games: 4}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "match_ups.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "3", "5", "1s", "0s", "4"}, rows[1])
	})

	t.Run("writes one row per game", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			MatchUp: 2,
			GameMetric: GameMetric{
				ID: "g1", Black: "ai-easy", White: "ai-hard", Winner: "White", Status: "won",
				BlackScore: 4, WhiteScore: 12, StartTime: start, EndTime: start.Add(time.Minute),
				Duration: time.Minute, TotalMoves: 31,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "id", rows[0][0])
		require.Equal(t, []string{"g1", "2", "ai-easy", "ai-hard", "White", "won", "4", "12", "31",
			"2024-01-02T03:04:05Z", "2024-01-02T03:05:05Z", "1m0s"}, rows[1])
	})

	t.Run("writes one row per move", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{
			{Game: "g1", MoveMetric: MoveMetric{Step: 1, Player: "Black", Move: "(0,0)"}},
			{Game: "g1", MoveMetric: MoveMetric{Step: 2, Player: "White", Move: "(1,0)", Captured: 2,
				SearchMetric: SearchMetric{Tier: 4, Nodes: 100, Depth: 3, Aborted: true}}},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "(1,0)", rows[2][3])
		require.Equal(t, "2", rows[2][4])
		require.Equal(t, "100", rows[2][8])
		require.Equal(t, "true", rows[2][14])
	})
}
