package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// MatchUp pairs two tiers; Black moves first. A zero budget means the tier's default.
type MatchUp struct {
	ID          int
	Black       int // tier
	White       int // tier
	BlackBudget time.Duration
	WhiteBudget time.Duration
	Games       int
}

type GameRecord struct {
	MatchUp int // MatchUp.ID
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the CSV files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchUps(matchUps []MatchUp) error {
	header := []string{"id", "black_tier", "white_tier", "black_budget", "white_budget", "games"}
	rows := make([][]string, 0, len(matchUps))
	for _, m := range matchUps {
		rows = append(rows, []string{
			strconv.Itoa(m.ID),
			strconv.Itoa(m.Black),
			strconv.Itoa(m.White),
			m.BlackBudget.String(),
			m.WhiteBudget.String(),
			strconv.Itoa(m.Games),
		})
	}
	return w.write("match_ups.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "match_up", "black", "white", "winner", "status", "black_score", "white_score", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.MatchUp),
			record.Black,
			record.White,
			record.Winner,
			record.Status,
			strconv.Itoa(record.BlackScore),
			strconv.Itoa(record.WhiteScore),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "captured", "tier", "budget", "duration", "nodes", "tt_probes", "tt_hits", "cutoffs", "depth", "score", "aborted"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			strconv.Itoa(record.Captured),
			strconv.Itoa(record.Tier),
			record.Budget.String(),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.TTProbes),
			strconv.Itoa(record.TTHits),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Score),
			strconv.FormatBool(record.Aborted),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", file)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s header", file)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s rows", file)
	}
	return nil
}
