package experiments

import (
	"context"
	"sync"
	"time"

	"creatures/engine"
	"creatures/eval"
	"creatures/experiments/metrics"
	"creatures/game"
	"creatures/player"
	"creatures/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames   = 10 // Per match up
	TimeBudget = 50 * time.Millisecond
)

type Config struct {
	Game    game.Config
	Workers int    // games played at once, at least 1
	Seed    uint64 // base seed; every game derives its own
	OutDir  string // CSV output root, nothing is written when empty
}

// Standing is the outcome tally of one match up.
type Standing struct {
	MatchUp    metrics.MatchUp
	BlackWins  int
	WhiteWins  int
	Draws      int
	Unfinished int
}

type Report struct {
	Standings []Standing
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Dir       string // where the CSV files went
}

// RoundRobin pairs every tier with every other tier in both colours.
func RoundRobin(tiers []eval.Tier, budget time.Duration, games int) []metrics.MatchUp {
	matchUps := []metrics.MatchUp{}
	for _, a := range tiers {
		for _, b := range tiers {
			if a == b {
				continue
			}
			matchUps = append(matchUps, metrics.MatchUp{
				ID:          len(matchUps) + 1,
				Black:       int(a),
				White:       int(b),
				BlackBudget: budget,
				WhiteBudget: budget,
				Games:       games,
			})
		}
	}
	return matchUps
}

type job struct {
	matchUp int // index into matchUps
	game    int
}

type outcome struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
	res   game.Result
}

// RunTournament plays every match up's games concurrently. Each game owns
// its players and engines, so nothing is shared between goroutines except
// the outcome slots.
func RunTournament(ctx context.Context, name string, cfg Config, matchUps []metrics.MatchUp) (Report, error) {
	if err := cfg.Game.Validate(); err != nil {
		return Report{}, err
	}
	for _, m := range matchUps {
		if !eval.Tier(m.Black).Valid() || !eval.Tier(m.White).Valid() {
			return Report{}, errors.Wrapf(game.ErrInvalidConfig, "match up %d has an unknown tier", m.ID)
		}
	}

	jobs := []job{}
	for mi, m := range matchUps {
		for i := 0; i < m.Games; i++ {
			jobs = append(jobs, job{matchUp: mi, game: i})
		}
	}
	log.Info().Msgf("starting %s tournament: %d match ups, %d games", name, len(matchUps), len(jobs))

	outcomes := make([]outcome, len(jobs))
	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for ji, j := range jobs {
		ji, j := ji, j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m := matchUps[j.matchUp]
			o, err := playGame(cfg, m, cfg.Seed+uint64(ji)*2)
			if err != nil {
				return errors.Wrapf(err, "match up %d game %d", m.ID, j.game+1)
			}
			outcomes[ji] = o

			mu.Lock()
			done++
			log.Info().Msgf("completed game %d of %d (match up %d): %s", done, len(jobs), m.ID, o.res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Standings: make([]Standing, len(matchUps))}
	for mi, m := range matchUps {
		report.Standings[mi].MatchUp = m
	}
	for ji, o := range outcomes {
		s := &report.Standings[jobs[ji].matchUp]
		switch {
		case !o.res.Over():
			s.Unfinished++
		case o.res.Winner == game.Black:
			s.BlackWins++
		case o.res.Winner == game.White:
			s.WhiteWins++
		default:
			s.Draws++
		}
		report.Games = append(report.Games, o.game)
		report.Moves = append(report.Moves, o.moves...)
	}
	log.Info().Msgf("completed %s tournament", name)

	if cfg.OutDir == "" {
		return report, nil
	}
	dir, err := store(cfg.OutDir, name, matchUps, report)
	if err != nil {
		return report, err
	}
	report.Dir = dir
	return report, nil
}

// playGame runs a single game of match up m.
func playGame(cfg Config, m metrics.MatchUp, seed uint64) (outcome, error) {
	black := player.NewAIPlayer(eval.Tier(m.Black), m.BlackBudget, searcher.WithSeed(seed), searcher.WithMetrics())
	white := player.NewAIPlayer(eval.Tier(m.White), m.WhiteBudget, searcher.WithSeed(seed+1), searcher.WithMetrics())
	e, err := engine.LocalEngine(cfg.Game, black, white)
	if err != nil {
		return outcome{}, err
	}

	res, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return outcome{}, err
	}
	o := outcome{
		game: metrics.GameRecord{MatchUp: m.ID, GameMetric: gameMetric},
		res:  res,
	}
	for _, mm := range moveMetrics {
		o.moves = append(o.moves, metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
	}
	return o, nil
}

func store(root, name string, matchUps []metrics.MatchUp, report Report) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}
	if err := writer.WriteMatchUps(matchUps); err != nil {
		return "", errors.Wrap(err, "failed to store match ups")
	}
	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", errors.Wrap(err, "failed to write game records")
	}
	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", errors.Wrap(err, "failed to write move records")
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return writer.Dir(), nil
}
