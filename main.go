package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"creatures/eval"
	"creatures/experiments"
	"creatures/game"
	"creatures/meta"
	"creatures/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	radius := flag.Int("radius", meta.RADIUS, "Board radius")
	win := flag.Int("win", meta.WINNING_SCORE, "Score that wins the game")
	pieces := flag.Int("pieces", meta.PIECES_PER_PLAYER, "Pieces per player")
	games := flag.Int("games", experiments.NumGames, "Games per match up")
	workers := flag.Int("workers", 4, "Games played concurrently")
	tiers := flag.String("tiers", "beginner,easy,medium", "Comma separated tiers to pit against each other")
	budget := flag.Duration("budget", experiments.TimeBudget, "Time budget per move, 0 for each tier's default")
	sweep := flag.String("sweep", "", "Run a time budget sweep for this tier instead of a round robin")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Base seed for the AI players")
	out := flag.String("out", "results", "Directory for CSV records, empty to skip writing")
	verbose := flag.Bool("v", false, "Log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := experiments.Config{
		Game:    game.Config{Radius: *radius, WinningScore: *win, PiecesPerPlayer: *pieces},
		Workers: *workers,
		Seed:    *seed,
		OutDir:  *out,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var report experiments.Report
	var err error
	if *sweep != "" {
		var t eval.Tier
		t, err = eval.ParseTier(*sweep)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -sweep")
		}
		report, err = experiments.RunBudgetExperiment(ctx, cfg, t)
	} else {
		var selected []eval.Tier
		for _, s := range utils.SplitList(*tiers) {
			t, err := eval.ParseTier(s)
			if err != nil {
				log.Fatal().Err(err).Msg("invalid -tiers")
			}
			selected = append(selected, t)
		}
		if len(selected) < 2 {
			log.Fatal().Msg("-tiers needs at least two tiers")
		}
		report, err = experiments.RunTournament(ctx, "round_robin", cfg, experiments.RoundRobin(selected, *budget, *games))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}

	for _, s := range report.Standings {
		fmt.Println(describe(s))
	}
}

func describe(s experiments.Standing) string {
	m := s.MatchUp
	black, white := eval.Tier(m.Black), eval.Tier(m.White)
	line := fmt.Sprintf("%-8s (%v) vs %-8s (%v): black %d, white %d, draws %d",
		black, m.BlackBudget, white, m.WhiteBudget, s.BlackWins, s.WhiteWins, s.Draws)
	if s.Unfinished > 0 {
		line += fmt.Sprintf(", unfinished %d", s.Unfinished)
	}
	return line
}
