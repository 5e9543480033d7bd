package engine

import (
	"time"

	"creatures/experiments/metrics"
	"creatures/game"
	"creatures/player"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ Engine = (*Local)(nil)

// Local plays two in-process players against each other on one session.
type Local struct {
	Session  *Session
	Players  [2]player.Player // indexed by game.Player.Index()
	MaxTurns int
}

func LocalEngine(cfg game.Config, black, white player.Player) (*Local, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &Local{
		Session:  s,
		Players:  [2]player.Player{black, white},
		MaxTurns: MaxTurns,
	}, nil
}

// Run executes the entire game loop until the game ends. A player error or
// an illegal move stops the game and is returned.
func (l *Local) Run() (game.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	for _, p := range l.Players {
		if r, ok := p.(player.Resetter); ok {
			r.Reset()
		}
	}
	s := l.Session
	b := s.Board()
	gameMetric := metrics.GameMetric{
		ID:        s.ID(),
		Black:     l.Players[0].Name(),
		White:     l.Players[1].Name(),
		StartTime: time.Now(),
	}
	log.Info().Str("game", s.ID()).Msgf("%s (black) vs %s (white)", gameMetric.Black, gameMetric.White)

	var moveMetrics []metrics.MoveMetric
	result := b.Result()
	for turn := 1; !result.Over() && turn <= l.MaxTurns; turn++ {
		current := b.Current()
		pl := l.Players[current.Index()]

		move, searchMetric, err := pl.FindMove(b)
		if err != nil {
			return result, gameMetric, moveMetrics, errors.Wrapf(err, "%s failed to find a move", pl.Name())
		}
		res, err := s.Apply(move)
		if err != nil {
			return result, gameMetric, moveMetrics, errors.Wrapf(err, "%s played %v", pl.Name(), move)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       current.String(),
			Move:         move.String(),
			Captured:     res.Captured,
			SearchMetric: searchMetric,
		})
		result = res.Result
	}

	if !result.Over() {
		log.Warn().Str("game", s.ID()).Msgf("stopped after %d turns with no winner", l.MaxTurns)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = result.Winner.String()
	gameMetric.Status = result.Status.String()
	gameMetric.BlackScore = b.Score(game.Black)
	gameMetric.WhiteScore = b.Score(game.White)
	return result, gameMetric, moveMetrics, nil
}
