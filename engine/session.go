package engine

import (
	"time"

	"creatures/eval"
	"creatures/game"
	"creatures/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Session is one live game as a UI shell sees it: the board every move is
// applied to, an identity, and a search engine per AI seat. Engines are
// reset whenever the game restarts so no cached position leaks between games.
type Session struct {
	id      uuid.UUID
	cfg     game.Config
	board   *game.Board
	options []searcher.Option
	engines [2]*searcher.Engine
}

// NewSession starts a game; options configure the AI engines.
func NewSession(cfg game.Config, options ...searcher.Option) (*Session, error) {
	s := &Session{cfg: cfg, options: options}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart begins a new game with a new identity.
func (s *Session) Restart() error {
	b, err := game.NewBoard(s.cfg)
	if err != nil {
		return err
	}
	s.board = b
	s.id = uuid.New()
	for _, e := range s.engines {
		if e != nil {
			e.Reset()
		}
	}
	log.Info().
		Str("game", s.id.String()).
		Int("radius", s.cfg.Radius).
		Int("winning_score", s.cfg.WinningScore).
		Int("pieces", s.cfg.PiecesPerPlayer).
		Msg("game started")
	return nil
}

func (s *Session) ID() string {
	return s.id.String()
}

func (s *Session) Config() game.Config {
	return s.cfg
}

// Board returns the live board. Callers must change it only through Apply.
func (s *Session) Board() *game.Board {
	return s.board
}

func (s *Session) Current() game.Player {
	return s.board.Current()
}

func (s *Session) LegalMoves() []game.HexCoord {
	return game.LegalMoves(s.board, s.board.Current())
}

func (s *Session) Result() game.Result {
	return s.board.Result()
}

// Apply plays c for the side to move.
func (s *Session) Apply(c game.HexCoord) (game.MoveResult, error) {
	p := s.board.Current()
	res, err := game.ApplyMove(s.board, p, c)
	if err != nil {
		return res, err
	}
	ev := log.Debug().
		Str("game", s.id.String()).
		Str("player", p.String()).
		Str("move", c.String())
	if res.Captured > 0 {
		ev = ev.Int("captured", res.Captured).Int("score", res.NewScore)
	}
	ev.Msg("move applied")
	if res.Result.Over() {
		log.Info().
			Str("game", s.id.String()).
			Str("winner", res.Result.Winner.String()).
			Int("black", s.board.Score(game.Black)).
			Int("white", s.board.Score(game.White)).
			Msg(res.Result.String())
	}
	return res, nil
}

// Engine returns the search engine of p's seat, creating it on first use.
func (s *Session) Engine(p game.Player) *searcher.Engine {
	k := p.Index()
	if s.engines[k] == nil {
		s.engines[k] = searcher.New(s.options...)
	}
	return s.engines[k]
}

// AIMove lets the engine choose for the side to move and applies the move.
func (s *Session) AIMove(tier eval.Tier, budget time.Duration) (game.HexCoord, game.MoveResult, error) {
	p := s.board.Current()
	c, err := s.Engine(p).ChooseMove(s.board, p, tier, budget)
	if err != nil {
		return c, game.MoveResult{}, err
	}
	res, err := s.Apply(c)
	return c, res, err
}
