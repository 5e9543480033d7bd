package game

import (
	"creatures/meta"

	"github.com/pkg/errors"
)

// MaxCreatureSize is the largest creature a legal placement may produce.
const MaxCreatureSize = meta.MAX_CREATURE_SIZE

// Config parameterizes a game.
type Config struct {
	Radius          int `json:"radius"`
	WinningScore    int `json:"winning_score"`
	PiecesPerPlayer int `json:"pieces_per_player"`
}

func DefaultConfig() Config {
	return Config{
		Radius:          meta.RADIUS,
		WinningScore:    meta.WINNING_SCORE,
		PiecesPerPlayer: meta.PIECES_PER_PLAYER,
	}
}

func (c Config) Validate() error {
	if c.Radius < 1 {
		return errors.Wrapf(ErrInvalidConfig, "radius must be at least 1, got %d", c.Radius)
	}
	if c.WinningScore < 1 {
		return errors.Wrapf(ErrInvalidConfig, "winning score must be at least 1, got %d", c.WinningScore)
	}
	if c.PiecesPerPlayer < 1 {
		return errors.Wrapf(ErrInvalidConfig, "pieces per player must be at least 1, got %d", c.PiecesPerPlayer)
	}
	return nil
}
