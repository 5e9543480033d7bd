package game

import "github.com/pkg/errors"

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over - no moves allowed")
	ErrNoLegalMoves  = errors.New("no legal moves")
	ErrInvalidConfig = errors.New("invalid configuration")
)
