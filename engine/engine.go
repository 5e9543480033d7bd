package engine

import (
	"creatures/experiments/metrics"
	"creatures/game"
	"creatures/meta"
)

const MaxTurns = meta.MAX_TURNS

type Engine interface {
	// Run plays a game until it ends or MaxTurns placements have been made
	Run() (game.Result, metrics.GameMetric, []metrics.MoveMetric, error)
}
