package player

import (
	"fmt"
	"time"

	"creatures/eval"
	"creatures/experiments/metrics"
	"creatures/game"
	"creatures/searcher"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

var ErrScriptExhausted = errors.New("scripted player has no moves left")

// Player picks moves for the side to move. Human input plugs in through FuncPlayer.
type Player interface {
	Name() string
	FindMove(b *game.Board) (game.HexCoord, metrics.SearchMetric, error)
}

// Resetter is implemented by players that keep per-game state.
type Resetter interface {
	Reset()
}

// AIPlayer searches with its own engine at a fixed tier.
type AIPlayer struct {
	engine *searcher.Engine
	tier   eval.Tier
	budget time.Duration
}

// NewAIPlayer creates an AI at tier. A non-positive budget uses the tier's default.
func NewAIPlayer(tier eval.Tier, budget time.Duration, options ...searcher.Option) *AIPlayer {
	return &AIPlayer{
		engine: searcher.New(options...),
		tier:   tier,
		budget: budget,
	}
}

func (p *AIPlayer) Name() string {
	return fmt.Sprintf("ai-%s", p.tier)
}

func (p *AIPlayer) Tier() eval.Tier {
	return p.tier
}

func (p *AIPlayer) FindMove(b *game.Board) (game.HexCoord, metrics.SearchMetric, error) {
	d, m, err := p.engine.Search(b, b.Current(), p.tier, p.budget)
	return d.Move, m, err
}

// Reset clears the engine's tables for a new game.
func (p *AIPlayer) Reset() {
	p.engine.Reset()
}

// RandomPlayer picks uniformly among the legal moves.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Name() string {
	return "random"
}

func (p *RandomPlayer) FindMove(b *game.Board) (game.HexCoord, metrics.SearchMetric, error) {
	moves := game.LegalMoves(b, b.Current())
	if len(moves) == 0 {
		return game.HexCoord{}, metrics.SearchMetric{}, game.ErrNoLegalMoves
	}
	return moves[p.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}

// ScriptedPlayer replays a fixed list of moves.
type ScriptedPlayer struct {
	moves []game.HexCoord
	next  int
}

func NewScriptedPlayer(moves ...game.HexCoord) *ScriptedPlayer {
	return &ScriptedPlayer{moves: moves}
}

func (p *ScriptedPlayer) Name() string {
	return "scripted"
}

func (p *ScriptedPlayer) FindMove(b *game.Board) (game.HexCoord, metrics.SearchMetric, error) {
	if p.next >= len(p.moves) {
		return game.HexCoord{}, metrics.SearchMetric{}, ErrScriptExhausted
	}
	m := p.moves[p.next]
	p.next++
	return m, metrics.SearchMetric{}, nil
}

func (p *ScriptedPlayer) Reset() {
	p.next = 0
}

// FuncPlayer adapts a callback, such as a UI waiting for a click.
type FuncPlayer struct {
	name string
	fn   func(b *game.Board) (game.HexCoord, error)
}

func NewFuncPlayer(name string, fn func(b *game.Board) (game.HexCoord, error)) *FuncPlayer {
	return &FuncPlayer{name: name, fn: fn}
}

func (p *FuncPlayer) Name() string {
	return p.name
}

func (p *FuncPlayer) FindMove(b *game.Board) (game.HexCoord, metrics.SearchMetric, error) {
	c, err := p.fn(b)
	return c, metrics.SearchMetric{}, err
}
