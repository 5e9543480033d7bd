package searcher

import (
	"time"

	"creatures/eval"
	"creatures/experiments/metrics"
	"creatures/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const (
	infinity = 4 * eval.WinScore
	// winBound separates decided scores from heuristic ones.
	winBound = eval.WinScore / 2
	// DeadlineFraction of the budget is spent searching; the rest is slack
	// for unwinding and returning.
	DeadlineFraction = 0.8
	// clockInterval is how many nodes pass between clock reads.
	clockInterval = 64
)

// Per-player and per-tier salts mixed into transposition keys.
var (
	perspectiveKeys = [2]uint64{0xA0761D6478BD642F, 0xE7037ED1A0B428DB}
	tierSalt        = uint64(0x8EBC6AF09C88C6E3)
)

// Decision is the outcome of one top-level search.
type Decision struct {
	Move  game.HexCoord
	Index int
	Score int // from the searching player's perspective
	Depth int // deepest completed iteration, 0 for single-ply tiers
}

// Engine chooses moves for the AI. It owns the transposition table, the
// evaluators and their caches and the move-ordering tables, so one Engine
// serves one game at a time. Call Reset when a new game starts.
type Engine struct {
	now          func() time.Time
	seed         uint64
	seeded       bool
	ttCapacity   int
	evalCapacity int
	tiers        map[eval.Tier]TierConfig
	evaluators   map[eval.Tier]*eval.Evaluator
	tt           *table
	killers      killerTable
	history      historyTable
	metrics      metrics.Collector

	// running search
	ai        game.Player
	cfg       TierConfig
	evaluator *eval.Evaluator
	deadline  time.Time
	nodes     int
	aborted   bool
}

func New(options ...Option) *Engine {
	e := &Engine{ // Default values
		now:          time.Now,
		ttCapacity:   DefaultTTCapacity,
		evalCapacity: eval.DefaultCacheCapacity,
		tiers:        defaultTiers(),
		evaluators:   make(map[eval.Tier]*eval.Evaluator),
		metrics:      metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	e.tt = newTable(e.ttCapacity)
	return e
}

// TierConfig returns the settings used for t.
func (e *Engine) TierConfig(t eval.Tier) TierConfig {
	return e.tiers[t]
}

// Reset forgets everything learned about previous positions.
func (e *Engine) Reset() {
	e.tt.clear()
	for _, ev := range e.evaluators {
		ev.Reset()
	}
	e.killers.reset()
	e.history = historyTable{}
}

// ChooseMove returns the move ai should play on b. b is not modified.
func (e *Engine) ChooseMove(b *game.Board, ai game.Player, tier eval.Tier, budget time.Duration) (game.HexCoord, error) {
	d, _, err := e.Search(b, ai, tier, budget)
	return d.Move, err
}

// Search runs one top-level search within budget (the tier's budget if budget
// is not positive) and reports the decision with its search metrics.
func (e *Engine) Search(b *game.Board, ai game.Player, tier eval.Tier, budget time.Duration) (Decision, metrics.SearchMetric, error) {
	cfg, ok := e.tiers[tier]
	if !ok {
		return Decision{}, metrics.SearchMetric{}, errors.Wrapf(game.ErrInvalidConfig, "unknown tier %d", int(tier))
	}
	if b.Result().Over() {
		return Decision{}, metrics.SearchMetric{}, game.ErrGameOver
	}
	if ai != b.Current() {
		return Decision{}, metrics.SearchMetric{}, errors.Wrapf(game.ErrIllegalMove, "it is %v's turn, not %v's", b.Current(), ai)
	}
	if budget <= 0 {
		budget = cfg.TimeBudget
	}

	root := b.Clone()
	moves := root.LegalIndices(ai)
	if len(moves) == 0 {
		return Decision{}, metrics.SearchMetric{}, game.ErrNoLegalMoves
	}

	e.begin(root, ai, cfg, budget)
	e.metrics.Start(int(tier), budget)

	var d Decision
	if m, ok := immediateWin(root, ai, moves); ok {
		d = Decision{Index: m, Score: eval.WinScore}
		log.Debug().Str("tier", tier.String()).Msg("taking immediate win")
	} else if cfg.Search {
		d = e.deepen(root, moves)
	} else {
		d = e.rankSinglePly(root, moves)
	}
	d.Move = root.Grid().Coord(d.Index)

	metric := e.metrics.Complete()
	log.Debug().
		Str("tier", tier.String()).
		Str("player", ai.String()).
		Str("move", d.Move.String()).
		Int("score", d.Score).
		Int("depth", d.Depth).
		Int("nodes", e.nodes).
		Msg("move chosen")
	return d, metric, nil
}

// begin prepares per-search state. Killer and history tables never carry
// over between top-level searches.
func (e *Engine) begin(b *game.Board, ai game.Player, cfg TierConfig, budget time.Duration) {
	e.ai = ai
	e.cfg = cfg
	e.evaluator = e.evaluatorFor(cfg)
	e.deadline = e.now().Add(time.Duration(float64(budget) * DeadlineFraction))
	e.nodes = 0
	e.aborted = false
	e.killers.reset()
	e.history.reset(b.Grid().Len())
}

func (e *Engine) evaluatorFor(cfg TierConfig) *eval.Evaluator {
	if ev, ok := e.evaluators[cfg.Tier]; ok {
		return ev
	}
	options := []eval.Option{
		eval.WithWeights(cfg.Weights),
		eval.WithCacheCapacity(e.evalCapacity),
	}
	if e.seeded {
		options = append(options, eval.WithSeed(e.seed+uint64(cfg.Tier)))
	}
	ev := eval.New(cfg.Tier, options...)
	e.evaluators[cfg.Tier] = ev
	return ev
}

func (e *Engine) expired() bool {
	return !e.now().Before(e.deadline)
}

// immediateWin returns the first move that lifts p to the winning score.
func immediateWin(b *game.Board, p game.Player, moves []int) (int, bool) {
	for _, m := range moves {
		u := b.Place(p, m)
		won := b.Score(p) >= b.Config().WinningScore
		b.Unplace(u)
		if won {
			return m, true
		}
	}
	return -1, false
}

// canWinNow reports whether p, to move, has a placement reaching the winning score.
func canWinNow(b *game.Board, p game.Player) bool {
	_, ok := immediateWin(b, p, b.LegalIndices(p))
	return ok
}

// rankSinglePly evaluates every move one ply deep. With the defensive
// filter, moves after which the opponent can win at once are only chosen
// when every move is like that.
func (e *Engine) rankSinglePly(b *game.Board, moves []int) Decision {
	opp := e.ai.Opponent()
	best, bestScore := -1, -infinity
	unsafe, unsafeScore := -1, -infinity
	for _, m := range moves {
		if (best >= 0 || unsafe >= 0) && e.expired() {
			e.metrics.Abort()
			break
		}
		e.nodes++
		e.metrics.AddNode()

		u := b.Place(e.ai, m)
		s := e.evaluator.Evaluate(b, e.ai)
		exposed := e.cfg.DefensiveFilter && canWinNow(b, opp)
		b.Unplace(u)

		if exposed {
			if s > unsafeScore {
				unsafe, unsafeScore = m, s
			}
			continue
		}
		if s > bestScore {
			best, bestScore = m, s
		}
	}
	if best < 0 {
		best, bestScore = unsafe, unsafeScore
	}
	if best < 0 {
		return Decision{Index: moves[0]}
	}
	return Decision{Index: best, Score: bestScore}
}

// deepen runs iterative deepening and returns the best move of the deepest
// completed iteration, or the first legal move if none completed.
func (e *Engine) deepen(b *game.Board, moves []int) Decision {
	d := Decision{Index: moves[0]}
	order := e.orderMoves(b, e.ai, moves, 0, -1)

	for depth := 1; depth <= e.cfg.MaxDepth; depth++ {
		if e.expired() {
			break
		}
		scores, ok := e.searchRoot(b, order, depth)
		if !ok {
			e.metrics.Abort()
			log.Debug().Int("depth", depth).Int("nodes", e.nodes).Msg("iteration aborted")
			break
		}

		// Next iteration searches the best moves first.
		ranked := make([]scoredMove, len(order))
		for k, m := range order {
			ranked[k] = scoredMove{move: m, score: scores[k]}
		}
		slices.SortStableFunc(ranked, func(x, y scoredMove) int {
			return y.score - x.score
		})
		for k, sm := range ranked {
			order[k] = sm.move
		}

		d = Decision{Index: ranked[0].move, Score: ranked[0].score, Depth: depth}
		e.metrics.CompleteDepth(depth, d.Score)
		log.Debug().
			Int("depth", depth).
			Int("score", d.Score).
			Str("move", b.Grid().Coord(d.Index).String()).
			Int("nodes", e.nodes).
			Msg("iteration complete")

		if d.Score >= winBound {
			break
		}
	}
	return d
}

// searchRoot scores every root move at depth. Scores after the first are
// upper bounds when they fail low, which still orders the next iteration.
func (e *Engine) searchRoot(b *game.Board, order []int, depth int) ([]int, bool) {
	alpha := -infinity
	scores := make([]int, len(order))
	for k, m := range order {
		u := b.Place(e.ai, m)
		v := e.minimax(b, depth-1, alpha, infinity, 1)
		b.Unplace(u)
		if e.aborted {
			return nil, false
		}
		scores[k] = v
		alpha = max(alpha, v)
	}
	return scores, true
}

func (e *Engine) key(b *game.Board) uint64 {
	return b.Hash() ^ perspectiveKeys[e.ai.Index()] ^ (tierSalt * uint64(e.cfg.Tier))
}

// minimax searches b to depth plies. Scores are always from the AI's point
// of view: the AI's nodes maximize, the opponent's minimize. An aborted
// search returns 0 and stores nothing.
func (e *Engine) minimax(b *game.Board, depth, alpha, beta, ply int) int {
	e.nodes++
	e.metrics.AddNode()
	if e.nodes%clockInterval == 0 && e.expired() {
		e.aborted = true
	}
	if e.aborted {
		return 0
	}

	alphaOrig, betaOrig := alpha, beta
	key := e.key(b)
	ttMove := -1
	ent, hit := e.tt.probe(key)
	e.metrics.AddProbe(hit)
	if hit {
		ttMove = int(ent.move)
		if int(ent.depth) >= depth {
			score := fromTT(int(ent.score), ply)
			switch ent.flag {
			case ttExact:
				return score
			case ttLower:
				alpha = max(alpha, score)
			case ttUpper:
				beta = min(beta, score)
			}
			if alpha >= beta {
				return score
			}
		}
	}

	mover := b.Current()
	win := b.Config().WinningScore
	var moves []int
	terminal := b.Score(game.Black) >= win || b.Score(game.White) >= win
	if !terminal {
		moves = b.LegalIndices(mover)
		terminal = len(moves) == 0
	}
	if terminal || depth == 0 {
		v := e.leaf(b, ply)
		stored := int8(depth)
		if terminal {
			stored = terminalDepth
		}
		e.tt.store(key, ttEntry{score: int32(toTT(v, ply)), depth: stored, flag: ttExact, move: -1})
		return v
	}

	maximizing := mover == e.ai
	best, bestMove := infinity, -1
	if maximizing {
		best = -infinity
	}
	for _, m := range e.orderMoves(b, mover, moves, ply, ttMove) {
		u := b.Place(mover, m)
		v := e.minimax(b, depth-1, alpha, beta, ply+1)
		b.Unplace(u)
		if e.aborted {
			return 0
		}

		if maximizing {
			if v > best {
				best, bestMove = v, m
			}
			alpha = max(alpha, best)
		} else {
			if v < best {
				best, bestMove = v, m
			}
			beta = min(beta, best)
		}
		if alpha >= beta {
			e.metrics.AddCutoff()
			e.killers.add(ply, m)
			e.history.add(mover, m, depth)
			break
		}
	}

	flag := ttExact
	switch {
	case best <= alphaOrig:
		flag = ttUpper
	case best >= betaOrig:
		flag = ttLower
	}
	e.tt.store(key, ttEntry{score: int32(toTT(best, ply)), depth: int8(depth), flag: flag, move: int16(bestMove)})
	return best
}

// leaf evaluates b for the AI. Decided scores shrink with ply so the search
// prefers quicker wins and slower losses.
func (e *Engine) leaf(b *game.Board, ply int) int {
	v := e.evaluator.Evaluate(b, e.ai)
	switch {
	case v >= winBound:
		v -= ply
	case v <= -winBound:
		v += ply
	}
	return v
}

// toTT converts a decided score at ply into one relative to the stored
// position, so the entry stays valid when reached from another root or ply.
func toTT(v, ply int) int {
	switch {
	case v >= winBound:
		return v + ply
	case v <= -winBound:
		return v - ply
	}
	return v
}

// fromTT is the inverse of toTT for an entry probed at ply.
func fromTT(v, ply int) int {
	switch {
	case v >= winBound:
		return v - ply
	case v <= -winBound:
		return v + ply
	}
	return v
}
