// Package eval scores positions for the search, from one player's perspective.
package eval

import (
	"time"

	"creatures/cache"
	"creatures/game"

	"golang.org/x/exp/rand"
)

// WinScore saturates the score of a decided game.
const WinScore = 1_000_000

const DefaultCacheCapacity = 1 << 16

// Distinguish perspective and table in cache keys derived from the board hash.
var (
	perspectiveKeys = [2]uint64{0x5D588B656C078965, 0x8BB84B93962EACC9}
	creatureKeys    = [2]uint64{0x2545F4914F6CDD1D, 0xD1342543DE82EF95}
)

type Option func(e *Evaluator)

func WithWeights(w Weights) Option {
	return func(e *Evaluator) {
		e.weights = w
	}
}

// WithSeed makes the jitter reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Evaluator) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithCacheCapacity(capacity int) Option {
	return func(e *Evaluator) {
		if capacity > 0 {
			e.capacity = capacity
		}
	}
}

// Evaluator scores boards for one tier. It memoizes scores and creature
// partitions by board hash, so it must not be shared between goroutines.
type Evaluator struct {
	tier      Tier
	weights   Weights
	rng       *rand.Rand
	capacity  int
	scores    *cache.Bounded[uint64, int]
	creatures *cache.Bounded[uint64, []game.Creature]
}

func New(tier Tier, options ...Option) *Evaluator {
	e := &Evaluator{ // Default values
		tier:     tier,
		weights:  DefaultWeights(tier),
		capacity: DefaultCacheCapacity,
	}
	for _, option := range options {
		option(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	e.scores = cache.NewBounded[uint64, int](e.capacity)
	e.creatures = cache.NewBounded[uint64, []game.Creature](e.capacity)
	return e
}

// Evaluate scores b for the given tier with a fresh, seeded evaluator.
func Evaluate(b *game.Board, p game.Player, tier Tier) int {
	return New(tier, WithSeed(uint64(tier))).Evaluate(b, p)
}

func (e *Evaluator) Tier() Tier {
	return e.tier
}

func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Reset drops all memoized scores and creatures.
func (e *Evaluator) Reset() {
	e.scores.Clear()
	e.creatures.Clear()
}

// CacheStats reports the score and creature cache counters.
func (e *Evaluator) CacheStats() (scores, creatures cache.Stats) {
	return e.scores.Stats(), e.creatures.Stats()
}

// Evaluate returns how good b is for p; higher is better. Decided games
// saturate to +/-WinScore. b is left unchanged.
func (e *Evaluator) Evaluate(b *game.Board, p game.Player) int {
	key := b.Hash() ^ perspectiveKeys[p.Index()]
	if v, ok := e.scores.Get(key); ok {
		return v
	}
	v := e.evaluate(b, p)
	e.scores.Put(key, v)
	return v
}

func (e *Evaluator) evaluate(b *game.Board, p game.Player) int {
	opp := p.Opponent()
	w := e.weights
	diff := b.Score(p) - b.Score(opp)

	if r := b.Result(); r.Over() {
		return terminalScore(r, p, diff)
	}

	score := diff * w.Capture
	if w.Composition != [5]int{} {
		score += e.compositionScore(b, p) - e.compositionScore(b, opp)
	}
	if w.Center != 0 {
		score += w.Center * (centerScore(b, p) - centerScore(b, opp))
	}
	if w.Territory != 0 {
		score += w.Territory * (territory(b, p) - territory(b, opp))
	}
	if w.Connectivity != 0 {
		score += w.Connectivity * (e.connectivity(b, p) - e.connectivity(b, opp))
	}
	if w.Chain != 0 {
		score += w.Chain * (e.chainSetups(b, p) - e.chainSetups(b, opp))
	}
	if w.SwarmThreat != 0 {
		score -= w.SwarmThreat * (e.swarmExposure(b, p) - e.swarmExposure(b, opp)) / 3
	}
	if w.needsScan() {
		mine, theirs := scanMoves(b, p), scanMoves(b, opp)
		score += w.Opportunity * (mine.captureMoves - theirs.captureMoves)
		score += w.Fork * (mine.forks - theirs.forks)
		score += w.Breakthrough * (mine.breakthroughs - theirs.breakthroughs)
		score += e.defenseScore(b, p, mine, theirs)
		score += e.lookahead(b, p, mine, theirs)
	}
	if w.Jitter > 0 {
		score += e.rng.Intn(2*w.Jitter+1) - w.Jitter
	}
	return score
}

func (w Weights) needsScan() bool {
	return w.Opportunity != 0 || w.Fork != 0 || w.Breakthrough != 0 || w.Defense != 0 || w.LookaheadDiscount > 0
}

// terminalScore prefers larger winning margins and smaller losing ones.
func terminalScore(r game.Result, p game.Player, diff int) int {
	switch r.Winner {
	case p:
		return WinScore + diff
	case game.None:
		return 0
	}
	return -WinScore + diff
}

// creaturesOf returns the memoized creature partition of p. The slice is shared.
func (e *Evaluator) creaturesOf(b *game.Board, p game.Player) []game.Creature {
	key := b.Hash() ^ creatureKeys[p.Index()]
	if crs, ok := e.creatures.Get(key); ok {
		return crs
	}
	crs := b.Creatures(p)
	e.creatures.Put(key, crs)
	return crs
}
