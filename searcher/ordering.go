package searcher

import (
	"creatures/game"

	"golang.org/x/exp/slices"
)

// historyCeiling caps a history score so long searches cannot overflow it.
const historyCeiling = 1 << 20

// killerTable keeps the two most recent cutoff moves per ply.
type killerTable struct {
	moves [][2]int
}

func (k *killerTable) reset() {
	k.moves = k.moves[:0]
}

func (k *killerTable) add(ply, move int) {
	for len(k.moves) <= ply {
		k.moves = append(k.moves, [2]int{-1, -1})
	}
	slot := &k.moves[ply]
	if slot[0] == move {
		return
	}
	slot[1] = slot[0]
	slot[0] = move
}

// rank returns 2 for the primary killer at ply, 1 for the secondary, else 0.
func (k *killerTable) rank(ply, move int) int {
	if ply >= len(k.moves) {
		return 0
	}
	switch move {
	case k.moves[ply][0]:
		return 2
	case k.moves[ply][1]:
		return 1
	}
	return 0
}

// historyTable accumulates depth^2 per (player, cell) on every cutoff.
type historyTable struct {
	scores [2][]int
}

func (h *historyTable) reset(cells int) {
	for p := range h.scores {
		if cap(h.scores[p]) < cells {
			h.scores[p] = make([]int, cells)
			continue
		}
		h.scores[p] = h.scores[p][:cells]
		clear(h.scores[p])
	}
}

func (h *historyTable) add(p game.Player, move, depth int) {
	s := &h.scores[p.Index()][move]
	*s = min(*s+depth*depth, historyCeiling)
}

func (h *historyTable) get(p game.Player, move int) int {
	return h.scores[p.Index()][move]
}

type scoredMove struct {
	move  int
	score int
}

// candidate holds the ordering keys of one move, most significant first.
type candidate struct {
	move      int
	ttMove    bool
	heuristic int // capture size, then centrality
	history   int
	killer    int
}

func compareCandidates(x, y candidate) int {
	switch {
	case x.ttMove != y.ttMove:
		if x.ttMove {
			return -1
		}
		return 1
	case x.heuristic != y.heuristic:
		return y.heuristic - x.heuristic
	case x.history != y.history:
		return y.history - x.history
	}
	return y.killer - x.killer
}

// orderMoves sorts moves best first from the mover's point of view: the
// transposition table's move, then the fast heuristic (immediate capture
// size, then centrality), then history weight, then killer rank at ply.
// The sort is stable so equal moves keep board order and the search stays
// deterministic.
func (e *Engine) orderMoves(b *game.Board, mover game.Player, moves []int, ply, ttMove int) []int {
	g := b.Grid()
	// Any capture outranks the most central quiet move.
	captureWeight := g.Radius() + 1
	candidates := make([]candidate, len(moves))
	for k, m := range moves {
		candidates[k] = candidate{
			move:      m,
			ttMove:    m == ttMove,
			heuristic: b.PreviewCapture(mover, m)*captureWeight + g.Radius() - g.Ring(m),
			history:   e.history.get(mover, m),
			killer:    e.killers.rank(ply, m),
		}
	}
	slices.SortStableFunc(candidates, compareCandidates)
	out := make([]int, len(candidates))
	for k, c := range candidates {
		out[k] = c.move
	}
	return out
}
