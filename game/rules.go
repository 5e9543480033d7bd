package game

import "github.com/pkg/errors"

// Undo records what Place changed so Unplace can restore the board exactly.
type Undo struct {
	Index         int
	Player        Player
	Removed       []int // opponent cells emptied by the move
	prevCurrent   Player
	prevLastMover Player
}

// Captured returns the number of opponent pieces the move removed.
func (u Undo) Captured() int {
	return len(u.Removed)
}

// MoveResult reports the outcome of an applied move.
type MoveResult struct {
	Captured       int
	CapturedCoords []HexCoord
	NewScore       int
	Result         Result
}

// IsLegal reports whether p may place a piece at c.
func (b *Board) IsLegal(p Player, c HexCoord) bool {
	return b.checkLegal(p, c) == nil
}

// IsLegalIndex is IsLegal on a dense index, for the search hot path.
func (b *Board) IsLegalIndex(p Player, i int) bool {
	if b.cells[i] != None || b.inHand[p.index()] <= 0 {
		return false
	}
	return b.flood(i, p, i, MaxCreatureSize).Size() <= MaxCreatureSize
}

func (b *Board) checkLegal(p Player, c HexCoord) error {
	if p != Black && p != White {
		return errors.Wrapf(ErrIllegalMove, "unknown player %v", p)
	}
	i, ok := b.grid.Index(c)
	if !ok {
		return errors.Wrapf(ErrIllegalMove, "%v is off the board", c)
	}
	if b.cells[i] != None {
		return errors.Wrapf(ErrIllegalMove, "cell %v is already occupied", c)
	}
	if b.inHand[p.index()] <= 0 {
		return errors.Wrapf(ErrIllegalMove, "%v has no pieces left", p)
	}
	if size := b.flood(i, p, i, MaxCreatureSize).Size(); size > MaxCreatureSize {
		return errors.Wrapf(ErrIllegalMove, "cannot create creature larger than %d at %v", MaxCreatureSize, c)
	}
	return nil
}

// LegalIndices lists every cell index p may place on, in index order.
func (b *Board) LegalIndices(p Player) []int {
	if b.inHand[p.index()] <= 0 {
		return nil
	}
	out := make([]int, 0, len(b.cells))
	for i := range b.cells {
		if b.IsLegalIndex(p, i) {
			out = append(out, i)
		}
	}
	return out
}

// HasLegalMove reports whether p has at least one legal placement.
func (b *Board) HasLegalMove(p Player) bool {
	if b.inHand[p.index()] <= 0 {
		return false
	}
	for i := range b.cells {
		if b.IsLegalIndex(p, i) {
			return true
		}
	}
	return false
}

// LegalMoves lists every coordinate p may place on.
func LegalMoves(b *Board, p Player) []HexCoord {
	idx := b.LegalIndices(p)
	out := make([]HexCoord, len(idx))
	for k, i := range idx {
		out[k] = b.grid.Coord(i)
	}
	return out
}

// ApplyMove validates and plays p at c on the live board.
func ApplyMove(b *Board, p Player, c HexCoord) (MoveResult, error) {
	if b.Result().Over() {
		return MoveResult{}, ErrGameOver
	}
	if p != b.current {
		return MoveResult{}, errors.Wrapf(ErrIllegalMove, "it is %v's turn, not %v's", b.current, p)
	}
	if err := b.checkLegal(p, c); err != nil {
		return MoveResult{}, err
	}
	i, _ := b.grid.Index(c)
	u := b.Place(p, i)
	coords := make([]HexCoord, len(u.Removed))
	for k, j := range u.Removed {
		coords[k] = b.grid.Coord(j)
	}
	return MoveResult{
		Captured:       u.Captured(),
		CapturedCoords: coords,
		NewScore:       b.Score(p),
		Result:         b.Result(),
	}, nil
}

// Place puts a piece of p on cell i, resolves eating and swarming, credits
// the score and passes the turn. It does not check legality; callers
// generate moves with LegalIndices or validate through ApplyMove.
//
// Captures are judged against the board after placement and before any
// removal, so all marked creatures are removed together.
func (b *Board) Place(p Player, i int) Undo {
	u := Undo{Index: i, Player: p, prevCurrent: b.current, prevLastMover: b.lastMover}
	opp := p.Opponent()

	b.setCell(i, p)
	b.inHand[p.index()]--

	placed := b.flood(i, p, -1, b.grid.Len())
	var marked, examined []int

	// Eating: a creature of size n eats adjacent enemy creatures of size n-1.
	if placed.Size() > 1 {
		for _, cell := range placed.Cells {
			for _, n := range b.grid.neighbors[cell] {
				if b.cells[n] != opp || containsInt(examined, n) {
					continue
				}
				prey := b.flood(n, opp, -1, b.grid.Len())
				examined = append(examined, prey.Cells...)
				if prey.Size() == placed.Size()-1 {
					marked = append(marked, prey.Cells...)
				}
			}
		}
	}

	// Swarming: three singletons around a max-size enemy creature eat it.
	if placed.Size() == 1 {
		for _, n := range b.grid.neighbors[i] {
			if b.cells[n] != opp || containsInt(examined, n) {
				continue
			}
			target := b.flood(n, opp, -1, b.grid.Len())
			examined = append(examined, target.Cells...)
			if target.Size() != MaxCreatureSize {
				continue
			}
			if b.swarmHelpers(target, p, i) >= 2 {
				marked = append(marked, target.Cells...)
			}
		}
	}

	for _, j := range marked {
		// Creatures are disjoint, but never empty a cell twice or one that
		// no longer holds an opponent piece.
		if b.cells[j] != opp {
			continue
		}
		b.setCell(j, None)
		u.Removed = append(u.Removed, j)
	}
	if len(u.Removed) > 0 {
		b.setScore(p, b.score[p.index()]+len(u.Removed))
	}
	b.lastMover = p
	b.setCurrent(opp)
	return u
}

// swarmHelpers counts distinct singleton creatures of p touching target,
// other than the piece just placed at placed.
func (b *Board) swarmHelpers(target Creature, p Player, placed int) int {
	var counted []int
	helpers := 0
	for _, t := range target.Cells {
		for _, h := range b.grid.neighbors[t] {
			if h == placed || b.cells[h] != p || containsInt(counted, h) {
				continue
			}
			counted = append(counted, h)
			if b.flood(h, p, -1, 1).Size() == 1 {
				helpers++
			}
		}
	}
	return helpers
}

// Unplace reverts a Place made on this board. Undos must be applied in
// reverse order of the moves they came from.
func (b *Board) Unplace(u Undo) {
	opp := u.Player.Opponent()
	if n := len(u.Removed); n > 0 {
		b.setScore(u.Player, b.score[u.Player.index()]-n)
		for _, j := range u.Removed {
			b.setCell(j, opp)
		}
	}
	b.setCell(u.Index, None)
	b.inHand[u.Player.index()]++
	b.lastMover = u.prevLastMover
	b.setCurrent(u.prevCurrent)
}

// PreviewCapture returns how many pieces p would capture at i, leaving the
// board unchanged. i must be a legal placement for p.
func (b *Board) PreviewCapture(p Player, i int) int {
	u := b.Place(p, i)
	n := u.Captured()
	b.Unplace(u)
	return n
}
