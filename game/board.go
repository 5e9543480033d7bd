package game

import (
	"strings"
	"sync"
)

var (
	gridsMu sync.Mutex
	grids   = map[int]*Grid{}
)

// gridFor returns the shared Grid for a radius.
func gridFor(radius int) *Grid {
	gridsMu.Lock()
	defer gridsMu.Unlock()
	g, ok := grids[radius]
	if !ok {
		g = NewGrid(radius)
		grids[radius] = g
	}
	return g
}

// Board is the mutable state of a game: occupancy, per-player score and
// pieces in hand, the side to move and the player who last placed a piece.
// The set of cells is fixed by the grid; only occupants and counters change.
// The zobrist hash covers occupancy, scores and the side to move and is kept
// current on every mutation.
type Board struct {
	grid      *Grid
	cfg       Config
	cells     []Player
	score     [2]int
	inHand    [2]int
	current   Player
	lastMover Player
	hash      uint64
}

// NewBoard creates an empty board with Black to move.
func NewBoard(cfg Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := gridFor(cfg.Radius)
	b := &Board{
		grid:   g,
		cfg:    cfg,
		cells:  make([]Player, g.Len()),
		inHand: [2]int{cfg.PiecesPerPlayer, cfg.PiecesPerPlayer},
	}
	b.setCurrent(Black)
	return b, nil
}

// NewGame creates the live board for a new game.
func NewGame(radius, winningScore, piecesPerPlayer int) (*Board, error) {
	return NewBoard(Config{Radius: radius, WinningScore: winningScore, PiecesPerPlayer: piecesPerPlayer})
}

// Clone returns an independent copy sharing only the immutable grid.
func (b *Board) Clone() *Board {
	nb := *b
	nb.cells = make([]Player, len(b.cells))
	copy(nb.cells, b.cells)
	return &nb
}

func (b *Board) Grid() *Grid {
	return b.grid
}

func (b *Board) Config() Config {
	return b.cfg
}

// Cell returns the occupant of cell i.
func (b *Board) Cell(i int) Player {
	return b.cells[i]
}

// At returns the occupant at c; ok is false off the board.
func (b *Board) At(c HexCoord) (Player, bool) {
	i, ok := b.grid.Index(c)
	if !ok {
		return None, false
	}
	return b.cells[i], true
}

func (b *Board) Score(p Player) int {
	return b.score[p.index()]
}

func (b *Board) InHand(p Player) int {
	return b.inHand[p.index()]
}

// Current returns the side to move.
func (b *Board) Current() Player {
	return b.current
}

// LastMover returns the player who made the last legal placement, or None.
func (b *Board) LastMover() Player {
	return b.lastMover
}

// Hash returns the zobrist hash of occupancy, scores and side to move.
func (b *Board) Hash() uint64 {
	return b.hash
}

// Count returns the number of cells occupied by p.
func (b *Board) Count(p Player) int {
	n := 0
	for _, s := range b.cells {
		if s == p {
			n++
		}
	}
	return n
}

// Put sets the occupant at c without touching counters or the turn. It is
// meant for constructing positions; games advance through ApplyMove.
func (b *Board) Put(c HexCoord, p Player) bool {
	i, ok := b.grid.Index(c)
	if !ok {
		return false
	}
	b.setCell(i, p)
	return true
}

// SetCurrent sets the side to move (position setup).
func (b *Board) SetCurrent(p Player) {
	b.setCurrent(p)
}

// SetInHand sets the pieces p has left (position setup).
func (b *Board) SetInHand(p Player, n int) {
	b.inHand[p.index()] = n
}

// SetScore sets the score of p (position setup).
func (b *Board) SetScore(p Player, n int) {
	b.setScore(p, n)
}

func (b *Board) setCell(i int, p Player) {
	prev := b.cells[i]
	if prev == p {
		return
	}
	b.hash ^= b.grid.cellKey(i, prev)
	b.cells[i] = p
	b.hash ^= b.grid.cellKey(i, p)
}

func (b *Board) setScore(p Player, n int) {
	k := p.index()
	b.hash ^= scoreKey(p, b.score[k])
	b.score[k] = n
	b.hash ^= scoreKey(p, n)
}

func (b *Board) setCurrent(p Player) {
	b.hash ^= b.grid.sideKey(b.current)
	b.current = p
	b.hash ^= b.grid.sideKey(p)
}

// String renders the board as rows of B/W/. for logs.
func (b *Board) String() string {
	var sb strings.Builder
	r := b.grid.radius
	for row := -r; row <= r; row++ {
		sb.WriteString(strings.Repeat(" ", abs(row)))
		for q := -r; q <= r; q++ {
			i, ok := b.grid.Index(HexCoord{q, row})
			if !ok {
				continue
			}
			switch b.cells[i] {
			case Black:
				sb.WriteString("B ")
			case White:
				sb.WriteString("W ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
