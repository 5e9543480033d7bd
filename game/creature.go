package game

// Creature is a maximal group of same-owner cells connected through hex
// adjacency. It is derived from the board, never stored.
type Creature struct {
	Owner Player
	Cells []int // member indices, in discovery order
}

func (c Creature) Size() int {
	return len(c.Cells)
}

// Contains reports whether cell i belongs to the creature.
func (c Creature) Contains(i int) bool {
	return containsInt(c.Cells, i)
}

// Coords maps the member indices back to coordinates.
func (c Creature) Coords(g *Grid) []HexCoord {
	out := make([]HexCoord, len(c.Cells))
	for k, i := range c.Cells {
		out[k] = g.Coord(i)
	}
	return out
}

// CreatureAt returns the creature containing c. An empty or off-board
// coordinate yields a size 0 creature.
func (b *Board) CreatureAt(c HexCoord) Creature {
	i, ok := b.grid.Index(c)
	if !ok {
		return Creature{}
	}
	return b.CreatureAtIndex(i)
}

// HypotheticalCreatureAt returns the creature that would contain c if p
// placed a piece there. The board is not modified.
func (b *Board) HypotheticalCreatureAt(c HexCoord, p Player) Creature {
	i, ok := b.grid.Index(c)
	if !ok || p == None {
		return Creature{}
	}
	return b.flood(i, p, i, b.grid.Len())
}

func (b *Board) CreatureAtIndex(i int) Creature {
	owner := b.cells[i]
	if owner == None {
		return Creature{}
	}
	return b.flood(i, owner, -1, b.grid.Len())
}

// Creatures partitions all pieces of p into creatures.
func (b *Board) Creatures(p Player) []Creature {
	var out []Creature
	seen := make([]bool, len(b.cells))
	for i, s := range b.cells {
		if s != p || seen[i] {
			continue
		}
		cr := b.flood(i, p, -1, b.grid.Len())
		for _, j := range cr.Cells {
			seen[j] = true
		}
		out = append(out, cr)
	}
	return out
}

// flood collects the creature of owner containing start by breadth-first
// search. Cell hypo (if >= 0) counts as owned by owner regardless of its
// occupant. The search stops early once the creature exceeds limit cells, so
// callers only checking a size bound never walk a large group.
//
// Membership is a linear scan of the result; creatures stay tiny under the rules.
func (b *Board) flood(start int, owner Player, hypo int, limit int) Creature {
	if start != hypo && b.cells[start] != owner {
		return Creature{Owner: owner}
	}
	cells := make([]int, 1, MaxCreatureSize+2)
	cells[0] = start
	guard := b.grid.Len()
	for head := 0; head < len(cells) && len(cells) <= limit && head < guard; head++ {
		for _, n := range b.grid.neighbors[cells[head]] {
			if n == hypo || b.cells[n] != owner || containsInt(cells, n) {
				continue
			}
			cells = append(cells, n)
		}
	}
	return Creature{Owner: owner, Cells: cells}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
