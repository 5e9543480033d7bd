package eval

import "creatures/game"

func (e *Evaluator) compositionScore(b *game.Board, p game.Player) int {
	score := 0
	for _, cr := range e.creaturesOf(b, p) {
		size := min(cr.Size(), len(e.weights.Composition)-1)
		score += e.weights.Composition[size]
	}
	return score
}

// centerScore sums how many rings each piece of p sits inside the edge.
func centerScore(b *game.Board, p game.Player) int {
	g := b.Grid()
	score := 0
	for i := 0; i < g.Len(); i++ {
		if b.Cell(i) == p {
			score += g.Radius() - g.Ring(i)
		}
	}
	return score
}

// territory counts the distinct empty or enemy cells bordering p's pieces.
func territory(b *game.Board, p game.Player) int {
	g := b.Grid()
	seen := make([]bool, g.Len())
	n := 0
	for i := 0; i < g.Len(); i++ {
		if b.Cell(i) != p {
			continue
		}
		for _, j := range g.Neighbors(i) {
			if !seen[j] && b.Cell(j) != p {
				seen[j] = true
				n++
			}
		}
	}
	return n
}

// connectivity is the sum of squared creature sizes.
func (e *Evaluator) connectivity(b *game.Board, p game.Player) int {
	n := 0
	for _, cr := range e.creaturesOf(b, p) {
		n += cr.Size() * cr.Size()
	}
	return n
}

// chainSetups counts creatures of size 2 or 3 that p can still legally grow.
func (e *Evaluator) chainSetups(b *game.Board, p game.Player) int {
	if b.InHand(p) == 0 {
		return 0
	}
	g := b.Grid()
	n := 0
	for _, cr := range e.creaturesOf(b, p) {
		if cr.Size() < 2 || cr.Size() >= game.MaxCreatureSize {
			continue
		}
	grow:
		for _, i := range cr.Cells {
			for _, j := range g.Neighbors(i) {
				if b.IsLegalIndex(p, j) {
					n++
					break grow
				}
			}
		}
	}
	return n
}

// swarmExposure rates p's max-size creatures by the enemy singletons already
// around them: 3 for two or more (one placement from capture), 1 for one.
func (e *Evaluator) swarmExposure(b *game.Board, p game.Player) int {
	opp := p.Opponent()
	if b.InHand(opp) == 0 {
		return 0
	}
	g := b.Grid()
	exposure := 0
	for _, cr := range e.creaturesOf(b, p) {
		if cr.Size() != game.MaxCreatureSize {
			continue
		}
		var counted []int
		singletons := 0
		for _, i := range cr.Cells {
			for _, j := range g.Neighbors(i) {
				if b.Cell(j) != opp || contains(counted, j) {
					continue
				}
				counted = append(counted, j)
				if b.CreatureAtIndex(j).Size() == 1 {
					singletons++
				}
			}
		}
		switch {
		case singletons >= 2:
			exposure += 3
		case singletons == 1:
			exposure++
		}
	}
	return exposure
}

// moveFeatures summarizes one side's immediate tactical options.
type moveFeatures struct {
	captureMoves  int
	bestCapture   int
	forks         int // captures taking two or more creatures at once
	breakthroughs int // captures played into three or more enemy pieces
}

// scanMoves tries every legal placement of p on b and undoes it.
func scanMoves(b *game.Board, p game.Player) moveFeatures {
	var f moveFeatures
	opp := p.Opponent()
	g := b.Grid()
	for _, i := range b.LegalIndices(p) {
		u := b.Place(p, i)
		b.Unplace(u)
		n := u.Captured()
		if n == 0 {
			continue
		}
		f.captureMoves++
		f.bestCapture = max(f.bestCapture, n)
		if distinctCreatures(b, u.Removed) >= 2 {
			f.forks++
		}
		enemies := 0
		for _, j := range g.Neighbors(i) {
			if b.Cell(j) == opp {
				enemies++
			}
		}
		if enemies >= 3 {
			f.breakthroughs++
		}
	}
	return f
}

// distinctCreatures counts the creatures the given occupied cells belong to.
func distinctCreatures(b *game.Board, cells []int) int {
	var covered []int
	n := 0
	for _, c := range cells {
		if contains(covered, c) {
			continue
		}
		covered = append(covered, b.CreatureAtIndex(c).Cells...)
		n++
	}
	return n
}

// defenseScore weighs winning threats: a side that can reach the winning
// score with its next capture. A threat held by the side to move counts in
// full; one the opponent can still block counts a quarter.
func (e *Evaluator) defenseScore(b *game.Board, p game.Player, mine, theirs moveFeatures) int {
	if e.weights.Defense == 0 {
		return 0
	}
	return e.threat(b, p, mine) - e.threat(b, p.Opponent(), theirs)
}

func (e *Evaluator) threat(b *game.Board, p game.Player, f moveFeatures) int {
	if f.bestCapture == 0 || b.Score(p)+f.bestCapture < b.Config().WinningScore {
		return 0
	}
	if b.Current() == p {
		return e.weights.Defense
	}
	return e.weights.Defense / 4
}

// lookahead folds the side to move's best immediate capture into the score.
func (e *Evaluator) lookahead(b *game.Board, p game.Player, mine, theirs moveFeatures) int {
	d := e.weights.LookaheadDiscount
	if d <= 0 {
		return 0
	}
	if b.Current() == p {
		return int(d * float64(mine.bestCapture*e.weights.Capture))
	}
	return -int(d * float64(theirs.bestCapture*e.weights.Capture))
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
