package game

// Player identifies a side, or the absence of one on an empty cell.
type Player int8

const (
	None Player = iota
	Black
	White
)

// Players lists both sides in turn order.
var Players = [2]Player{Black, White}

func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return None
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "None"
}

// index maps Black/White to 0/1 for per-player arrays.
func (p Player) index() int {
	if p == White {
		return 1
	}
	return 0
}

// Index is the exported form of index for packages keeping per-player tables.
func (p Player) Index() int {
	return p.index()
}
