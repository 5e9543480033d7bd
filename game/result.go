package game

import "fmt"

type Status int8

const (
	Ongoing Status = iota
	Won
	EndedNoMoves
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case EndedNoMoves:
		return "ended-no-moves"
	}
	return "ongoing"
}

// Result describes whether a game is over and who won it.
type Result struct {
	Status Status
	Winner Player // None while ongoing or for a drawn ending
	Stuck  Player // side to move without a legal placement, for EndedNoMoves
	// TieBreak is set when scores were level and the last mover was awarded the game.
	TieBreak bool
}

// Over reports whether the game has ended.
func (r Result) Over() bool {
	return r.Status != Ongoing
}

func (r Result) String() string {
	if !r.Over() {
		return "ongoing"
	}
	var msg string
	switch {
	case r.Winner == None:
		msg = "Draw."
	case r.TieBreak:
		msg = fmt.Sprintf("%v wins by tie-breaker (last move).", r.Winner)
	default:
		msg = fmt.Sprintf("%v wins!", r.Winner)
	}
	if r.Status == EndedNoMoves {
		return fmt.Sprintf("%v has no legal moves. %s", r.Stuck, msg)
	}
	return msg
}

// Result applies the game-over rule to the board as it stands: a player at
// or above the winning score ends the game at once; otherwise the game ends
// when the side to move has no legal placement. Either way the higher score
// wins and a level score goes to the player who made the last placement.
func (b *Board) Result() Result {
	win := b.cfg.WinningScore
	if b.score[0] >= win || b.score[1] >= win {
		w, tie := b.leader()
		return Result{Status: Won, Winner: w, TieBreak: tie}
	}
	if b.HasLegalMove(b.current) {
		return Result{Status: Ongoing}
	}
	w, tie := b.leader()
	return Result{Status: EndedNoMoves, Winner: w, Stuck: b.current, TieBreak: tie}
}

func (b *Board) leader() (Player, bool) {
	switch {
	case b.score[0] > b.score[1]:
		return Black, false
	case b.score[1] > b.score[0]:
		return White, false
	}
	return b.lastMover, b.lastMover != None
}

// Terminal reports whether the position ends the game.
func (b *Board) Terminal() bool {
	return b.Result().Over()
}

// GameResult is the package-level form of Board.Result.
func GameResult(b *Board) Result {
	return b.Result()
}
