package engine

import "chess-rules/rules"

// Status summarizes the position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

var statusNames = [...]string{"ongoing", "check", "checkmate", "stalemate"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Over reports whether no further moves are possible.
func (s Status) Over() bool { return s == Checkmate || s == Stalemate }

// statusOf tells checkmate from stalemate by asking whether the side to move is attacked.
func statusOf(g *rules.Game) Status {
	inCheck := g.InCheck(g.Turn())
	switch {
	case g.HasAnyLegalMove(g.Turn()):
		if inCheck {
			return Check
		}
		return Ongoing
	case inCheck:
		return Checkmate
	default:
		return Stalemate
	}
}
