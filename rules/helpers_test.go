package rules_test

import (
	"testing"

	"chess-rules/rules"
)

// sq converts an algebraic square name such as "e2" to a board coordinate.
func sq(name string) rules.Coord {
	return rules.Coord{Row: rules.Size - int(name[1]-'0'), Col: int(name[0] - 'a')}
}

func mustFEN(t *testing.T, fen string, opts ...rules.Option) *rules.Game {
	t.Helper()
	g, err := rules.ParseFEN(fen, opts...)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return g
}

func mustMove(t *testing.T, g *rules.Game, from, to string, opts ...rules.MoveOption) {
	t.Helper()
	if err := g.ApplyMove(sq(from), sq(to), opts...); err != nil {
		t.Fatalf("move %s%s: %v", from, to, err)
	}
}

// countLegal sums the legal destinations of every piece of color.
func countLegal(g *rules.Game, color rules.Color) int {
	board := g.Board()
	n := 0
	for _, p := range board.Pieces(color) {
		n += g.LegalMoves(p.Pos).Len()
	}
	return n
}

func squares(set rules.CoordSet) []string {
	out := make([]string, 0, set.Len())
	for _, c := range set.Sorted() {
		out = append(out, c.Square())
	}
	return out
}

func hasAll(set rules.CoordSet, names ...string) bool {
	for _, name := range names {
		if !set.Has(sq(name)) {
			return false
		}
	}
	return true
}
