package rules_test

import (
	"testing"

	"chess-rules/rules"
)

func TestPerftInitialPosition(t *testing.T) {
	g := rules.NewGame(rules.WithStrictKingSafety())
	want := []uint64{1, 20, 400, 8902}
	for depth, n := range want {
		if got := rules.Perft(g, depth); got != n {
			t.Fatalf("perft depth%d: got %d want %d", depth, got, n)
		}
	}
	if g.ToFEN() != rules.FENStartPos {
		t.Fatalf("perft mutated the game: %s", g.ToFEN())
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	g := rules.NewGame(rules.WithStrictKingSafety())
	div := rules.PerftDivide(g, 2)
	if len(div) != 20 {
		t.Fatalf("divide root moves: got %d want 20", len(div))
	}
	var total uint64
	for move, n := range div {
		if n != 20 {
			t.Errorf("%s: got %d replies want 20", move, n)
		}
		total += n
	}
	if total != 400 {
		t.Fatalf("divide total: got %d want 400", total)
	}
	if _, ok := div["g1f3"]; !ok {
		t.Fatalf("divide keys should use square names, got %v", div)
	}
	if len(rules.PerftDivide(g, 0)) != 0 {
		t.Fatalf("divide at depth 0 must be empty")
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	g := mustFEN(t, fen, rules.WithStrictCastling(), rules.WithStrictKingSafety())
	if got := rules.Perft(g, 1); got != 48 {
		t.Fatalf("Kiwipete depth1: got %d want 48 (%v)", got, rules.PerftDivide(g, 1))
	}
	if testing.Short() {
		t.Skip("skipping Kiwipete depth2 in short mode")
	}
	if got := rules.Perft(g, 2); got != 2039 {
		t.Fatalf("Kiwipete depth2: got %d want 2039", got)
	}
}

func TestPerftEndgame(t *testing.T) {
	g := mustFEN(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", rules.WithStrictKingSafety())
	if got := rules.Perft(g, 1); got != 14 {
		t.Fatalf("position 3 depth1: got %d want 14", got)
	}
	if got := rules.Perft(g, 2); got != 191 {
		t.Fatalf("position 3 depth2: got %d want 191", got)
	}
}

func TestPerftInCheck(t *testing.T) {
	g := mustFEN(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", rules.WithStrictKingSafety())
	if got := rules.Perft(g, 1); got != 6 {
		t.Fatalf("position 4 depth1: got %d want 6 (%v)", got, rules.PerftDivide(g, 1))
	}
}
