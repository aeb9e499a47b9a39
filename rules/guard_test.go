package rules

import "testing"

func mustParse(t *testing.T, fen string, opts ...Option) *Game {
	t.Helper()
	g, err := ParseFEN(fen, opts...)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return g
}

func TestSimulatingCopySkipsKingSafety(t *testing.T) {
	g := mustParse(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	bishop := Coord{Row: 6, Col: 4}
	if n := g.LegalMoves(bishop).Len(); n != 0 {
		t.Fatalf("pinned bishop has %d legal moves", n)
	}

	sim := g.Clone()
	sim.simulating = true
	if got, want := sim.LegalMoves(bishop).Len(), pseudoMoves(&sim.board, sim.lastMove, sim.board.squares[6][4]).Len(); got != want || got == 0 {
		t.Fatalf("simulating copy should accept every pseudo-legal move: got %d want %d", got, want)
	}
}

func TestKingSafetySimulationLeavesGameUntouched(t *testing.T) {
	g := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := *g
	for _, p := range g.board.Pieces(g.turn) {
		g.LegalMoves(p.Pos)
	}
	g.HasAnyLegalMove(Dark)
	if *g != before {
		t.Fatalf("legality queries mutated the game")
	}
	if g.simulating {
		t.Fatalf("the authoritative game must never be marked as simulating")
	}
}

func TestExposesKingUsesIndependentCopy(t *testing.T) {
	g := NewGame()
	from, to := Coord{Row: 6, Col: 4}, Coord{Row: 4, Col: 4}
	if g.exposesKing(g.board.squares[6][4], to) {
		t.Fatalf("e2e4 does not expose the king")
	}
	if _, ok := g.board.At(from); !ok {
		t.Fatalf("simulation moved the real pawn")
	}
	if g.turn != Light || g.lastMove.Valid {
		t.Fatalf("simulation leaked turn or last move into the game")
	}
}

// A simulating copy finds threats to a king through isLegal, and must agree with
// the attack detector because the target square is occupied by that king.
func TestThreatensAgreesWithInCheck(t *testing.T) {
	fens := []string{
		FENStartPos,
		"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
		"4r2k/8/8/8/8/8/3B4/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/3p4/4K3 w - - 0 1",
		"7k/8/8/8/8/3n4/8/4K3 w - - 0 1",
		"7k/6Q1/8/8/8/2B5/8/6K1 b - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, fen := range fens {
		for _, strict := range []bool{false, true} {
			var opts []Option
			if strict {
				opts = append(opts, WithStrictKingSafety())
			}
			g := mustParse(t, fen, opts...)
			sim := g.Clone()
			sim.simulating = true
			for _, color := range []Color{Light, Dark} {
				king, ok := g.board.King(color)
				if !ok {
					t.Fatalf("%s: no %v king", fen, color)
				}
				if got, want := sim.threatens(color.Opponent(), king.Pos), g.InCheck(color); got != want {
					t.Errorf("%s strict=%v: threatens(%v king) = %v, InCheck = %v", fen, strict, color, got, want)
				}
			}
		}
	}
}

func TestExposesKingDiscoveredByEnPassant(t *testing.T) {
	g := mustParse(t, "7k/8/8/KPp4r/8/8/8/8 w - c6 0 1")
	pawn := g.board.squares[3][1]
	if !g.exposesKing(pawn, Coord{Row: 2, Col: 2}) {
		t.Fatalf("bxc6 e.p. opens the fifth rank to the h5 rook")
	}
	if g.exposesKing(pawn, Coord{Row: 2, Col: 1}) {
		t.Fatalf("b6 keeps the c5 pawn between the rook and the king")
	}
	if g.simulating {
		t.Fatalf("exposesKing must only mark its copy")
	}
}

func TestTwoStepPawn(t *testing.T) {
	g := NewGame()
	if err := g.ApplyMove(Coord{Row: 6, Col: 3}, Coord{Row: 4, Col: 3}); err != nil {
		t.Fatal(err)
	}
	if !g.lastMove.twoStepPawn(Light) || g.lastMove.twoStepPawn(Dark) {
		t.Fatalf("d2d4 should be recorded as a light double step: %+v", g.lastMove)
	}
	if err := g.ApplyMove(Coord{Row: 1, Col: 0}, Coord{Row: 2, Col: 0}); err != nil {
		t.Fatal(err)
	}
	if g.lastMove.twoStepPawn(Dark) {
		t.Fatalf("a7a6 is a single step")
	}
}

func TestRaysAndJumpTables(t *testing.T) {
	corner := Coord{Row: 7, Col: 0}
	if n := len(knightTargets[corner.index()]); n != 2 {
		t.Fatalf("knight on a1 has %d targets, want 2", n)
	}
	if n := len(kingTargets[corner.index()]); n != 3 {
		t.Fatalf("king on a1 has %d targets, want 3", n)
	}
	// up from a1 walks to a8
	if n := len(rays[corner.index()][0]); n != 7 {
		t.Fatalf("ray up from a1 has %d squares, want 7", n)
	}
	if n := len(rays[corner.index()][5]); n != 0 {
		t.Fatalf("up-left from a1 should be empty, got %d", n)
	}
}
