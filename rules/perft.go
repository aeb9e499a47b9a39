package rules

// Perft counts the legal move sequences of the given depth from g.
func Perft(g *Game, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var nodes uint64
	for _, p := range g.board.Pieces(g.turn) {
		for to := range g.LegalMoves(p.Pos) {
			if depth == 1 {
				nodes++
				continue
			}
			child := g.Clone()
			child.commit(p.Pos, to, defaultMoveOptions())
			nodes += Perft(child, depth-1)
		}
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move, keyed by the
// from and to square names (e.g. "e2e4"). Useful for debugging.
func PerftDivide(g *Game, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, p := range g.board.Pieces(g.turn) {
		for to := range g.LegalMoves(p.Pos) {
			child := g.Clone()
			child.commit(p.Pos, to, defaultMoveOptions())
			result[p.Pos.Square()+to.Square()] = Perft(child, depth-1)
		}
	}
	return result
}
