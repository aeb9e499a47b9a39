package rules

// LegalMoves returns the squares the piece on at may move to without leaving its own
// king attacked. The set is empty when at is vacant.
func (g *Game) LegalMoves(at Coord) CoordSet {
	p, ok := g.board.At(at)
	if !ok {
		return CoordSet{}
	}
	legal := make(CoordSet, 16)
	for to := range pseudoMoves(&g.board, g.lastMove, p) {
		g.insertIfValid(p, to, legal)
	}
	return legal
}

// HasAnyLegalMove reports whether color has at least one legal move. False means
// checkmate or stalemate; InCheck tells the two apart.
func (g *Game) HasAnyLegalMove(color Color) bool {
	for _, p := range g.board.Pieces(color) {
		for to := range pseudoMoves(&g.board, g.lastMove, p) {
			if g.isLegal(p, to) {
				return true
			}
		}
	}
	return false
}

// InCheckmate reports whether the side to move is checkmated.
func (g *Game) InCheckmate() bool {
	return g.InCheck(g.turn) && !g.HasAnyLegalMove(g.turn)
}

// InStalemate reports whether the side to move has no legal move but is not in check.
func (g *Game) InStalemate() bool {
	return !g.InCheck(g.turn) && !g.HasAnyLegalMove(g.turn)
}

func (g *Game) insertIfValid(p Piece, to Coord, moves CoordSet) {
	if g.isLegal(p, to) {
		moves.Add(to)
	}
}

// isLegal filters one pseudo-legal candidate: on the board, not the piece's own
// square, not a friendly piece, and not leaving the mover's king attacked.
func (g *Game) isLegal(p Piece, to Coord) bool {
	if !to.InBounds() || to == p.Pos {
		return false
	}
	if target, ok := g.board.At(to); ok && target.Color == p.Color {
		return false
	}
	if p.Kind == King {
		return !g.kingDestinationAttacked(p, to)
	}
	if g.simulating {
		return true
	}
	return !g.exposesKing(p, to)
}

// kingDestinationAttacked rejects a destination that is attacked on the current
// board. With strict king safety it also rejects one that is attacked once the king
// stands on it, so the king can neither retreat along the line that attacks it nor
// take a defended piece. Strict castling adds the king's square and the transit square.
func (g *Game) kingDestinationAttacked(k Piece, to Coord) bool {
	if g.attacked(&g.board, to, k.Color) {
		return true
	}
	strict := g.opts.strictKingSafety
	if strict && g.kingAttackedOn(k, to) {
		return true
	}
	if !g.opts.strictCastling || abs(to.Col-k.Pos.Col) != 2 {
		return false
	}
	transit := Coord{Row: k.Pos.Row, Col: (k.Pos.Col + to.Col) / 2}
	if g.attacked(&g.board, k.Pos, k.Color) || g.attacked(&g.board, transit, k.Color) {
		return true
	}
	return strict && g.kingAttackedOn(k, transit)
}

func (g *Game) kingAttackedOn(k Piece, sq Coord) bool {
	scratch := g.board
	scratch.Clear(k.Pos)
	k.Pos = sq
	scratch.Set(k)
	return g.attacked(&scratch, sq, k.Color)
}

// exposesKing plays the move on a scratch copy marked as simulating and reports
// whether the mover's king is then threatened.
func (g *Game) exposesKing(p Piece, to Coord) bool {
	sim := g.Clone()
	sim.simulating = true
	sim.commit(p.Pos, to, defaultMoveOptions())
	king, ok := sim.board.King(p.Color)
	if !ok {
		return false
	}
	return sim.threatens(p.Color.Opponent(), king.Pos)
}

// threatens reports whether a non-king piece of attacker has a candidate onto target
// that passes isLegal. Called on simulating copies only, where isLegal accepts
// non-king moves without simulating again.
func (g *Game) threatens(attacker Color, target Coord) bool {
	for _, q := range g.board.Pieces(attacker) {
		if q.Kind == King {
			continue
		}
		if pseudoMoves(&g.board, g.lastMove, q).Has(target) && g.isLegal(q, target) {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
