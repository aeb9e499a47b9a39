package rules

// IsAttacked reports whether any piece of the side opposing defending could move onto
// target, i.e. target is among its pseudo-legal moves. Kings are never counted as
// attackers: a king's own move generation depends on attack detection, so letting
// kings attack would recurse.
//
// A pawn therefore attacks the square in front of it when that square is empty, and a
// diagonal only when a piece of defending stands there (or en passant applies). Games
// created WithStrictKingSafety count both diagonals instead and never the push.
func (g *Game) IsAttacked(target Coord, defending Color) bool {
	return g.attacked(&g.board, target, defending)
}

// InCheck reports whether color's king is attacked. A side without a king is never in check.
func (g *Game) InCheck(color Color) bool {
	king, ok := g.board.King(color)
	if !ok {
		return false
	}
	return g.attacked(&g.board, king.Pos, color)
}

func (g *Game) attacked(b *Board, target Coord, defending Color) bool {
	return isAttacked(b, g.lastMove, target, defending, g.opts.strictKingSafety)
}

func isAttacked(b *Board, last LastMove, target Coord, defending Color, diagonalPawns bool) bool {
	if !target.InBounds() {
		return false
	}
	attacker := defending.Opponent()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.squares[row][col]
			if p.Empty() || p.Color != attacker || p.Kind == King {
				continue
			}
			if p.Kind == Pawn && diagonalPawns {
				if pawnAttacks(p, target) {
					return true
				}
				continue
			}
			if pseudoMoves(b, last, p).Has(target) {
				return true
			}
		}
	}
	return false
}

// pawnAttacks reports whether target is one of the two diagonal squares p captures on.
func pawnAttacks(p Piece, target Coord) bool {
	return target.Row == p.Pos.Row+p.Color.forward() && abs(target.Col-p.Pos.Col) == 1
}
