package rules

// Precomputed jump targets for knights and kings from each square.
var knightTargets [Size * Size][]Coord
var kingTargets [Size * Size][]Coord

// Precomputed slider rays. For each square and direction, the squares along that
// ray ordered outward, excluding the origin.
// Directions: 0=up 1=down 2=right 3=left (rook), 4..7 diagonals (bishop).
var rays [Size * Size][8][]Coord

var rayDirs = [8][2]int{
	{-1, 0}, {1, 0}, {0, 1}, {0, -1},
	{-1, 1}, {-1, -1}, {1, 1}, {1, -1},
}

var (
	rookDirs   = []int{0, 1, 2, 3}
	bishopDirs = []int{4, 5, 6, 7}
	queenDirs  = []int{0, 1, 2, 3, 4, 5, 6, 7}
)

// kingCol is the column both kings start on; castling is only offered from it.
const kingCol = 4

type castleSide struct {
	rookFrom, kingTo, rookTo int
}

var castleSides = [2]castleSide{
	{rookFrom: 0, kingTo: 2, rookTo: 3}, // queenside
	{rookFrom: 7, kingTo: 6, rookTo: 5}, // kingside
}

func init() {
	initJumpTables()
	initRays()
}

// initJumpTables precomputes knight and king targets for every square.
func initJumpTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := Coord{Row: row, Col: col}
			for _, off := range knightOffsets {
				if to := from.add(off[0], off[1]); to.InBounds() {
					knightTargets[from.index()] = append(knightTargets[from.index()], to)
				}
			}
			for _, off := range kingOffsets {
				if to := from.add(off[0], off[1]); to.InBounds() {
					kingTargets[from.index()] = append(kingTargets[from.index()], to)
				}
			}
		}
	}
}

// initRays walks each direction from every square to the board edge.
func initRays() {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := Coord{Row: row, Col: col}
			for d, dir := range rayDirs {
				var ray []Coord
				for to := from.add(dir[0], dir[1]); to.InBounds(); to = to.add(dir[0], dir[1]) {
					ray = append(ray, to)
				}
				rays[from.index()][d] = ray
			}
		}
	}
}

// pseudoMoves returns every destination consistent with p's movement pattern and the
// board occupancy, without regard to the safety of p's own king.
func pseudoMoves(b *Board, last LastMove, p Piece) CoordSet {
	moves := make(CoordSet, 16)
	switch p.Kind {
	case Pawn:
		pawnMoves(b, last, p, moves)
	case Knight:
		jumpMoves(b, p, knightTargets[p.Pos.index()], moves)
	case Bishop:
		slideMoves(b, p, bishopDirs, moves)
	case Rook:
		slideMoves(b, p, rookDirs, moves)
	case Queen:
		slideMoves(b, p, queenDirs, moves)
	case King:
		jumpMoves(b, p, kingTargets[p.Pos.index()], moves)
		castleMoves(b, p, moves)
	}
	return moves
}

// slideMoves walks each ray until the edge or the first occupied square, which is
// included only when it holds an enemy piece.
func slideMoves(b *Board, p Piece, dirs []int, moves CoordSet) {
	for _, d := range dirs {
		for _, to := range rays[p.Pos.index()][d] {
			target, ok := b.At(to)
			if !ok {
				moves.Add(to)
				continue
			}
			if target.Color != p.Color {
				moves.Add(to)
			}
			break
		}
	}
}

func jumpMoves(b *Board, p Piece, targets []Coord, moves CoordSet) {
	for _, to := range targets {
		if target, ok := b.At(to); ok && target.Color == p.Color {
			continue
		}
		moves.Add(to)
	}
}

// castleMoves offers the two-square king move toward an unmoved rook of the same
// color when every square between them is empty. Attacks on the path are not
// considered here.
func castleMoves(b *Board, p Piece, moves CoordSet) {
	if p.HasMoved || p.Pos.Col != kingCol {
		return
	}
	row := p.Pos.Row
	for _, side := range castleSides {
		rook, ok := b.At(Coord{Row: row, Col: side.rookFrom})
		if !ok || rook.Kind != Rook || rook.Color != p.Color || rook.HasMoved {
			continue
		}
		if !b.rowClear(row, p.Pos.Col, side.rookFrom) {
			continue
		}
		moves.Add(Coord{Row: row, Col: side.kingTo})
	}
}

// rowClear reports whether every square strictly between columns a and c on row is empty.
func (b *Board) rowClear(row, a, c int) bool {
	if a > c {
		a, c = c, a
	}
	for col := a + 1; col < c; col++ {
		if b.occupied(Coord{Row: row, Col: col}) {
			return false
		}
	}
	return true
}

func pawnMoves(b *Board, last LastMove, p Piece, moves CoordSet) {
	dir := p.Color.forward()

	one := p.Pos.add(dir, 0)
	if one.InBounds() && !b.occupied(one) {
		moves.Add(one)
		two := one.add(dir, 0)
		if !p.HasMoved && p.Pos.Row == p.Color.pawnRow() && two.InBounds() && !b.occupied(two) {
			moves.Add(two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		diag := p.Pos.add(dir, dc)
		if !diag.InBounds() {
			continue
		}
		if target, ok := b.At(diag); ok {
			if target.Color != p.Color {
				moves.Add(diag)
			}
			continue
		}
		if passantVictim(b, last, p, diag.Col) {
			moves.Add(diag)
		}
	}
}

// passantVictim reports whether the enemy pawn that just double-stepped stands
// beside p on col, so p may capture it en passant.
func passantVictim(b *Board, last LastMove, p Piece, col int) bool {
	if p.Kind != Pawn || p.Pos.Row != p.Color.passantRow() {
		return false
	}
	enemy := p.Color.Opponent()
	if !last.twoStepPawn(enemy) {
		return false
	}
	beside := Coord{Row: p.Pos.Row, Col: col}
	if last.Piece.Pos != beside {
		return false
	}
	victim, ok := b.At(beside)
	return ok && victim.Kind == Pawn && victim.Color == enemy
}

// PseudoLegalMoves returns the destinations of the piece on at, ignoring king
// safety. The set is empty when at is vacant.
func (g *Game) PseudoLegalMoves(at Coord) CoordSet {
	p, ok := g.board.At(at)
	if !ok {
		return CoordSet{}
	}
	return pseudoMoves(&g.board, g.lastMove, p)
}
