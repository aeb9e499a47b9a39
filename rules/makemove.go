package rules

import "fmt"

// MoveOption adjusts how a single move is applied.
type MoveOption func(*moveOptions)

type moveOptions struct {
	promotion PieceKind
}

func defaultMoveOptions() moveOptions { return moveOptions{promotion: Queen} }

// WithPromotion selects the piece a pawn becomes on the last rank. The default is Queen.
func WithPromotion(kind PieceKind) MoveOption {
	return func(o *moveOptions) { o.promotion = kind }
}

// MoveResult describes what a successful move did to the board.
type MoveResult struct {
	Piece    Piece // the moved piece after the move
	From, To Coord

	Captured   Piece // empty when nothing was taken
	CapturedAt Coord

	EnPassant bool
	Castle    bool
	Promoted  bool
}

// ApplyMove validates and plays the move from -> to for the side to move.
// On error the game is left untouched.
func (g *Game) ApplyMove(from, to Coord, opts ...MoveOption) error {
	_, err := g.Move(from, to, opts...)
	return err
}

// Move is ApplyMove that also reports the side effects of the move.
func (g *Game) Move(from, to Coord, opts ...MoveOption) (MoveResult, error) {
	mo := defaultMoveOptions()
	for _, opt := range opts {
		opt(&mo)
	}
	switch mo.promotion {
	case Knight, Bishop, Rook, Queen:
	default:
		return MoveResult{}, fmt.Errorf("%w: %s", ErrInvalidPromotion, mo.promotion)
	}

	p, ok := g.board.At(from)
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrNoPieceAtOrigin, from)
	}
	if p.Color != g.turn {
		return MoveResult{}, fmt.Errorf("%w: %s, %s to move", ErrWrongTurn, p, g.turn)
	}
	if !g.LegalMoves(from).Has(to) {
		return MoveResult{}, fmt.Errorf("%w: %s to %s", ErrIllegalDestination, p, to)
	}
	return g.commit(from, to, mo), nil
}

// commit plays an already validated move: captures, en passant removal, promotion,
// rook relocation for castling, last-move bookkeeping and the turn swap.
func (g *Game) commit(from, to Coord, mo moveOptions) MoveResult {
	orig, _ := g.board.At(from)
	res := MoveResult{From: from, To: to, CapturedAt: to}
	if captured, ok := g.board.At(to); ok {
		res.Captured = captured
	}

	p := orig
	p.HasMoved = true
	p.Pos = to

	switch {
	case orig.Kind == Pawn && from.Col != to.Col && res.Captured.Empty() && passantVictim(&g.board, g.lastMove, orig, to.Col):
		victimAt := Coord{Row: from.Row, Col: to.Col}
		res.Captured, _ = g.board.At(victimAt)
		res.CapturedAt = victimAt
		res.EnPassant = true
		g.board.Clear(victimAt)
	case orig.Kind == Pawn && to.Row == orig.Color.promotionRow():
		p.Kind = mo.promotion
		res.Promoted = true
	}

	if orig.Kind == King && abs(to.Col-from.Col) == 2 {
		res.Castle = g.moveCastlingRook(to)
	}

	g.lastMove = LastMove{Piece: p, Origin: from, Valid: true}
	g.board.Clear(from)
	g.board.Set(p)

	if orig.Kind == Pawn || !res.Captured.Empty() {
		g.halfmoveClock = 0
	} else {
		g.halfmoveClock++
	}
	if g.turn == Dark {
		g.fullmoveNumber++
	}
	g.turn = g.turn.Opponent()

	res.Piece = p
	return res
}

// moveCastlingRook relocates the rook that belongs to a king landing on kingTo.
func (g *Game) moveCastlingRook(kingTo Coord) bool {
	for _, side := range castleSides {
		if kingTo.Col != side.kingTo {
			continue
		}
		rookFrom := Coord{Row: kingTo.Row, Col: side.rookFrom}
		rook, ok := g.board.At(rookFrom)
		if !ok {
			return false
		}
		g.board.Clear(rookFrom)
		rook.Pos = Coord{Row: kingTo.Row, Col: side.rookTo}
		rook.HasMoved = true
		g.board.Set(rook)
		return true
	}
	return false
}
