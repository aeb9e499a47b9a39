// Package rules implements the move generation and legality engine for an 8x8 chess
// board: pseudo-legal generators per piece kind, attack detection, the king-safety
// filter, and the move executor that applies castling, en passant and promotion.
//
// A Game is an ordinary value owned by its caller. It is not safe for concurrent use;
// embedders that share one game between goroutines must serialize access themselves.
package rules

// Option configures a new Game.
type Option func(*options)

type options struct {
	strictCastling   bool
	strictKingSafety bool
}

// WithStrictCastling forbids castling out of check or across an attacked square.
// Without it only the king's destination square is verified.
func WithStrictCastling() Option {
	return func(o *options) { o.strictCastling = true }
}

// WithStrictKingSafety counts both pawn diagonals as attacked (and never the push) and
// rejects a king destination that is attacked once the king stands on it. Without it
// a king destination is only checked against the current board.
func WithStrictKingSafety() Option {
	return func(o *options) { o.strictKingSafety = true }
}

// Game is the authoritative state of one game: board, side to move and the last move.
type Game struct {
	board    Board
	turn     Color
	lastMove LastMove

	// simulating is set on scratch copies used for king-safety checks. The copy
	// tests its king through isLegal, which skips the simulation while it is set.
	simulating bool

	halfmoveClock  int
	fullmoveNumber int

	opts options
}

var backRank = [Size]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewGame returns a game in the standard starting position with Light to move.
func NewGame(opts ...Option) *Game {
	g := newEmptyGame(opts...)
	for col := 0; col < Size; col++ {
		for _, color := range []Color{Light, Dark} {
			g.board.Set(Piece{Kind: backRank[col], Color: color, Pos: Coord{Row: color.homeRow(), Col: col}})
			g.board.Set(Piece{Kind: Pawn, Color: color, Pos: Coord{Row: color.pawnRow(), Col: col}})
		}
	}
	return g
}

func newEmptyGame(opts ...Option) *Game {
	g := &Game{turn: Light, fullmoveNumber: 1}
	for _, opt := range opts {
		opt(&g.opts)
	}
	return g
}

// Clone returns an independent copy of the game. No cell is shared with g.
func (g *Game) Clone() *Game {
	c := *g
	return &c
}

// Board returns a copy of the current board.
func (g *Game) Board() Board { return g.board }

// Turn reports the side to move.
func (g *Game) Turn() Color { return g.turn }

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() LastMove { return g.lastMove }

// HalfmoveClock counts half-moves since the last capture or pawn move.
func (g *Game) HalfmoveClock() int { return g.halfmoveClock }

// FullmoveNumber starts at 1 and increments after Dark moves.
func (g *Game) FullmoveNumber() int { return g.fullmoveNumber }

// StrictCastling reports whether the game was created WithStrictCastling.
func (g *Game) StrictCastling() bool { return g.opts.strictCastling }

// StrictKingSafety reports whether the game was created WithStrictKingSafety.
func (g *Game) StrictKingSafety() bool { return g.opts.strictKingSafety }

// PieceAt returns the piece on c, if any.
func (g *Game) PieceAt(c Coord) (Piece, bool) { return g.board.At(c) }
