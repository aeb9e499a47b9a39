package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// FENStartPos is the FEN string for the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var kindFromFEN = map[chess.PieceType]PieceKind{
	chess.Pawn:   Pawn,
	chess.Knight: Knight,
	chess.Bishop: Bishop,
	chess.Rook:   Rook,
	chess.Queen:  Queen,
	chess.King:   King,
}

// ParseFEN builds a game from a FEN record. Castling rights become unmoved kings and
// rooks, and an en passant target becomes the double step that produced it. The
// record must contain both kings.
func ParseFEN(fen string, opts ...Option) (*Game, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: %q has %d fields", ErrInvalidFEN, fen, len(fields))
	}
	if strings.Count(fields[0], "K") != 1 || strings.Count(fields[0], "k") != 1 {
		return nil, fmt.Errorf("%w: %q needs exactly one king per side", ErrInvalidFEN, fields[0])
	}
	halfmove, fullmove := 0, 1
	var err error
	if len(fields) > 4 {
		if halfmove, err = strconv.Atoi(fields[4]); err != nil || halfmove < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
		}
	}
	if len(fields) > 5 {
		if fullmove, err = strconv.Atoi(fields[5]); err != nil || fullmove < 1 {
			return nil, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
		}
	}
	full := strings.Join(append(fields[:4:4], strconv.Itoa(halfmove), strconv.Itoa(fullmove)), " ")

	load, err := chess.FEN(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(load).Position()

	g := newEmptyGame(opts...)
	g.halfmoveClock = halfmove
	g.fullmoveNumber = fullmove
	for sq, pc := range pos.Board().SquareMap() {
		kind, ok := kindFromFEN[pc.Type()]
		if !ok {
			continue
		}
		color := Light
		if pc.Color() == chess.Black {
			color = Dark
		}
		at := coordFromSquare(sq)
		p := Piece{Kind: kind, Color: color, Pos: at}
		switch kind {
		case Pawn:
			p.HasMoved = at.Row != color.pawnRow()
		case King, Rook:
			// cleared below for pieces that still hold a castling right
			p.HasMoved = true
		}
		g.board.Set(p)
	}
	if !g.board.Validate() {
		return nil, fmt.Errorf("%w: inconsistent placement", ErrInvalidFEN)
	}

	if pos.Turn() == chess.Black {
		g.turn = Dark
	}

	rights := pos.CastleRights()
	for _, color := range []Color{Light, Dark} {
		side := chess.White
		if color == Dark {
			side = chess.Black
		}
		g.grantCastling(color, castleSides[0], rights.CanCastle(side, chess.QueenSide))
		g.grantCastling(color, castleSides[1], rights.CanCastle(side, chess.KingSide))
	}

	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		g.restorePassant(coordFromSquare(ep))
	}
	return g, nil
}

func coordFromSquare(sq chess.Square) Coord {
	return Coord{Row: Size - 1 - int(sq.Rank()), Col: int(sq.File())}
}

// grantCastling marks the king and the rook of one side as unmoved when the right is held.
func (g *Game) grantCastling(color Color, side castleSide, allowed bool) {
	if !allowed {
		return
	}
	row := color.homeRow()
	king, ok := g.board.At(Coord{Row: row, Col: kingCol})
	if !ok || king.Kind != King || king.Color != color {
		return
	}
	rook, ok := g.board.At(Coord{Row: row, Col: side.rookFrom})
	if !ok || rook.Kind != Rook || rook.Color != color {
		return
	}
	king.HasMoved = false
	rook.HasMoved = false
	g.board.Set(king)
	g.board.Set(rook)
}

// restorePassant rebuilds the double step that left target behind.
func (g *Game) restorePassant(target Coord) {
	mover := g.turn.Opponent()
	at := target.add(mover.forward(), 0)
	origin := target.add(-mover.forward(), 0)
	pawn, ok := g.board.At(at)
	if !ok || pawn.Kind != Pawn || pawn.Color != mover || origin.Row != mover.pawnRow() {
		return
	}
	g.lastMove = LastMove{Piece: pawn, Origin: origin, Valid: true}
}

// canCastle reports whether the side still holds the castling right, i.e. its king
// and the rook on that side are both unmoved on their home squares.
func (g *Game) canCastle(color Color, side castleSide) bool {
	row := color.homeRow()
	king, ok := g.board.At(Coord{Row: row, Col: kingCol})
	if !ok || king.Kind != King || king.Color != color || king.HasMoved {
		return false
	}
	rook, ok := g.board.At(Coord{Row: row, Col: side.rookFrom})
	return ok && rook.Kind == Rook && rook.Color == color && !rook.HasMoved
}

const fenPieces = "pnbrqk"

func fenChar(p Piece) byte {
	ch := fenPieces[p.Kind-1]
	if p.Color == Light {
		ch -= 'a' - 'A'
	}
	return ch
}

// ToFEN renders the game as a FEN record.
func (g *Game) ToFEN() string {
	var sb strings.Builder

	for row := 0; row < Size; row++ {
		empty := 0
		for col := 0; col < Size; col++ {
			p := g.board.squares[row][col]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(fenChar(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if row < Size-1 {
			sb.WriteByte('/')
		}
	}

	if g.turn == Light {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	rights := 0
	for _, r := range []struct {
		color Color
		side  castleSide
		ch    byte
	}{
		{Light, castleSides[1], 'K'},
		{Light, castleSides[0], 'Q'},
		{Dark, castleSides[1], 'k'},
		{Dark, castleSides[0], 'q'},
	} {
		if g.canCastle(r.color, r.side) {
			sb.WriteByte(r.ch)
			rights++
		}
	}
	if rights == 0 {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	if last := g.lastMove; last.twoStepPawn(last.Piece.Color) {
		sb.WriteString(Coord{Row: (last.Origin.Row + last.Piece.Pos.Row) / 2, Col: last.Origin.Col}.Square())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.fullmoveNumber))
	return sb.String()
}
