package rules

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Size is the number of rows and columns on the board.
const Size = 8

// Color identifies the side owning a piece.
type Color uint8

const (
	Light Color = 0
	Dark  Color = 1
)

// Opponent returns the other side.
func (c Color) Opponent() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Light {
		return "light"
	}
	return "dark"
}

// forward is the row delta of a pawn advance. Light moves toward row 0.
func (c Color) forward() int {
	if c == Light {
		return -1
	}
	return 1
}

// homeRow is the back rank the side starts on.
func (c Color) homeRow() int {
	if c == Light {
		return Size - 1
	}
	return 0
}

// pawnRow is the row pawns start on and may double-step from.
func (c Color) pawnRow() int {
	if c == Light {
		return Size - 2
	}
	return 1
}

// passantRow is the row a pawn must stand on to capture en passant.
func (c Color) passantRow() int {
	if c == Light {
		return 3
	}
	return 4
}

// promotionRow is the opponent's back rank.
func (c Color) promotionRow() int { return c.Opponent().homeRow() }

// PieceKind is a colorless piece type. The zero value marks an empty square.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Coord is a board square addressed by row and column, both in [0, Size).
// Row 0 is Dark's back rank.
type Coord struct {
	Row, Col int
}

// InBounds reports whether the coordinate lies on the board.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.Row, c.Col) }

// Square returns the algebraic square name, e.g. row 6 col 4 is "e2".
func (c Coord) Square() string {
	if !c.InBounds() {
		return "-"
	}
	return string([]byte{'a' + byte(c.Col), '1' + byte(Size-1-c.Row)})
}

func (c Coord) add(dr, dc int) Coord { return Coord{Row: c.Row + dr, Col: c.Col + dc} }

func (c Coord) index() int { return c.Row*Size + c.Col }

// Piece is a single piece together with its position and movement history.
type Piece struct {
	Kind     PieceKind
	Color    Color
	HasMoved bool
	Pos      Coord
}

// Empty reports whether p describes no piece at all.
func (p Piece) Empty() bool { return p.Kind == NoKind }

func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s at %s", p.Color, p.Kind, p.Pos)
}

// Board is the 8x8 grid. It is a plain value: assigning a Board copies every cell.
type Board struct {
	squares [Size][Size]Piece
}

// At returns the piece on c, if any.
func (b *Board) At(c Coord) (Piece, bool) {
	if !c.InBounds() {
		return Piece{}, false
	}
	p := b.squares[c.Row][c.Col]
	return p, !p.Empty()
}

// occupied reports whether an on-board square holds a piece.
func (b *Board) occupied(c Coord) bool { return !b.squares[c.Row][c.Col].Empty() }

// Set places p on p.Pos, replacing whatever stood there. It reports false and leaves
// the board unchanged when p.Pos is off the board.
func (b *Board) Set(p Piece) bool {
	if !p.Pos.InBounds() {
		return false
	}
	b.squares[p.Pos.Row][p.Pos.Col] = p
	return true
}

// Clear removes any piece from c. Off-board coordinates are ignored.
func (b *Board) Clear(c Coord) {
	if !c.InBounds() {
		return
	}
	b.squares[c.Row][c.Col] = Piece{}
}

// Pieces returns the pieces of one color in row-major order.
func (b *Board) Pieces(color Color) []Piece {
	out := make([]Piece, 0, 16)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.squares[row][col]
			if !p.Empty() && p.Color == color {
				out = append(out, p)
			}
		}
	}
	return out
}

// King returns the king of the given color.
func (b *Board) King(color Color) (Piece, bool) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.squares[row][col]
			if p.Kind == King && p.Color == color {
				return p, true
			}
		}
	}
	return Piece{}, false
}

// Validate checks that every occupied cell stores its own coordinate and that each
// side has at most one king.
func (b *Board) Validate() bool {
	var kings [2]int
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.squares[row][col]
			if p.Empty() {
				continue
			}
			if p.Pos != (Coord{Row: row, Col: col}) {
				return false
			}
			if p.Color > Dark || p.Kind > King {
				return false
			}
			if p.Kind == King {
				kings[p.Color]++
			}
		}
	}
	return kings[Light] <= 1 && kings[Dark] <= 1
}

// CoordSet is an unordered set of squares.
type CoordSet map[Coord]struct{}

// Add inserts c into the set.
func (s CoordSet) Add(c Coord) { s[c] = struct{}{} }

// Has reports membership.
func (s CoordSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of squares in the set.
func (s CoordSet) Len() int { return len(s) }

// Sorted returns the members ordered by row, then column.
func (s CoordSet) Sorted() []Coord {
	out := maps.Keys(s)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// LastMove records the most recently moved piece (after the move) and where it came from.
// It only authorizes en passant.
type LastMove struct {
	Piece  Piece
	Origin Coord
	Valid  bool
}

// twoStepPawn reports whether the last move was a pawn double step by color.
func (m LastMove) twoStepPawn(color Color) bool {
	if !m.Valid || m.Piece.Kind != Pawn || m.Piece.Color != color {
		return false
	}
	return m.Origin.Row == color.pawnRow() && m.Piece.Pos.Row == color.pawnRow()+2*color.forward() && m.Origin.Col == m.Piece.Pos.Col
}
