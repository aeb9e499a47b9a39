package engine

import "chess-rules/rules"

// Record is one applied move as a renderer would list it.
type Record struct {
	Ply      int
	Color    rules.Color
	Kind     rules.PieceKind // kind before the move; a promoting pawn stays Pawn here
	From, To rules.Coord

	Captured  rules.PieceKind
	Promotion rules.PieceKind
	Castle    bool
	EnPassant bool
}

// String renders the record as coordinate notation, e.g. "e7e8q".
func (r Record) String() string {
	s := r.From.Square() + r.To.Square()
	if r.Promotion != rules.NoKind {
		s += promotionSuffix[r.Promotion]
	}
	return s
}

var promotionSuffix = map[rules.PieceKind]string{
	rules.Knight: "n",
	rules.Bishop: "b",
	rules.Rook:   "r",
	rules.Queen:  "q",
}

// history is append-only; moves are never taken back.
type history struct {
	records []Record
}

func (h *history) push(color rules.Color, kind rules.PieceKind, res rules.MoveResult) Record {
	rec := Record{
		Ply:       len(h.records) + 1,
		Color:     color,
		Kind:      kind,
		From:      res.From,
		To:        res.To,
		Captured:  res.Captured.Kind,
		Castle:    res.Castle,
		EnPassant: res.EnPassant,
	}
	if res.Promoted {
		rec.Promotion = res.Piece.Kind
	}
	h.records = append(h.records, rec)
	return rec
}

func (h *history) reset() { h.records = h.records[:0] }

// snapshot returns a copy the caller may keep.
func (h *history) snapshot() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}
