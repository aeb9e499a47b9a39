package engine

import (
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"

	"chess-rules/rules"
)

// Session owns one game and serializes every access to it. It is the unit a
// server hands to one player pair; the rules.Game inside is never shared.
type Session struct {
	mu      sync.Mutex
	cfg     Config
	game    *rules.Game
	history history
	status  Status
	log     log.Interface
}

// Snapshot is a read-only copy of what a renderer needs.
type Snapshot struct {
	Board  rules.Board
	Turn   rules.Color
	Status Status
	FEN    string
	Ply    int
}

// NewSession validates cfg and starts a game. A nil logger logs text to stderr at
// cfg.LogLevel.
func NewSession(cfg Config, logger log.Interface) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &log.Logger{
			Handler: text.New(os.Stderr),
			Level:   log.MustParseLevel(cfg.LogLevel),
		}
	}
	s := &Session{cfg: cfg, log: logger}
	if err := s.start(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) start() error {
	g, err := s.cfg.newGame()
	if err != nil {
		return err
	}
	s.game = g
	s.history.reset()
	s.status = statusOf(g)
	s.log.WithFields(log.Fields{
		"fen":                g.ToFEN(),
		"strict_castling":    g.StrictCastling(),
		"strict_king_safety": g.StrictKingSafety(),
		"status":             s.status,
	}).Info("game started")
	return nil
}

// Reset discards the current game and starts over from the configured position.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start()
}

// Move plays from -> to for the side to move. promo selects the promotion piece;
// rules.NoKind means the default queen. A rejected move leaves the session unchanged.
func (s *Session) Move(from, to rules.Coord, promo rules.PieceKind) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.log.WithFields(log.Fields{
		"from": from.Square(),
		"to":   to.Square(),
		"turn": s.game.Turn(),
	})
	if s.status.Over() {
		ctx.WithField("status", s.status).Warn("move after game over")
		return Record{}, ErrGameOver
	}

	var opts []rules.MoveOption
	if promo != rules.NoKind {
		opts = append(opts, rules.WithPromotion(promo))
	}
	mover := s.game.Turn()
	res, err := s.game.Move(from, to, opts...)
	if err != nil {
		ctx.WithError(err).Warn("move rejected")
		return Record{}, err
	}

	kind := res.Piece.Kind
	if res.Promoted {
		kind = rules.Pawn
	}
	rec := s.history.push(mover, kind, res)
	ctx.WithFields(log.Fields{
		"ply":      rec.Ply,
		"move":     rec.String(),
		"piece":    rec.Kind,
		"captured": rec.Captured,
	}).Info("move applied")

	if st := statusOf(s.game); st != s.status {
		s.status = st
		s.log.WithFields(log.Fields{
			"status": st,
			"turn":   s.game.Turn(),
		}).Info("status changed")
	}
	return rec, nil
}

// LegalMoves returns the legal destinations of the piece on at.
func (s *Session) LegalMoves(at rules.Coord) rules.CoordSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalMoves(at)
}

// IsAttacked reports whether target is attacked by the side opposing defending.
func (s *Session) IsAttacked(target rules.Coord, defending rules.Color) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.IsAttacked(target, defending)
}

// Status reports the state of the side to move.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Snapshot copies the board and the turn for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Board:  s.game.Board(),
		Turn:   s.game.Turn(),
		Status: s.status,
		FEN:    s.game.ToFEN(),
		Ply:    len(s.history.records),
	}
}

// History returns the moves applied since the session (re)started.
func (s *Session) History() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.snapshot()
}
