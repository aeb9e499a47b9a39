package rules

import "errors"

var (
	ErrNoPieceAtOrigin    = errors.New("no piece at origin")
	ErrWrongTurn          = errors.New("not this side's turn")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
	ErrInvalidFEN         = errors.New("invalid FEN")
)
