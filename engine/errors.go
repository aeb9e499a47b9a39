package engine

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid session config")
	ErrGameOver      = errors.New("game is over")
)
