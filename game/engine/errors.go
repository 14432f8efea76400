package engine

import "errors"

var (
	ErrInvalidSwap     = errors.New("invalid swap")
	ErrEngineBusy      = errors.New("engine busy")
	ErrGameOver        = errors.New("game over")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrBoardGeneration = errors.New("could not generate a match-free board")
)
