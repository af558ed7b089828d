package apperror

import "errors"

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrOutOfRange   = errors.New("coordinate out of range")
	ErrNotTerminal  = errors.New("board is not terminal")
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMark  = errors.New("invalid mark")

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameNotFound = errors.New("game not found")
)
