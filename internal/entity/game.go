package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is a session between a human and the bot. Whose turn it is
// is never stored; it follows from the board.
type Game struct {
	ID        string `json:"id"`
	Board     Board  `json:"board"`
	Status    string `json:"status"`
	Winner    Mark   `json:"winner"`
	HumanMark Mark   `json:"human_mark"`
	BotMark   Mark   `json:"bot_mark"`
}

func NewGame(id string, humanMark Mark) (*Game, error) {
	if humanMark != X && humanMark != O {
		return nil, fmt.Errorf("%w: human must play X or O", apperror.ErrInvalidMark)
	}

	return &Game{
		ID:        id,
		Board:     InitialState(),
		Status:    StatusOngoing,
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
	}, nil
}

// Turn - the mark expected to move next, or Empty once the game is over.
func (that *Game) Turn() Mark {
	if that.IsFinished() {
		return Empty
	}

	return that.Board.CurrentPlayer()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.Turn() == that.BotMark
}

// UpdateGameState - marks the game finished once the board is terminal.
func (that *Game) UpdateGameState() {
	if !that.Board.IsTerminal() {
		that.Status = StatusOngoing
		return
	}

	that.Status = StatusFinished
	that.Winner = that.Board.Winner()
}
