package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// MakeTurn - applies a move for the given mark and updates the game status.
func MakeTurn(game *entity.Game, mark entity.Mark, action entity.Action) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateTurn(game, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	board, err := game.Board.ApplyMove(action)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board = board
	game.UpdateGameState()

	return nil
}

// validateTurn - checks that mark is the player the board expects to move.
func validateTurn(game *entity.Game, mark entity.Mark) error {
	if mark != entity.X && mark != entity.O {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidMark, mark)
	}

	if game.Board.CurrentPlayer() != mark {
		return apperror.ErrNotYourTurn
	}

	return nil
}
