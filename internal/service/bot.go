package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// MakeTurn - plays the optimal move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) error {
	score, action, ok := minimax.Solve(game.Board)
	if !ok {
		return ErrNoAvailableMoves
	}

	if err := tictactoe.MakeTurn(game, game.BotMark, action); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot moved", "gameID", game.ID, "mark", game.BotMark, "action", action, "score", score)

	return nil
}
