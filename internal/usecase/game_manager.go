package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

// Solution describes a board as seen by the search engine.
type Solution struct {
	Move     *entity.Action
	Score    int
	Terminal bool
	Winner   entity.Mark
}

type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	botService botService
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, botService botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		botService: botService,
	}
}

// StartGame - creates a game against the bot. When the bot holds X it opens immediately.
func (that *GameManager) StartGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game started", "gameID", game.ID, "humanMark", humanMark)

	return game, nil
}

// GetGame - returns an in-progress game.
func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human's move and lets the bot answer. A finished game is
// removed from storage and its final state returned.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, action entity.Action) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = tictactoe.MakeTurn(game, game.HumanMark, action); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsOngoing() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if game.IsFinished() {
		that.deleteGame(ctx, game)

		return game, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Hint - returns the best move for the human in an ongoing game.
func (that *GameManager) Hint(ctx context.Context, gameID string) (entity.Action, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return entity.Action{}, err
	}

	if game.Turn() != game.HumanMark {
		return entity.Action{}, apperror.ErrNotYourTurn
	}

	action, ok := minimax.BestMove(game.Board)
	if !ok {
		return entity.Action{}, apperror.ErrGameFinished
	}

	return action, nil
}

// Solve - runs the search on an arbitrary, validated board.
func (that *GameManager) Solve(board entity.Board) (*Solution, error) {
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("failed validate board: %w", err)
	}

	solution := &Solution{
		Terminal: board.IsTerminal(),
		Winner:   board.Winner(),
	}

	score, action, ok := minimax.Solve(board)
	solution.Score = score
	if ok {
		solution.Move = &action
	}

	return solution, nil
}

// Analyze - scores every legal move of an arbitrary, validated board.
func (that *GameManager) Analyze(ctx context.Context, board entity.Board) ([]minimax.MoveScore, error) {
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("failed validate board: %w", err)
	}

	scores, err := minimax.Analyze(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed analyze board: %w", err)
	}

	return scores, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
	}

	log.Info("game finished", "winner", game.Winner, "board", game.Board.String())
}
