package minimax

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// MoveScore is the minimax value reached by playing Action, from X's point of view.
type MoveScore struct {
	Action entity.Action `json:"action"`
	Score  int           `json:"score"`
}

// Analyze - scores every legal move of a non-terminal board. Each root move is searched
// in its own goroutine; the result is ordered best-first for the player to move.
func Analyze(ctx context.Context, board entity.Board) ([]MoveScore, error) {
	if board.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameFinished, board)
	}

	moves := board.LegalMoves()
	scores := make([]MoveScore, len(moves))
	maximizing := board.CurrentPlayer() == entity.X

	g, groupCtx := errgroup.WithContext(ctx)
	for i, action := range moves {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return fmt.Errorf("analysis of %s cancelled: %w", action, err)
			}

			child, err := board.ApplyMove(action)
			if err != nil {
				return fmt.Errorf("failed to apply %s: %w", action, err)
			}

			var s searcher
			score, _, _ := s.search(child, !maximizing)
			scores[i] = MoveScore{Action: action, Score: score}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	slices.SortStableFunc(scores, func(a, b MoveScore) int {
		if maximizing {
			return b.Score - a.Score
		}
		return a.Score - b.Score
	})

	return scores, nil
}
