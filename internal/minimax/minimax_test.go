package minimax

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.X
	o = entity.O
	e = entity.Empty
)

func TestBestMove(t *testing.T) {
	t.Run("Terminal board has no move", func(t *testing.T) {
		// Given: a full board without a winner
		board := entity.Board{{x, o, x}, {x, o, o}, {o, x, x}}

		// When: asking for the best move
		_, ok := BestMove(board)

		// Then: none is returned
		assert.False(t, ok)
	})

	t.Run("Won board has no move", func(t *testing.T) {
		board := entity.Board{{x, x, x}, {o, o, e}, {e, e, e}}

		_, ok := BestMove(board)

		assert.False(t, ok)
	})

	t.Run("X completes the top row", func(t *testing.T) {
		// Given: X holds two cells of the top row and is to move
		board := entity.Board{{x, x, e}, {e, o, e}, {e, e, o}}

		// When: asking for the best move
		action, ok := BestMove(board)

		// Then: X wins immediately
		require.True(t, ok)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, action)
	})

	t.Run("O blocks the threat", func(t *testing.T) {
		// Given: X threatens the top row and O is to move
		board := entity.Board{{x, x, e}, {e, o, e}, {e, e, e}}
		require.Equal(t, o, board.CurrentPlayer())

		// When: asking for the best move
		action, ok := BestMove(board)

		// Then: O takes the only cell that does not lose at once
		require.True(t, ok)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, action)
	})

	t.Run("O wins when it can", func(t *testing.T) {
		// Given: O has two in the middle column while X threatens the first column
		board := entity.Board{{x, o, x}, {x, o, e}, {e, e, e}}

		// When: asking for O's best move
		score, action, ok := Solve(board)

		// Then: O completes the column and the position is worth -1
		require.True(t, ok)
		assert.Equal(t, entity.Action{Row: 2, Col: 1}, action)
		assert.Equal(t, -1, score)
	})
}

func TestSolve_InitialStateIsDraw(t *testing.T) {
	// When: solving the empty board
	score, _, ok := Solve(entity.InitialState())

	// Then: perfect play leads to a draw
	require.True(t, ok)
	assert.Equal(t, 0, score)
}

func TestBestMove_SelfPlayDraws(t *testing.T) {
	// Given: both players always pick the best move
	board := entity.InitialState()

	for !board.IsTerminal() {
		action, ok := BestMove(board)
		require.True(t, ok)

		next, err := board.ApplyMove(action)
		require.NoError(t, err)

		board = next
	}

	// Then: the game ends in a draw
	score, err := board.Utility()
	require.NoError(t, err)
	assert.Equal(t, 0, score, board.String())
}

func TestBestMove_NeverLoses(t *testing.T) {
	// play follows the engine for engineMark and every legal reply for the opponent
	var play func(t *testing.T, board entity.Board, engineMark entity.Mark)
	play = func(t *testing.T, board entity.Board, engineMark entity.Mark) {
		if board.IsTerminal() {
			require.NotEqual(t, engineMark.Opponent(), board.Winner(), board.String())
			return
		}

		if board.CurrentPlayer() == engineMark {
			action, ok := BestMove(board)
			require.True(t, ok)

			next, err := board.ApplyMove(action)
			require.NoError(t, err)

			play(t, next, engineMark)
			return
		}

		for _, action := range board.LegalMoves() {
			next, err := board.ApplyMove(action)
			require.NoError(t, err)

			play(t, next, engineMark)
		}
	}

	t.Run("Engine as X", func(t *testing.T) {
		play(t, entity.InitialState(), entity.X)
	})

	t.Run("Engine as O", func(t *testing.T) {
		play(t, entity.InitialState(), entity.O)
	})
}

func TestBestMove_DoesNotMutateInput(t *testing.T) {
	// Given: a board in the middle of a game
	board := entity.Board{{x, e, e}, {e, o, e}, {e, e, e}}
	snapshot := board

	// When: searching it
	_, ok := BestMove(board)
	require.True(t, ok)

	// Then: the board is unchanged
	assert.Equal(t, snapshot, board)
}

func TestBestMove_TieKeepsFirstMove(t *testing.T) {
	// Given: the initial board, where every opening move draws
	board := entity.InitialState()

	// When: choosing the best move
	action, ok := BestMove(board)

	// Then: the first move in row-major order is kept over later equal ones
	require.True(t, ok)
	assert.Equal(t, entity.Action{Row: 0, Col: 0}, action)
}

func TestSearch_StopsAtImmediateWin(t *testing.T) {
	t.Run("X stops after the winning move", func(t *testing.T) {
		// Given: X to move and (0,2), the first legal move, completes the top row
		var s searcher
		board := entity.Board{{x, x, e}, {e, o, e}, {e, e, o}}

		// When: searching as X
		score, action, ok := s.search(board, true)

		// Then: only the root and the winning child are visited
		require.True(t, ok)
		assert.Equal(t, 1, score)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, action)
		assert.Equal(t, 2, s.nodes)
	})

	t.Run("O stops after the winning move", func(t *testing.T) {
		// Given: O to move and (0,0), the first legal move, completes the top row
		var s searcher
		board := entity.Board{{e, o, o}, {x, e, e}, {e, x, x}}

		// When: searching as O
		score, action, ok := s.search(board, false)

		// Then: only the root and the winning child are visited
		require.True(t, ok)
		assert.Equal(t, -1, score)
		assert.Equal(t, entity.Action{Row: 0, Col: 0}, action)
		assert.Equal(t, 2, s.nodes)
	})

	t.Run("Terminal board counts as one node", func(t *testing.T) {
		var s searcher

		_, _, ok := s.search(entity.Board{{x, x, x}, {o, o, e}, {e, e, e}}, false)

		require.False(t, ok)
		assert.Equal(t, 1, s.nodes)
	})
}

// cancelledContext reports cancellation through Err only, so contexts derived from it never fire.
type cancelledContext struct {
	context.Context
}

func (cancelledContext) Err() error {
	return context.Canceled
}

func TestAnalyze(t *testing.T) {
	t.Run("Every opening move draws", func(t *testing.T) {
		// When: analysing the empty board
		scores, err := Analyze(context.Background(), entity.InitialState())
		require.NoError(t, err)

		// Then: all nine moves are scored 0 in row-major order
		require.Len(t, scores, 9)
		for i, score := range scores {
			assert.Equal(t, 0, score.Score)
			assert.Equal(t, entity.Action{Row: i / 3, Col: i % 3}, score.Action)
		}
	})

	t.Run("Winning move comes first for X", func(t *testing.T) {
		board := entity.Board{{x, x, e}, {e, o, e}, {e, e, o}}

		scores, err := Analyze(context.Background(), board)
		require.NoError(t, err)

		require.Len(t, scores, 5)
		assert.Equal(t, MoveScore{Action: entity.Action{Row: 0, Col: 2}, Score: 1}, scores[0])
	})

	t.Run("Best move comes first for O", func(t *testing.T) {
		board := entity.Board{{x, x, e}, {e, o, e}, {e, e, e}}

		scores, err := Analyze(context.Background(), board)
		require.NoError(t, err)

		assert.Equal(t, entity.Action{Row: 0, Col: 2}, scores[0].Action)
		for _, score := range scores[1:] {
			assert.Equal(t, 1, score.Score)
		}
	})

	t.Run("Terminal board", func(t *testing.T) {
		_, err := Analyze(context.Background(), entity.Board{{x, x, x}, {o, o, e}, {e, e, e}})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Analyze(ctx, entity.InitialState())

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Parent cancelled while moves are scored", func(t *testing.T) {
		// Given: a parent context that is cancelled but whose Done channel never closes
		ctx := cancelledContext{Context: context.Background()}

		// When: every move finishes scoring
		scores, err := Analyze(ctx, entity.Board{{x, x, e}, {e, o, e}, {e, e, o}})

		// Then: the cancellation is still reported instead of partial results
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, scores)
	})
}
