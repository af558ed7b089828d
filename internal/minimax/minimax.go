// Package minimax chooses optimal tic-tac-toe moves by exhaustive game-tree search.
package minimax

import (
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const (
	maxScore = 1
	minScore = -1
)

// BestMove - returns the optimal action for the player to move, or false when the board is terminal.
func BestMove(board entity.Board) (entity.Action, bool) {
	_, action, ok := Solve(board)

	return action, ok
}

// Solve - returns the minimax value of the board from X's point of view and the move achieving it.
// ok is false exactly when the board is terminal.
func Solve(board entity.Board) (int, entity.Action, bool) {
	var s searcher

	return s.search(board, board.CurrentPlayer() == entity.X)
}

// searcher counts the boards it visits.
type searcher struct {
	nodes int
}

// search plays X's side when maximizing and O's side otherwise. The role flips at every ply.
// The first strictly better move is kept, and scanning stops once the bound for the side is reached.
func (that *searcher) search(board entity.Board, maximizing bool) (int, entity.Action, bool) {
	that.nodes++

	if board.IsTerminal() {
		return board.Winner().Score(), entity.Action{}, false
	}

	best, bound := maxScore+1, minScore
	if maximizing {
		best, bound = minScore-1, maxScore
	}

	var bestAction entity.Action
	for _, action := range board.LegalMoves() {
		// the cell is Empty by construction, so ApplyMove cannot fail here
		child, _ := board.ApplyMove(action)

		score, _, _ := that.search(child, !maximizing)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best, bestAction = score, action
			if best == bound {
				break
			}
		}
	}

	return best, bestAction, true
}
