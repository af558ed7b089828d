package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// WinLines lists every line of three cells, scanned rows first, then columns, then diagonals.
var WinLines = [8][3]Action{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// CurrentPlayer - X when both players have placed the same number of marks, O otherwise.
func (that Board) CurrentPlayer() Mark {
	if that.Count(X) == that.Count(O) {
		return X
	}

	return O
}

// Winner - returns the mark owning a complete line, or Empty if there is none.
// A malformed board with several complete lines reports the last one in WinLines order.
func (that Board) Winner() Mark {
	winner := Empty
	for _, line := range WinLines {
		a := that[line[0].Row][line[0].Col]
		b := that[line[1].Row][line[1].Col]
		c := that[line[2].Row][line[2].Col]
		if a != Empty && a == b && b == c {
			winner = a
		}
	}

	return winner
}

// IsFull - true when no cell is Empty.
func (that Board) IsFull() bool {
	return that.Count(Empty) == 0
}

// IsTerminal - true when a line is complete or the board is full.
func (that Board) IsTerminal() bool {
	return that.Winner() != Empty || that.IsFull()
}

// Utility - scores a terminal board from X's point of view: +1, -1 or 0.
func (that Board) Utility() (int, error) {
	if !that.IsTerminal() {
		return 0, fmt.Errorf("%w: %s", apperror.ErrNotTerminal, that)
	}

	return that.Winner().Score(), nil
}

// Score - +1 for X, -1 for O, 0 for Empty.
func (that Mark) Score() int {
	switch that {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}
