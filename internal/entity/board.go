package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const BoardSize = 3

// Mark is the value held by a single cell. The zero value is Empty.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (that Mark) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

// ParseMark - converts "X", "O" or "" into a Mark.
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X":
		return X, nil
	case "O":
		return O, nil
	case "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

// Action is a (row, column) coordinate of the cell to fill.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a 3x3 grid. It is an array, so every assignment and every
// function argument is a copy; nothing ever writes through to a predecessor.
type Board [BoardSize][BoardSize]Mark

// UnmarshalJSON - decodes exactly three rows of three cells. Arrays of any other shape are
// rejected instead of being truncated or padded.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if len(rows) != BoardSize {
		return fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidBoard, BoardSize, len(rows))
	}

	var board Board
	for i, row := range rows {
		if len(row) != BoardSize {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", apperror.ErrInvalidBoard, i, len(row), BoardSize)
		}
		copy(board[i][:], row)
	}

	*that = board

	return nil
}

// InitialState - returns the all-Empty board.
func InitialState() Board {
	return Board{}
}

// CellAt - returns the mark at the given coordinate.
func (that Board) CellAt(action Action) (Mark, error) {
	if !action.InRange() {
		return Empty, fmt.Errorf("%w: %s", apperror.ErrOutOfRange, action)
	}

	return that[action.Row][action.Col], nil
}

// ApplyMove - returns a new board with the target cell set to the current player's mark.
// The receiver is left untouched.
func (that Board) ApplyMove(action Action) (Board, error) {
	mark, err := that.CellAt(action)
	if err != nil {
		return that, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	if mark != Empty {
		return that, fmt.Errorf("%w: cell %s is occupied by %s", apperror.ErrInvalidMove, action, mark)
	}

	next := that
	next[action.Row][action.Col] = that.CurrentPlayer()

	return next, nil
}

// LegalMoves - returns every coordinate whose cell is Empty, in row-major order.
// Callers must not rely on the order.
func (that Board) LegalMoves() []Action {
	moves := make([]Action, 0, BoardSize*BoardSize)
	for row := range BoardSize {
		for col := range BoardSize {
			if that[row][col] == Empty {
				moves = append(moves, Action{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Count - returns how many cells hold the given mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				n++
			}
		}
	}

	return n
}

// Validate - checks that the board could have been reached by alternating play with X first.
func (that Board) Validate() error {
	for _, row := range that {
		for _, cell := range row {
			if cell > O {
				return fmt.Errorf("%w: unknown cell value %d", apperror.ErrInvalidBoard, cell)
			}
		}
	}

	if diff := that.Count(X) - that.Count(O); diff != 0 && diff != 1 {
		return fmt.Errorf("%w: X count minus O count is %d", apperror.ErrInvalidBoard, diff)
	}

	return nil
}

func (that Board) String() string {
	var out []byte
	for i, row := range that {
		if i > 0 {
			out = append(out, '/')
		}
		for _, cell := range row {
			if cell == Empty {
				out = append(out, '.')
				continue
			}
			out = append(out, cell.String()...)
		}
	}

	return string(out)
}
