package yote

import "fmt"

const (
	Rows = 5
	Cols = 6

	NumSquares = Rows * Cols
)

// Square addresses a board cell. Row 0 is the top row.
type Square struct {
	Row, Col int8
}

// Sq is shorthand for Square{Row: row, Col: col}.
func Sq(row, col int) Square {
	return Square{Row: int8(row), Col: int8(col)}
}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < Rows && s.Col >= 0 && s.Col < Cols
}

func (s Square) index() int {
	return int(s.Row)*Cols + int(s.Col)
}

func squareAt(i int) Square {
	return Square{Row: int8(i / Cols), Col: int8(i % Cols)}
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

type direction struct {
	dr, dc int8
}

// directions is the fixed generation order: up, down, left, right.
var directions = [4]direction{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

func (s Square) step(d direction) Square {
	return Square{Row: s.Row + d.dr, Col: s.Col + d.dc}
}

// Adjacent reports whether a and b are orthogonal neighbors.
func Adjacent(a, b Square) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return (dr == 0 && (dc == 1 || dc == -1)) ||
		(dc == 0 && (dr == 1 || dr == -1))
}

func checkSquare(s Square) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %v", ErrOutOfRange, s)
	}
	return nil
}
