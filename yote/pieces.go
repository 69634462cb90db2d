package yote

import "fmt"

// Color is the owner of a stone. A board cell holding NoColor is
// empty.
type Color byte

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) Flip() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	case NoColor:
		return "none"
	default:
		return fmt.Sprintf("Color(%d)", byte(c))
	}
}

// index maps a player color onto the per-color count arrays.
func (c Color) index() int {
	if c == Black {
		return 1
	}
	return 0
}
