package yote

import (
	"errors"
	"fmt"
)

// Stones is the number of stones each player starts the game with.
const Stones = 12

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrOutOfRange  = errors.New("square out of range")
	ErrBadPosition = errors.New("bad position")
)

// Position is a complete Yoté game state. It is a plain value: copying
// it (or calling Clone) yields an independent position.
type Position struct {
	cells    [NumSquares]Color
	hand     [2]int8
	captured [2]int8
	toMove   Color
	ply      int
}

// New returns the initial position: an empty board, twelve stones in
// each hand and White to move.
func New() *Position {
	return &Position{
		hand:   [2]int8{Stones, Stones},
		toMove: White,
	}
}

// Counts holds the per-color stone counts that are not visible on the
// board.
type Counts struct {
	WhiteHand, BlackHand         int
	WhiteCaptured, BlackCaptured int
}

// FromCells builds a Position from an explicit grid. `cells` is indexed
// [row][col]. The result must satisfy the stone-count invariant.
func FromCells(cells [Rows][Cols]Color, toMove Color, c Counts, ply int) (*Position, error) {
	if toMove != White && toMove != Black {
		return nil, fmt.Errorf("%w: side to move %v", ErrBadPosition, toMove)
	}
	p := &Position{
		toMove: toMove,
		ply:    ply,
	}
	for r := 0; r < Rows; r++ {
		for col := 0; col < Cols; col++ {
			switch cells[r][col] {
			case NoColor, White, Black:
			default:
				return nil, fmt.Errorf("%w: bad cell %v at %v",
					ErrBadPosition, cells[r][col], Sq(r, col))
			}
			p.cells[r*Cols+col] = cells[r][col]
		}
	}
	for _, n := range []int{c.WhiteHand, c.BlackHand, c.WhiteCaptured, c.BlackCaptured} {
		if n < 0 || n > Stones {
			return nil, fmt.Errorf("%w: count %d out of range", ErrBadPosition, n)
		}
	}
	p.hand = [2]int8{int8(c.WhiteHand), int8(c.BlackHand)}
	p.captured = [2]int8{int8(c.WhiteCaptured), int8(c.BlackCaptured)}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

// Check verifies that every stone of each color is accounted for: on
// the board, in hand, or captured by the opponent.
func (p *Position) Check() error {
	for _, c := range []Color{White, Black} {
		total := p.OnBoard(c) + p.Hand(c) + p.Captured(c.Flip())
		if total != Stones {
			return fmt.Errorf("%w: %v has %d stones on board, %d in hand, %d captured",
				ErrBadPosition, c, p.OnBoard(c), p.Hand(c), p.Captured(c.Flip()))
		}
	}
	return nil
}

func (p *Position) Clone() *Position {
	n := *p
	return &n
}

func (p *Position) Equal(o *Position) bool {
	return *p == *o
}

// At returns the owner of the stone on s, or NoColor if s is empty or
// off the board.
func (p *Position) At(s Square) Color {
	if !s.Valid() {
		return NoColor
	}
	return p.cells[s.index()]
}

func (p *Position) set(s Square, c Color) {
	p.cells[s.index()] = c
}

func (p *Position) ToMove() Color {
	return p.toMove
}

// Ply is the number of moves played to reach this position.
func (p *Position) Ply() int {
	return p.ply
}

// Hand returns the number of stones c has not yet placed.
func (p *Position) Hand(c Color) int {
	return int(p.hand[c.index()])
}

// Captured returns the number of opponent stones c has removed.
func (p *Position) Captured(c Color) int {
	return int(p.captured[c.index()])
}

func (p *Position) OnBoard(c Color) int {
	n := 0
	for _, cell := range p.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// GameOver reports whether the side to move has lost, either because
// all of its stones have been captured or because it has no legal
// move. The winner is always the side that just moved.
func (p *Position) GameOver() (over bool, winner Color) {
	if d := p.end(); d != NotOver {
		return true, p.toMove.Flip()
	}
	return false, NoColor
}

type WinReason int

const (
	NotOver WinReason = iota
	AllCaptured
	NoMoves
)

func (r WinReason) String() string {
	switch r {
	case NotOver:
		return "not over"
	case AllCaptured:
		return "all stones captured"
	case NoMoves:
		return "no legal moves"
	}
	return fmt.Sprintf("WinReason(%d)", int(r))
}

type WinDetails struct {
	Over   bool
	Reason WinReason
	Winner Color

	WhiteStones   int
	BlackStones   int
	WhiteCaptured int
	BlackCaptured int
}

func (p *Position) WinDetails() WinDetails {
	d := WinDetails{
		Reason:        p.end(),
		WhiteStones:   p.OnBoard(White) + p.Hand(White),
		BlackStones:   p.OnBoard(Black) + p.Hand(Black),
		WhiteCaptured: p.Captured(White),
		BlackCaptured: p.Captured(Black),
	}
	if d.Reason != NotOver {
		d.Over = true
		d.Winner = p.toMove.Flip()
	}
	return d
}

func (p *Position) end() WinReason {
	if p.Captured(p.toMove.Flip()) >= Stones {
		return AllCaptured
	}
	if !p.hasMove() {
		return NoMoves
	}
	return NotOver
}

// hasMove is equivalent to len(p.AllMoves(nil)) > 0 without building
// the move list.
func (p *Position) hasMove() bool {
	me := p.toMove
	if p.Hand(me) > 0 {
		for _, c := range p.cells {
			if c == NoColor {
				return true
			}
		}
	}
	for i, c := range p.cells {
		if c != me {
			continue
		}
		from := squareAt(i)
		for _, d := range directions {
			n := from.step(d)
			if !n.Valid() {
				continue
			}
			switch p.At(n) {
			case NoColor:
				return true
			case me.Flip():
				if beyond := n.step(d); beyond.Valid() && p.At(beyond) == NoColor {
					return true
				}
			}
		}
	}
	return false
}
