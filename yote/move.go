package yote

import "fmt"

type MoveType byte

const (
	Place MoveType = 1 + iota
	Shift
	Capture
)

func (t MoveType) String() string {
	switch t {
	case Place:
		return "Place"
	case Shift:
		return "Shift"
	case Capture:
		return "Capture"
	}
	return fmt.Sprintf("MoveType(%d)", byte(t))
}

// Move is one of three shapes, selected by Type:
//
//	Place:   To is the empty square the stone goes to.
//	Shift:   From holds a stone of the mover; To is an empty neighbor.
//	Capture: From jumps over the opponent stone on Captured and lands
//	         on To. If HasThrow is set, the opponent stone on Throw is
//	         removed as well.
type Move struct {
	Type     MoveType
	From     Square
	To       Square
	Captured Square
	Throw    Square
	HasThrow bool
}

func PlaceAt(to Square) Move {
	return Move{Type: Place, To: to}
}

func ShiftTo(from, to Square) Move {
	return Move{Type: Shift, From: from, To: to}
}

func CaptureAt(from, to, captured Square) Move {
	return Move{Type: Capture, From: from, To: to, Captured: captured}
}

func CaptureThrow(from, to, captured, throw Square) Move {
	return Move{Type: Capture, From: from, To: to, Captured: captured,
		Throw: throw, HasThrow: true}
}

func (m Move) Equal(rhs Move) bool {
	if m.Type != rhs.Type || m.To != rhs.To {
		return false
	}
	switch m.Type {
	case Place:
		return true
	case Shift:
		return m.From == rhs.From
	}
	if m.From != rhs.From || m.Captured != rhs.Captured || m.HasThrow != rhs.HasThrow {
		return false
	}
	return !m.HasThrow || m.Throw == rhs.Throw
}

func (m Move) IsCapture() bool {
	return m.Type == Capture
}

func (m Move) String() string {
	switch m.Type {
	case Place:
		return fmt.Sprintf("Place%v", m.To)
	case Shift:
		return fmt.Sprintf("Shift%v->%v", m.From, m.To)
	case Capture:
		if m.HasThrow {
			return fmt.Sprintf("Capture%v->%v x%v throw%v", m.From, m.To, m.Captured, m.Throw)
		}
		return fmt.Sprintf("Capture%v->%v x%v", m.From, m.To, m.Captured)
	}
	return fmt.Sprintf("Move(%d)", byte(m.Type))
}

// Move returns the position after playing m, leaving p unchanged.
func (p *Position) Move(m Move) (*Position, error) {
	next := p.Clone()
	if err := next.Apply(m); err != nil {
		return nil, err
	}
	return next, nil
}

// Apply plays m in place and passes the turn. It returns an error,
// and leaves p untouched, unless m is one of p.AllMoves().
func (p *Position) Apply(m Move) error {
	if err := p.validate(m); err != nil {
		return err
	}
	p.play(m)
	return nil
}

// MoveGenerated returns the position after playing m, which must be an
// element of p.AllMoves(). m is not validated.
func (p *Position) MoveGenerated(m Move) *Position {
	next := p.Clone()
	next.play(m)
	return next
}

func (p *Position) play(m Move) {
	me := p.toMove
	switch m.Type {
	case Place:
		p.set(m.To, me)
		p.hand[me.index()]--
	case Shift:
		p.set(m.From, NoColor)
		p.set(m.To, me)
	case Capture:
		p.set(m.From, NoColor)
		p.set(m.Captured, NoColor)
		p.set(m.To, me)
		p.captured[me.index()]++
		if m.HasThrow {
			p.set(m.Throw, NoColor)
			p.captured[me.index()]++
		}
	}
	p.toMove = me.Flip()
	p.ply++
}

func (p *Position) validate(m Move) error {
	if err := checkSquare(m.To); err != nil {
		return err
	}
	if m.Type != Place {
		if err := checkSquare(m.From); err != nil {
			return err
		}
	}
	if m.Type == Capture {
		if err := checkSquare(m.Captured); err != nil {
			return err
		}
		if m.HasThrow {
			if err := checkSquare(m.Throw); err != nil {
				return err
			}
		}
	}

	me := p.toMove
	them := me.Flip()
	if p.At(m.To) != NoColor {
		return fmt.Errorf("%w: %v is occupied", ErrInvalidMove, m.To)
	}
	switch m.Type {
	case Place:
		if p.Hand(me) == 0 {
			return fmt.Errorf("%w: %v has no stones in hand", ErrInvalidMove, me)
		}
		return nil
	case Shift:
		if p.At(m.From) != me {
			return fmt.Errorf("%w: no %v stone on %v", ErrInvalidMove, me, m.From)
		}
		if !Adjacent(m.From, m.To) {
			return fmt.Errorf("%w: %v is not adjacent to %v", ErrInvalidMove, m.To, m.From)
		}
		return nil
	case Capture:
	default:
		return fmt.Errorf("%w: bad move type %d", ErrInvalidMove, byte(m.Type))
	}

	if p.At(m.From) != me {
		return fmt.Errorf("%w: no %v stone on %v", ErrInvalidMove, me, m.From)
	}
	if !Adjacent(m.From, m.Captured) || !Adjacent(m.Captured, m.To) ||
		2*m.Captured.Row != m.From.Row+m.To.Row ||
		2*m.Captured.Col != m.From.Col+m.To.Col {
		return fmt.Errorf("%w: %v does not jump %v", ErrInvalidMove, m.From, m.Captured)
	}
	if p.At(m.Captured) != them {
		return fmt.Errorf("%w: no %v stone to capture on %v", ErrInvalidMove, them, m.Captured)
	}
	others := p.OnBoard(them) - 1
	if !m.HasThrow {
		if others > 0 {
			return fmt.Errorf("%w: capture must throw one of %d other stones", ErrInvalidMove, others)
		}
		return nil
	}
	if m.Throw == m.Captured || p.At(m.Throw) != them {
		return fmt.Errorf("%w: no %v stone to throw on %v", ErrInvalidMove, them, m.Throw)
	}
	return nil
}

// AllMoves appends every legal move for the side to move to `moves`
// and returns the result. Placements come first, then shifts, then
// captures; within each group squares are visited in row-major order
// and directions in the order up, down, left, right.
func (p *Position) AllMoves(moves []Move) []Move {
	me := p.toMove
	them := me.Flip()

	if p.Hand(me) > 0 {
		for i, c := range p.cells {
			if c == NoColor {
				moves = append(moves, PlaceAt(squareAt(i)))
			}
		}
	}

	for i, c := range p.cells {
		if c != me {
			continue
		}
		from := squareAt(i)
		for _, d := range directions {
			to := from.step(d)
			if to.Valid() && p.At(to) == NoColor {
				moves = append(moves, ShiftTo(from, to))
			}
		}
	}

	var throws []Square
	for i, c := range p.cells {
		if c == them {
			throws = append(throws, squareAt(i))
		}
	}
	for i, c := range p.cells {
		if c != me {
			continue
		}
		from := squareAt(i)
		for _, d := range directions {
			captured := from.step(d)
			if !captured.Valid() || p.At(captured) != them {
				continue
			}
			to := captured.step(d)
			if !to.Valid() || p.At(to) != NoColor {
				continue
			}
			if len(throws) == 1 {
				moves = append(moves, CaptureAt(from, to, captured))
				continue
			}
			for _, t := range throws {
				if t != captured {
					moves = append(moves, CaptureThrow(from, to, captured, t))
				}
			}
		}
	}
	return moves
}
