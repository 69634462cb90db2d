package ynn

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nelhage/yotician/yote"
)

var moveRE = regexp.MustCompile(
	// from [op to [* throw]]
	`^([a-f][1-5])(?:([-x])([a-f][1-5])(?:\*([a-f][1-5]))?)?$`,
)

var ErrBadMove = errors.New("illegal move notation")

func ParseSquare(s string) (yote.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] >= 'a'+yote.Cols ||
		s[1] < '1' || s[1] >= '1'+yote.Rows {
		return yote.Square{}, fmt.Errorf("bad square: %q", s)
	}
	return yote.Sq(int(s[1]-'1'), int(s[0]-'a')), nil
}

func FormatSquare(s yote.Square) string {
	return string([]byte{byte('a' + s.Col), byte('1' + s.Row)})
}

// ParseMove parses `c3` (place), `c3-c4` (shift), `c3xc5` (capture)
// and `c3xc5*e1` (capture throwing the stone on e1).
func ParseMove(move string) (yote.Move, error) {
	groups := moveRE.FindStringSubmatch(strings.TrimSpace(move))
	if groups == nil {
		return yote.Move{}, fmt.Errorf("%w: %q", ErrBadMove, move)
	}
	var (
		first, _ = ParseSquare(groups[1])
		op       = groups[2]
		second   = groups[3]
		throw    = groups[4]
	)
	if op == "" {
		return yote.PlaceAt(first), nil
	}
	to, _ := ParseSquare(second)
	if op == "-" {
		if throw != "" {
			return yote.Move{}, fmt.Errorf("%w: %q: throw on a shift", ErrBadMove, move)
		}
		return yote.ShiftTo(first, to), nil
	}

	dr, dc := to.Row-first.Row, to.Col-first.Col
	if !((dr == 0 && (dc == 2 || dc == -2)) || (dc == 0 && (dr == 2 || dr == -2))) {
		return yote.Move{}, fmt.Errorf("%w: %q: capture must jump one square", ErrBadMove, move)
	}
	captured := yote.Square{Row: first.Row + dr/2, Col: first.Col + dc/2}
	if throw == "" {
		return yote.CaptureAt(first, to, captured), nil
	}
	t, _ := ParseSquare(throw)
	return yote.CaptureThrow(first, to, captured, t), nil
}

func FormatMove(m yote.Move) string {
	switch m.Type {
	case yote.Place:
		return FormatSquare(m.To)
	case yote.Shift:
		return FormatSquare(m.From) + "-" + FormatSquare(m.To)
	case yote.Capture:
		out := FormatSquare(m.From) + "x" + FormatSquare(m.To)
		if m.HasThrow {
			out += "*" + FormatSquare(m.Throw)
		}
		return out
	}
	return fmt.Sprintf("?%d", m.Type)
}

func FormatMoves(ms []yote.Move) string {
	bits := make([]string, len(ms))
	for i, m := range ms {
		bits[i] = FormatMove(m)
	}
	return strings.Join(bits, " ")
}
