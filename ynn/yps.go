package ynn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nelhage/yotician/yote"
)

// Initial is the YPS of the starting position.
const Initial = "6/6/6/6/6 w 12/12 0/0 0"

// ParseYPS parses a position in YPS notation:
//
//	<rows> <side> <white hand>/<black hand> <white captured>/<black captured> <ply>
//
// Rows are listed top first and separated by '/'. Within a row `w` and
// `b` are stones and a digit is a run of empty squares.
func ParseYPS(yps string) (*yote.Position, error) {
	words := strings.Fields(yps)
	if len(words) != 5 {
		return nil, fmt.Errorf("bad YPS: wrong number of words: %d", len(words))
	}
	rows := strings.Split(words[0], "/")
	if len(rows) != yote.Rows {
		return nil, fmt.Errorf("bad YPS: %d rows", len(rows))
	}
	var cells [yote.Rows][yote.Cols]yote.Color
	for r, row := range rows {
		col := 0
		for _, ch := range row {
			switch {
			case ch == 'w' || ch == 'b':
				if col >= yote.Cols {
					return nil, fmt.Errorf("bad YPS: row %d too long", r+1)
				}
				if ch == 'w' {
					cells[r][col] = yote.White
				} else {
					cells[r][col] = yote.Black
				}
				col++
			case ch >= '1' && ch <= '0'+yote.Cols:
				col += int(ch - '0')
			default:
				return nil, fmt.Errorf("bad YPS: unexpected %q in row %d", ch, r+1)
			}
		}
		if col != yote.Cols {
			return nil, fmt.Errorf("bad YPS: row %d has %d squares", r+1, col)
		}
	}

	var toMove yote.Color
	switch words[1] {
	case "w":
		toMove = yote.White
	case "b":
		toMove = yote.Black
	default:
		return nil, fmt.Errorf("bad YPS: side to move %q", words[1])
	}
	wh, bh, err := parsePair(words[2])
	if err != nil {
		return nil, fmt.Errorf("bad YPS: hands: %w", err)
	}
	wc, bc, err := parsePair(words[3])
	if err != nil {
		return nil, fmt.Errorf("bad YPS: captures: %w", err)
	}
	ply, err := strconv.Atoi(words[4])
	if err != nil || ply < 0 {
		return nil, fmt.Errorf("bad YPS: ply %q", words[4])
	}
	return yote.FromCells(cells, toMove, yote.Counts{
		WhiteHand:     wh,
		BlackHand:     bh,
		WhiteCaptured: wc,
		BlackCaptured: bc,
	}, ply)
}

func parsePair(s string) (int, int, error) {
	bits := strings.Split(s, "/")
	if len(bits) != 2 {
		return 0, 0, fmt.Errorf("want a/b, got %q", s)
	}
	a, err := strconv.Atoi(bits[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(bits[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func FormatYPS(p *yote.Position) string {
	var rows []string
	for r := 0; r < yote.Rows; r++ {
		rows = append(rows, ypsRow(p, r))
	}
	side := "w"
	if p.ToMove() == yote.Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s %d/%d %d/%d %d",
		strings.Join(rows, "/"), side,
		p.Hand(yote.White), p.Hand(yote.Black),
		p.Captured(yote.White), p.Captured(yote.Black),
		p.Ply())
}

func ypsRow(p *yote.Position, r int) string {
	var out []byte
	empty := 0
	for c := 0; c < yote.Cols; c++ {
		switch p.At(yote.Sq(r, c)) {
		case yote.NoColor:
			empty++
			continue
		case yote.White:
			out = appendEmpty(out, empty)
			out = append(out, 'w')
		case yote.Black:
			out = appendEmpty(out, empty)
			out = append(out, 'b')
		}
		empty = 0
	}
	return string(appendEmpty(out, empty))
}

func appendEmpty(out []byte, n int) []byte {
	if n > 0 {
		out = append(out, byte('0'+n))
	}
	return out
}
