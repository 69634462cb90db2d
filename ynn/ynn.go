package ynn

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/nelhage/yotician/yote"
)

type Tag struct {
	Name  string
	Value string
}

// Game is a recorded game: header tags, the moves played and, if the
// game was finished, its winner.
type Game struct {
	Tags   []Tag
	Moves  []yote.Move
	Winner yote.Color
}

func (g *Game) FindTag(name string) string {
	for _, t := range g.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

func (g *Game) SetTag(name, value string) {
	for i := range g.Tags {
		if g.Tags[i].Name == name {
			g.Tags[i].Value = value
			return
		}
	}
	g.Tags = append(g.Tags, Tag{Name: name, Value: value})
}

// InitialPosition returns the position described by the YPS tag, or
// the standard starting position if there is none.
func (g *Game) InitialPosition() (*yote.Position, error) {
	yps := g.FindTag("YPS")
	if yps == "" {
		return yote.New(), nil
	}
	p, err := ParseYPS(yps)
	if err != nil {
		return nil, fmt.Errorf("bad YPS tag: %w", err)
	}
	return p, nil
}

// PositionAtMove replays the first n moves of the game. A negative n
// replays the whole game.
func (g *Game) PositionAtMove(n int) (*yote.Position, error) {
	p, err := g.InitialPosition()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > len(g.Moves) {
		n = len(g.Moves)
	}
	for i, m := range g.Moves[:n] {
		if err := p.Apply(m); err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, FormatMove(m), err)
		}
	}
	return p, nil
}

func ParseFile(path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Game, error) {
	buf := bufio.NewReader(r)
	var g Game
	if err := readTags(buf, &g); err != nil && err != io.EOF {
		return nil, err
	}
	if err := readMoves(buf, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func readTags(r *bufio.Reader, g *Game) error {
	for {
		if err := skipWS(r); err != nil {
			return err
		}
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		if c != '[' {
			return r.UnreadByte()
		}
		line, err := r.ReadString(']')
		if err != nil {
			return err
		}
		line = line[:len(line)-1]
		bits := strings.SplitN(line, " ", 2)
		if len(bits) != 2 {
			return errors.New("bad tag")
		}
		g.Tags = append(g.Tags, Tag{
			Name:  bits[0],
			Value: strings.Trim(bits[1], "\""),
		})
	}
}

func readMoves(r *bufio.Reader, g *Game) error {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	comment := false
	for s.Scan() {
		tok := s.Text()
		switch {
		case comment:
			comment = !strings.HasSuffix(tok, "}")
		case tok[0] == '{':
			comment = !strings.HasSuffix(tok, "}")
		case tok == "...":
		case tok[len(tok)-1] == '.':
			if _, err := strconv.Atoi(tok[:len(tok)-1]); err != nil {
				return fmt.Errorf("bad move number %q", tok)
			}
		case tok == "1-0":
			g.Winner = yote.White
		case tok == "0-1":
			g.Winner = yote.Black
		case tok == "*":
		default:
			m, err := ParseMove(tok)
			if err != nil {
				return err
			}
			g.Moves = append(g.Moves, m)
		}
	}
	return s.Err()
}

func skipWS(r *bufio.Reader) error {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(rune(c)) {
			return r.UnreadByte()
		}
	}
}

func (g *Game) Render() string {
	var out bytes.Buffer
	for _, tag := range g.Tags {
		fmt.Fprintf(&out, "[%s \"%s\"]\n",
			tag.Name, strings.Replace(tag.Value, "\"", "", -1),
		)
	}
	out.WriteString("\n")

	start := 0
	if p, err := g.InitialPosition(); err == nil {
		start = p.Ply()
	}
	for i, m := range g.Moves {
		ply := start + i
		switch {
		case ply%2 == 0:
			if i > 0 {
				out.WriteString("\n")
			}
			fmt.Fprintf(&out, "%d. %s", ply/2+1, FormatMove(m))
		case i == 0:
			fmt.Fprintf(&out, "%d. ... %s", ply/2+1, FormatMove(m))
		default:
			fmt.Fprintf(&out, " %s", FormatMove(m))
		}
	}
	switch g.Winner {
	case yote.White:
		out.WriteString("\n1-0")
	case yote.Black:
		out.WriteString("\n0-1")
	}
	out.WriteString("\n")
	return out.String()
}
