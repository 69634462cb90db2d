package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nelhage/yotician/ai"
	"github.com/nelhage/yotician/history"
	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

var (
	// ErrUndo is returned by a Player that wants to take back its last
	// move.
	ErrUndo = errors.New("undo")
	ErrQuit = errors.New("quit")
)

type Player interface {
	GetMove(p *yote.Position) (yote.Move, error)
}

type Glyphs struct {
	White, Black, Empty string
	// Color renders stones with terminal colors.
	Color bool
}

type CLI struct {
	moves   []yote.Move
	p       *yote.Position
	history history.Stack

	// Initial is the starting position; nil means a new game.
	Initial  *yote.Position
	Evaluate ai.EvaluationFunc
	Glyphs   *Glyphs
	Out      io.Writer
	White    Player
	Black    Player
}

var DefaultGlyphs = Glyphs{
	White: "W",
	Black: "B",
	Empty: ".",
}

var UnicodeGlyphs = Glyphs{
	White: "○",
	Black: "●",
	Empty: "·",
}

var (
	whiteStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	blackStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	emptyStyle = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Play runs the game to completion and returns the final position. It
// returns early, with the position reached so far, if a player fails
// to produce a move.
func (c *CLI) Play() (*yote.Position, error) {
	c.moves = nil
	if c.Initial != nil {
		c.p = c.Initial.Clone()
	} else {
		c.p = yote.New()
	}
	if c.Evaluate == nil {
		c.Evaluate = ai.DefaultEvaluate
	}
	c.history.Reset()
	c.push()
	for {
		c.render()
		if ok, _ := c.p.GameOver(); ok {
			d := c.p.WinDetails()
			fmt.Fprintf(c.Out, "Game Over! %s wins: %s\n", d.Winner, d.Reason)
			fmt.Fprintf(c.Out, "stones: white=%d black=%d\n", d.WhiteStones, d.BlackStones)
			return c.p, nil
		}
		var (
			m   yote.Move
			err error
		)
		if c.p.ToMove() == yote.White {
			m, err = c.White.GetMove(c.p)
		} else {
			m, err = c.Black.GetMove(c.p)
		}
		if errors.Is(err, ErrUndo) {
			if !c.undo(c.p.ToMove()) {
				fmt.Fprintln(c.Out, "nothing to undo")
			}
			continue
		}
		if err != nil {
			return c.p, err
		}
		p, e := c.p.Move(m)
		if e != nil {
			fmt.Fprintln(c.Out, "illegal move:", e)
			continue
		}
		if c.p.ToMove() == yote.White {
			fmt.Fprintf(c.Out, "%d. %s\n", c.p.Ply()/2+1, ynn.FormatMove(m))
		} else {
			fmt.Fprintf(c.Out, "%d. ... %s\n", c.p.Ply()/2+1, ynn.FormatMove(m))
		}
		c.p = p
		c.moves = append(c.moves, m)
		c.push()
	}
}

func (c *CLI) push() {
	c.history.Push(history.NewSnapshot(c.p, c.Evaluate(c.p)))
}

// undo rewinds to the most recent earlier position with `who` to move,
// taking back who's last move and any replies to it.
func (c *CLI) undo(who yote.Color) bool {
	snaps := c.history.Snapshots()
	for i := len(snaps) - 2; i >= 0; i-- {
		p := snaps[i].Position()
		if p.ToMove() != who {
			continue
		}
		for j := len(snaps) - 1; j > i; j-- {
			if _, err := c.history.Pop(); err != nil {
				return false
			}
		}
		c.p = p
		c.moves = c.moves[:i]
		return true
	}
	return false
}

func (c *CLI) Moves() []yote.Move {
	return c.moves
}

// History returns the positions of the game so far, oldest first.
func (c *CLI) History() []history.Snapshot {
	return c.history.Snapshots()
}

func (c *CLI) render() {
	RenderBoard(c.Glyphs, c.Out, c.p)
}

func (g *Glyphs) glyph(c yote.Color) string {
	switch c {
	case yote.White:
		if g.Color {
			return whiteStyle.Render(g.White)
		}
		return g.White
	case yote.Black:
		if g.Color {
			return blackStyle.Render(g.Black)
		}
		return g.Black
	}
	if g.Color {
		return emptyStyle.Render(g.Empty)
	}
	return g.Empty
}

func (g *Glyphs) label(s string) string {
	if g.Color {
		return labelStyle.Render(s)
	}
	return s
}

// RenderBoard draws p with row 1 at the top, matching YPS row order.
func RenderBoard(g *Glyphs, out io.Writer, p *yote.Position) {
	if g == nil {
		g = &DefaultGlyphs
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[%s to play]\n", p.ToMove())
	for r := 0; r < yote.Rows; r++ {
		cells := make([]string, yote.Cols)
		for col := range cells {
			cells[col] = g.glyph(p.At(yote.Sq(r, col)))
		}
		fmt.Fprintf(out, "%s %s\n", g.label(fmt.Sprintf("%d", r+1)), strings.Join(cells, " "))
	}
	files := make([]string, yote.Cols)
	for col := range files {
		files[col] = string(rune('a' + col))
	}
	fmt.Fprintf(out, "  %s\n", g.label(strings.Join(files, " ")))
	fmt.Fprintf(out, "hand: W:%d B:%d captured: W:%d B:%d\n",
		p.Hand(yote.White), p.Hand(yote.Black),
		p.Captured(yote.White), p.Captured(yote.Black))
}
