package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nelhage/yotician/yote"
	"github.com/nelhage/yotician/yotetest"
)

type scripted struct {
	moves []yote.Move
}

func (s *scripted) GetMove(p *yote.Position) (yote.Move, error) {
	if len(s.moves) == 0 {
		return yote.Move{}, io.EOF
	}
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m, nil
}

func TestPlayToWin(t *testing.T) {
	var out bytes.Buffer
	c := &CLI{
		Initial: yotetest.YPS("6/6/2wb2/6/6 w 0/0 11/11 40"),
		Out:     &out,
		White:   &scripted{yotetest.Moves("c3xe3")},
		Black:   &scripted{},
	}
	p, err := c.Play()
	require.NoError(t, err)
	over, winner := p.GameOver()
	require.True(t, over)
	require.Equal(t, yote.White, winner)
	require.Equal(t, yotetest.Moves("c3xe3"), c.Moves())
	require.Len(t, c.History(), 2)
	require.Contains(t, out.String(), "21. c3xe3")
	require.Contains(t, out.String(), "white wins: all stones captured")
}

func TestPlayIllegalMove(t *testing.T) {
	var out bytes.Buffer
	c := &CLI{
		Out:   &out,
		White: &scripted{yotetest.Moves("c3 b2")},
		Black: &scripted{yotetest.Moves("c3 a1")},
	}
	p, err := c.Play()
	require.ErrorIs(t, err, io.EOF)
	require.Contains(t, out.String(), "illegal move")
	require.Equal(t, yotetest.Moves("c3 a1 b2"), c.Moves())
	require.Equal(t, yote.Black, p.At(yote.Sq(0, 0)))
	require.Len(t, c.History(), 4)
}

func TestHumanUndo(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("c3\nd3\nundo\na1\n"))
	human := NewCLIPlayer(&out, in)
	c := &CLI{Out: &out, White: human, Black: human}

	p, err := c.Play()
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, yotetest.Moves("a1"), c.Moves())
	require.Equal(t, yote.NoColor, p.At(yote.Sq(2, 2)))
	require.Equal(t, yote.White, p.At(yote.Sq(0, 0)))
	require.Len(t, c.History(), 2)
}

func TestUndoAtStart(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("undo\nquit\n"))
	human := NewCLIPlayer(&out, in)
	c := &CLI{Out: &out, White: human, Black: human}
	_, err := c.Play()
	require.ErrorIs(t, err, ErrQuit)
	require.Contains(t, out.String(), "nothing to undo")
}

func TestThrowPrompt(t *testing.T) {
	p := yotetest.YPS("b5/6/2wb2/6/6 w 11/10 0/0 2")
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("c3xe3\nz9\na1\n"))
	m, err := NewCLIPlayer(&out, in).GetMove(p)
	require.NoError(t, err)
	require.Equal(t, yotetest.Move("c3xe3*a1"), m)
	require.Contains(t, out.String(), "throw> ")
	require.Contains(t, out.String(), "parse error")

	_, err = p.Move(m)
	require.NoError(t, err)
}

func TestNoThrowPromptForLastStone(t *testing.T) {
	p := yotetest.YPS("6/6/2wb2/6/6 w 11/11 0/0 2")
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("\nbogus\nc3xe3\n"))
	m, err := NewCLIPlayer(&out, in).GetMove(p)
	require.NoError(t, err)
	require.Equal(t, yotetest.Move("c3xe3"), m)
	require.NotContains(t, out.String(), "throw> ")
}

func TestRenderBoard(t *testing.T) {
	var out bytes.Buffer
	RenderBoard(nil, &out, yotetest.Position("a1 f5"))
	s := out.String()
	require.Contains(t, s, "[white to play]")
	require.Contains(t, s, "1 W . . . . .\n")
	require.Contains(t, s, "5 . . . . . B\n")
	require.Contains(t, s, "  a b c d e f\n")
	require.Contains(t, s, "hand: W:11 B:11 captured: W:0 B:0")

	out.Reset()
	RenderBoard(&UnicodeGlyphs, &out, yotetest.Position("a1"))
	require.Contains(t, out.String(), "1 ○ · · · · ·\n")
}
