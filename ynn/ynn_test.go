package ynn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nelhage/yotician/yote"
)

const sample = `[White "alice"]
[Black "minimax:3"]

1. c3 d3
2. b3 {a comment} e1
3. c3xe3*e1
1-0
`

func TestParse(t *testing.T) {
	g, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, "alice", g.FindTag("White"))
	require.Equal(t, "minimax:3", g.FindTag("Black"))
	require.Equal(t, "", g.FindTag("Site"))
	require.Len(t, g.Moves, 5)
	require.Equal(t, yote.White, g.Winner)

	p, err := g.PositionAtMove(-1)
	require.NoError(t, err)
	require.Equal(t, yote.White, p.At(yote.Sq(2, 4)))
	require.Equal(t, yote.NoColor, p.At(yote.Sq(2, 3)))
	require.Equal(t, yote.NoColor, p.At(yote.Sq(0, 4)))
	require.Equal(t, yote.White, p.At(yote.Sq(2, 1)))
	require.Equal(t, 2, p.Captured(yote.White))

	p, err = g.PositionAtMove(2)
	require.NoError(t, err)
	require.Equal(t, 2, p.Ply())
}

func TestRenderRoundTrip(t *testing.T) {
	g, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	out := g.Render()
	require.Contains(t, out, "3. c3xe3*e1")

	again, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, g, again)
}

func TestRenderFromBlack(t *testing.T) {
	g := &Game{}
	g.SetTag("YPS", "w5/6/6/6/6 b 11/12 0/0 1")
	g.SetTag("YPS", "w5/6/6/6/6 b 11/12 0/0 1")
	require.Len(t, g.Tags, 1)
	g.Moves = []yote.Move{yote.PlaceAt(yote.Sq(4, 5)), yote.ShiftTo(yote.Sq(0, 0), yote.Sq(0, 1))}
	require.Contains(t, g.Render(), "1. ... f5\n2. a1-b1")

	p, err := g.PositionAtMove(-1)
	require.NoError(t, err)
	require.Equal(t, yote.White, p.At(yote.Sq(0, 1)))
}

func TestPositionAtMoveIllegal(t *testing.T) {
	g, err := Parse(strings.NewReader("1. a1 a1\n"))
	require.NoError(t, err)
	_, err = g.PositionAtMove(-1)
	require.ErrorIs(t, err, yote.ErrInvalidMove)
}
