package ai

import (
	"flag"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
	"github.com/nelhage/yotician/yotetest"
)

var depth = flag.Int("depth", 3, "minimax search depth")

func BenchmarkMinimax(b *testing.B) {
	p := yotetest.Position("a1 f5 c3 d3")
	ai := NewMinimax(MinimaxConfig{Depth: *depth})

	for i := 0; i < b.N; i++ {
		m, err := ai.GetMove(context.Background(), p)
		if err != nil {
			b.Fatal("search", err)
		}
		p, err = p.Move(m)
		if err != nil {
			b.Fatal("bad move", err)
		}
		if over, _ := p.GameOver(); over {
			p = yotetest.Position("a1 f5 c3 d3")
		}
	}
}

// randomPositions plays random games and returns a sample of the
// non-terminal positions reached.
func randomPositions(seed int64, n int) []*yote.Position {
	r := rand.New(rand.NewSource(seed))
	var out []*yote.Position
	for len(out) < n {
		p := yote.New()
		plies := 4 + r.Intn(30)
		for i := 0; i < plies; i++ {
			ms := p.AllMoves(nil)
			if len(ms) == 0 {
				break
			}
			if err := p.Apply(ms[r.Intn(len(ms))]); err != nil {
				panic(err)
			}
		}
		if over, _ := p.GameOver(); !over {
			out = append(out, p)
		}
	}
	return out
}

func containsMove(ms []yote.Move, m yote.Move) bool {
	for _, o := range ms {
		if o.Equal(m) {
			return true
		}
	}
	return false
}

func TestChooseBestMoveLegal(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	for _, p := range randomPositions(1, 40) {
		m, _, err := ai.ChooseBestMove(p, 1, true)
		require.NoError(t, err)
		require.True(t, containsMove(p.AllMoves(nil), m),
			"%s: %s not legal", ynn.FormatYPS(p), ynn.FormatMove(m))
	}
}

func TestChooseBestMoveDeterministic(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	for _, p := range randomPositions(2, 10) {
		m1, v1, err := ai.ChooseBestMove(p, 2, true)
		require.NoError(t, err)
		m2, v2, err := ai.ChooseBestMove(p, 2, true)
		require.NoError(t, err)
		require.Equal(t, m1, m2)
		require.Equal(t, v1, v2)
	}
}

func TestChooseBestMoveDoesNotMutate(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	p := yotetest.Position("c3 d3 b3 e1")
	before := p.Clone()
	_, _, err := ai.ChooseBestMove(p, 3, true)
	require.NoError(t, err)
	require.True(t, p.Equal(before))
}

func TestPruningAgrees(t *testing.T) {
	plain := NewMinimax(MinimaxConfig{NoPrune: true})
	pruned := NewMinimax(MinimaxConfig{})
	parallel := NewMinimax(MinimaxConfig{Parallel: 4})
	for _, p := range randomPositions(3, 12) {
		for _, maximizing := range []bool{true, false} {
			m, v, err := plain.ChooseBestMove(p, 2, maximizing)
			require.NoError(t, err)

			pm, pv, err := pruned.ChooseBestMove(p, 2, maximizing)
			require.NoError(t, err)
			require.Equal(t, m, pm, "pruned move differs at %s", ynn.FormatYPS(p))
			require.Equal(t, v, pv)

			qm, qv, err := parallel.ChooseBestMove(p, 2, maximizing)
			require.NoError(t, err)
			require.Equal(t, m, qm, "parallel move differs at %s", ynn.FormatYPS(p))
			require.Equal(t, v, qv)
		}
	}
}

func TestMinimizingMirrorsMaximizing(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	for _, p := range randomPositions(4, 10) {
		for d := 1; d <= 2; d++ {
			mmax, vmax, err := ai.ChooseBestMove(p, d, true)
			require.NoError(t, err)
			mmin, vmin, err := ai.ChooseBestMove(p, d, false)
			require.NoError(t, err)
			require.Equal(t, mmax, mmin)
			require.Equal(t, vmax, -vmin)
		}
	}
}

func TestDepthOneMatchesEvaluator(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	p := yotetest.Position("c3 d3")
	m, v, err := ai.ChooseBestMove(p, 1, true)
	require.NoError(t, err)

	best := LossValue
	var want yote.Move
	for _, c := range p.AllMoves(nil) {
		child, err := p.Move(c)
		require.NoError(t, err)
		if s := -DefaultEvaluate(child); s > best {
			best, want = s, c
		}
	}
	require.Equal(t, want, m)
	require.Equal(t, best, v)
}

func TestFindsWinningCapture(t *testing.T) {
	// Black has a single stone left; jumping it ends the game.
	p := yotetest.YPS("6/6/2wb2/6/6 w 0/0 11/11 40")
	ai := NewMinimax(MinimaxConfig{})
	for d := 1; d <= 3; d++ {
		m, v, err := ai.ChooseBestMove(p, d, true)
		require.NoError(t, err)
		require.Equal(t, yotetest.Move("c3xe3"), m, "depth %d", d)
		require.Equal(t, WinValue, v)
	}

	m, v, err := ai.ChooseBestMove(p, 1, false)
	require.NoError(t, err)
	require.Equal(t, yotetest.Move("c3xe3"), m)
	require.Equal(t, LossValue, v)
}

func TestForcedLoss(t *testing.T) {
	// Black's only move walks its last stone into a jump.
	p := yotetest.YPS("bww3/1w4/w5/6/6 b 0/0 11/8 41")
	ms := p.AllMoves(nil)
	require.Equal(t, []yote.Move{yotetest.Move("a1-a2")}, ms)

	ai := NewMinimax(MinimaxConfig{})
	m, v, err := ai.ChooseBestMove(p, 2, true)
	require.NoError(t, err)
	require.Equal(t, ms[0], m)
	require.Equal(t, LossValue, v)
}

func TestSearchErrors(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{})
	_, _, err := ai.ChooseBestMove(yote.New(), 0, true)
	require.ErrorIs(t, err, ErrBadDepth)

	over := yotetest.YPS("bww3/ww4/w5/6/6 b 7/0 11/0 30")
	_, _, err = ai.ChooseBestMove(over, 2, true)
	require.ErrorIs(t, err, ErrNoMoves)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ai.GetMove(ctx, yote.New())
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeStats(t *testing.T) {
	ai := NewMinimax(MinimaxConfig{Depth: 2})
	_, _, st, err := ai.Analyze(context.Background(), yotetest.Position("c3 d3"))
	require.NoError(t, err)
	require.Equal(t, 2, st.Depth)
	require.Positive(t, st.Visited)
	require.Positive(t, st.Evaluated)
}

func TestRandomPlayer(t *testing.T) {
	r := NewRandom(7)
	p := yote.New()
	for i := 0; i < 20; i++ {
		m, err := r.GetMove(context.Background(), p)
		require.NoError(t, err)
		require.NoError(t, p.Apply(m))
	}
	_, err := r.GetMove(context.Background(), yotetest.YPS("bww3/ww4/w5/6/6 b 7/0 11/0 30"))
	require.ErrorIs(t, err, ErrNoMoves)
}

func TestDefaultDepth(t *testing.T) {
	require.Equal(t, 4, NewMinimax(MinimaxConfig{}).Config().Depth)
	require.Equal(t, 2, NewMinimax(MinimaxConfig{Depth: 2}).Config().Depth)
}
