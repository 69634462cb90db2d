package selfplay

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/yotician/ai"
	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

// Factory builds a fresh player for each game.
type Factory interface {
	NewPlayer(seed int64) ai.YotePlayer
	String() string
}

type Config struct {
	Games int

	Verbose bool

	Initial *yote.Position

	P1, P2 Factory

	Swap    bool
	Threads int
	Seed    int64
	Cutoff  int
}

type Stats struct {
	Players [2]struct {
		Wins          int
		WhiteWins     int
		BlackWins     int
		CaptureWins   int
		StalemateWins int
	}
	White, Black int
	Cutoff       int

	Games []Result `json:"-"`
}

func (s *Stats) Count() int {
	return s.White + s.Black + s.Cutoff
}

type gameSpec struct {
	i       int
	seed    int64
	p1color yote.Color
}

type Result struct {
	spec     gameSpec
	Initial  *yote.Position
	Position *yote.Position
	Moves    []yote.Move
	Winner   yote.Color
}

// P1Color is the color player 1 had in this game.
func (r *Result) P1Color() yote.Color {
	return r.spec.p1color
}

// Simulate plays c.Games games (twice as many with c.Swap) on
// c.Threads workers. Results are reported in game order regardless of
// which worker finished first.
func Simulate(ctx context.Context, c *Config) (Stats, error) {
	var specs []gameSpec
	r := rand.New(rand.NewSource(c.Seed))
	n := c.Games
	if c.Swap {
		n *= 2
	}
	for g := 0; g < n; g++ {
		p1color := yote.White
		if c.Swap && g%2 == 1 {
			p1color = yote.Black
		}
		specs = append(specs, gameSpec{i: g, seed: r.Int63(), p1color: p1color})
	}

	results := make([]Result, len(specs))
	grp, gctx := errgroup.WithContext(ctx)
	if c.Threads > 0 {
		grp.SetLimit(c.Threads)
	}
	for i := range specs {
		i := i
		grp.Go(func() error {
			res, err := playGame(gctx, c, specs[i])
			if err != nil {
				return fmt.Errorf("game %d: %w", specs[i].i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, r := range results {
		st.record(c, r)
	}
	return st, nil
}

func (st *Stats) record(c *Config, r Result) {
	if c.Verbose {
		log.Info().
			Int("game", r.spec.i).
			Int("plies", len(r.Moves)).
			Str("p1", r.spec.p1color.String()).
			Str("winner", r.Winner.String()).
			Int("white_captured", r.Position.Captured(yote.White)).
			Int("black_captured", r.Position.Captured(yote.Black)).
			Msg("game over")
	}
	switch r.Winner {
	case yote.White:
		st.White++
	case yote.Black:
		st.Black++
	default:
		st.Cutoff++
	}
	if r.Winner != yote.NoColor {
		pst := &st.Players[0]
		if r.Winner != r.spec.p1color {
			pst = &st.Players[1]
		}
		if r.Winner == yote.White {
			pst.WhiteWins++
		} else {
			pst.BlackWins++
		}
		pst.Wins++
		switch r.Position.WinDetails().Reason {
		case yote.AllCaptured:
			pst.CaptureWins++
		case yote.NoMoves:
			pst.StalemateWins++
		}
	}
	st.Games = append(st.Games, r)
}

func playGame(ctx context.Context, c *Config, g gameSpec) (Result, error) {
	white := c.P1.NewPlayer(g.seed)
	black := c.P2.NewPlayer(g.seed + 1)
	if g.p1color != yote.White {
		white, black = black, white
	}

	p := yote.New()
	if c.Initial != nil {
		p = c.Initial.Clone()
	}
	res := Result{spec: g, Initial: p.Clone()}
	for i := 0; i < c.Cutoff; i++ {
		if over, w := p.GameOver(); over {
			res.Winner = w
			break
		}
		var (
			m   yote.Move
			err error
		)
		if p.ToMove() == yote.White {
			m, err = white.GetMove(ctx, p)
		} else {
			m, err = black.GetMove(ctx, p)
		}
		if err != nil {
			return res, fmt.Errorf("get move: %w", err)
		}
		if err := p.Apply(m); err != nil {
			return res, fmt.Errorf("illegal move %s: %w", ynn.FormatMove(m), err)
		}
		res.Moves = append(res.Moves, m)
	}
	if over, w := p.GameOver(); over {
		res.Winner = w
	}
	res.Position = p
	return res, nil
}
