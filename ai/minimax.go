package ai

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

var (
	// WinValue and LossValue lie outside the range of any heuristic
	// score, so a forced result always dominates.
	WinValue  = math.Inf(1)
	LossValue = math.Inf(-1)
)

const defaultDepth = 4

var (
	ErrNoMoves  = errors.New("no legal moves")
	ErrBadDepth = errors.New("search depth must be at least 1")
)

type MinimaxConfig struct {
	Depth int
	Debug int

	// Parallel is the number of root moves searched concurrently.
	// Values below 2 search sequentially.
	Parallel int
	// NoPrune disables alpha-beta pruning.
	NoPrune bool

	Evaluate EvaluationFunc
}

type Stats struct {
	Depth     int
	Visited   uint64
	Evaluated uint64
	Terminal  uint64
	Cutoffs   uint64
}

func (s *Stats) merge(o *Stats) {
	s.Visited += o.Visited
	s.Evaluated += o.Evaluated
	s.Terminal += o.Terminal
	s.Cutoffs += o.Cutoffs
}

// MinimaxAI is a fixed-depth minimax player. Every explored position
// is a private clone, so searches never modify the caller's position.
type MinimaxAI struct {
	cfg      MinimaxConfig
	evaluate EvaluationFunc
}

func NewMinimax(cfg MinimaxConfig) *MinimaxAI {
	m := &MinimaxAI{cfg: cfg}
	if m.cfg.Depth == 0 {
		m.cfg.Depth = defaultDepth
	}
	m.evaluate = cfg.Evaluate
	if m.evaluate == nil {
		m.evaluate = DefaultEvaluate
	}
	return m
}

func (ai *MinimaxAI) Config() MinimaxConfig {
	return ai.cfg
}

func (ai *MinimaxAI) GetMove(ctx context.Context, p *yote.Position) (yote.Move, error) {
	m, _, _, err := ai.Analyze(ctx, p)
	return m, err
}

// Analyze searches p to the configured depth on behalf of the side to
// move.
func (ai *MinimaxAI) Analyze(ctx context.Context, p *yote.Position) (yote.Move, float64, Stats, error) {
	return ai.search(ctx, p, ai.cfg.Depth, true)
}

// ChooseBestMove searches `depth` plies below p and returns the best
// move together with its backed-up value. If `maximizing` is set the
// value is from the perspective of p's side to move, otherwise from
// its opponent's, in which case the returned move is the one that
// minimizes it. Ties go to the earliest move in AllMoves order.
func (ai *MinimaxAI) ChooseBestMove(p *yote.Position, depth int, maximizing bool) (yote.Move, float64, error) {
	m, v, _, err := ai.search(context.Background(), p, depth, maximizing)
	return m, v, err
}

func (ai *MinimaxAI) search(ctx context.Context, p *yote.Position, depth int, maximizing bool) (yote.Move, float64, Stats, error) {
	st := Stats{Depth: depth}
	if depth < 1 {
		return yote.Move{}, 0, st, ErrBadDepth
	}
	if err := ctx.Err(); err != nil {
		return yote.Move{}, 0, st, err
	}
	if over, _ := p.GameOver(); over {
		return yote.Move{}, 0, st, ErrNoMoves
	}

	me := p.ToMove()
	if !maximizing {
		me = me.Flip()
	}
	start := time.Now()
	moves := p.AllMoves(nil)
	values := make([]float64, len(moves))

	var err error
	if ai.cfg.Parallel > 1 {
		err = ai.searchParallel(ctx, p, moves, values, depth, me, &st)
	} else {
		err = ai.searchSequential(ctx, p, moves, values, depth, me, &st)
	}
	if err != nil {
		return yote.Move{}, 0, st, err
	}

	best := 0
	for i := 1; i < len(moves); i++ {
		if maximizing && values[i] > values[best] ||
			!maximizing && values[i] < values[best] {
			best = i
		}
	}

	if ai.cfg.Debug > 0 {
		log.Debug().
			Str("component", "minimax").
			Int("depth", depth).
			Float64("value", values[best]).
			Str("move", ynn.FormatMove(moves[best])).
			Int("moves", len(moves)).
			Uint64("visited", st.Visited).
			Uint64("evaluated", st.Evaluated).
			Uint64("terminal", st.Terminal).
			Uint64("cutoffs", st.Cutoffs).
			Dur("time", time.Since(start)).
			Msg("search done")
	}
	return moves[best], values[best], st, nil
}

// searchSequential fills in values for the root moves, narrowing the
// window as it goes. Values of moves that cannot beat the best so far
// are bounds, never better than the best, so the first best move and
// its value are exact.
func (ai *MinimaxAI) searchSequential(ctx context.Context, p *yote.Position, moves []yote.Move,
	values []float64, depth int, me yote.Color, st *Stats) error {
	s := ai.newSearcher(me)
	α, β := LossValue, WinValue
	maximize := p.ToMove() == me
	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return err
		}
		child, err := p.Move(m)
		if err != nil {
			return fmt.Errorf("root move %s: %w", ynn.FormatMove(m), err)
		}
		values[i] = s.minimax(child, depth-1, α, β)
		if ai.cfg.Debug > 1 {
			log.Debug().
				Str("component", "minimax").
				Str("move", ynn.FormatMove(m)).
				Float64("value", values[i]).
				Msg("root move")
		}
		if maximize && values[i] > α {
			α = values[i]
		} else if !maximize && values[i] < β {
			β = values[i]
		}
	}
	st.merge(&s.st)
	return nil
}

// searchParallel searches every root move with a full window on its
// own worker. Without shared bounds each value is exact, so picking
// the first best value gives the same answer as searchSequential.
func (ai *MinimaxAI) searchParallel(ctx context.Context, p *yote.Position, moves []yote.Move,
	values []float64, depth int, me yote.Color, st *Stats) error {
	stats := make([]Stats, len(moves))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(ai.cfg.Parallel)
	for i := range moves {
		i := i
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child, err := p.Move(moves[i])
			if err != nil {
				return fmt.Errorf("root move %s: %w", ynn.FormatMove(moves[i]), err)
			}
			s := ai.newSearcher(me)
			values[i] = s.minimax(child, depth-1, LossValue, WinValue)
			stats[i] = s.st
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	for i := range stats {
		st.merge(&stats[i])
	}
	return nil
}

type searcher struct {
	evaluate EvaluationFunc
	prune    bool
	// me is the maximizing player; all values are from its side.
	me yote.Color
	st Stats
}

func (ai *MinimaxAI) newSearcher(me yote.Color) *searcher {
	return &searcher{
		evaluate: ai.evaluate,
		prune:    !ai.cfg.NoPrune,
		me:       me,
	}
}

func (s *searcher) minimax(p *yote.Position, depth int, α, β float64) float64 {
	if over, winner := p.GameOver(); over {
		s.st.Evaluated++
		s.st.Terminal++
		if winner == s.me {
			return WinValue
		}
		return LossValue
	}
	if depth == 0 {
		s.st.Evaluated++
		v := s.evaluate(p)
		if p.ToMove() != s.me {
			v = -v
		}
		return v
	}

	s.st.Visited++
	maximize := p.ToMove() == s.me
	best := WinValue
	if maximize {
		best = LossValue
	}
	for _, m := range p.AllMoves(nil) {
		v := s.minimax(p.MoveGenerated(m), depth-1, α, β)
		if maximize {
			if v > best {
				best = v
			}
			if best > α {
				α = best
			}
		} else {
			if v < best {
				best = v
			}
			if best < β {
				β = best
			}
		}
		if s.prune && α >= β {
			s.st.Cutoffs++
			break
		}
	}
	return best
}
