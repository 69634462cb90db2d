package analyze

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/nelhage/yotician/ai"
	"github.com/nelhage/yotician/cli"
	"github.com/nelhage/yotician/cmd/internal/opt"
	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

type Command struct {
	file      string
	move      int
	variation string

	quiet   bool
	eval    bool
	explain bool
	mmopt   opt.Minimax
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Evaluate a position" }
func (*Command) Usage() string {
	return `analyze [options] [YPS]

Evaluate a position given in YPS notation, or from a YNN file with
-file. By default the final position of the file is analyzed; use
-move to select an earlier one and -variation to play additional moves
prior to analysis.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.file, "file", "", "read the game from a YNN file")
	flags.IntVar(&c.move, "move", -1, "analyze the position after this many plies of the file")
	flags.StringVar(&c.variation, "variation", "", "apply the listed moves after the given position")

	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.BoolVar(&c.eval, "evaluate", false, "only show static evaluation")
	flags.BoolVar(&c.explain, "explain", false, "explain scoring")

	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.position(strings.Join(flag.Args(), " "))
	if err != nil {
		log.Error().Err(err).Msg("position")
		return subcommands.ExitUsageError
	}
	_, mm, err := c.mmopt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("config")
		return subcommands.ExitUsageError
	}
	if err := c.analyze(ctx, os.Stdout, mm, p); err != nil {
		log.Error().Err(err).Msg("analyze")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Command) position(yps string) (*yote.Position, error) {
	var p *yote.Position
	var err error
	switch {
	case c.file != "":
		g, e := ynn.ParseFile(c.file)
		if e != nil {
			return nil, fmt.Errorf("parse %s: %w", c.file, e)
		}
		p, err = g.PositionAtMove(c.move)
	case yps != "":
		p, err = ynn.ParseYPS(yps)
	default:
		p = yote.New()
	}
	if err != nil {
		return nil, err
	}
	for _, s := range strings.Fields(c.variation) {
		m, err := ynn.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("-variation: %w", err)
		}
		if err := p.Apply(m); err != nil {
			return nil, fmt.Errorf("-variation: %s: %w", s, err)
		}
	}
	return p, nil
}

func (c *Command) analyze(ctx context.Context, out io.Writer, mm ai.MinimaxConfig, p *yote.Position) error {
	evaluate := mm.Evaluate
	if evaluate == nil {
		evaluate = ai.DefaultEvaluate
	}
	if !c.quiet {
		cli.RenderBoard(nil, out, p)
		fmt.Fprintf(out, "[YPS \"%s\"]\n", ynn.FormatYPS(p))
	}
	if c.explain {
		w, err := c.weights()
		if err != nil {
			return err
		}
		ai.ExplainScore(&w, out, p)
	}
	fmt.Fprintf(out, " eval=%.2f\n", evaluate(p))
	if c.eval {
		return nil
	}
	if over, winner := p.GameOver(); over {
		fmt.Fprintf(out, " game over: %s wins (%s)\n", winner, p.WinDetails().Reason)
		return nil
	}

	engine := ai.NewMinimax(mm)
	start := time.Now()
	m, v, st, err := engine.Analyze(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "AI analysis:\n")
	fmt.Fprintf(out, " move=%s value=%g\n", ynn.FormatMove(m), v)
	fmt.Fprintf(out, " depth=%d visited=%d evaluated=%d terminal=%d cutoffs=%d time=%s\n",
		st.Depth, st.Visited, st.Evaluated, st.Terminal, st.Cutoffs, time.Since(start))
	return nil
}

func (c *Command) weights() (ai.Weights, error) {
	cfg, _, err := c.mmopt.BuildConfig()
	if err != nil {
		return ai.Weights{}, err
	}
	w, err := cfg.EvalWeights()
	if err != nil {
		return w, err
	}
	if c.mmopt.Weights != "" {
		if err := w.UnmarshalJSON([]byte(c.mmopt.Weights)); err != nil {
			return w, err
		}
	}
	return w, nil
}
