package play

import (
	"bufio"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/nelhage/yotician/ai"
	"github.com/nelhage/yotician/cli"
	"github.com/nelhage/yotician/cmd/internal/opt"
	"github.com/nelhage/yotician/logs"
	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

type Command struct {
	white string
	black string
	yps   string
	out   string
	db    string

	unicode bool
	color   bool

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play Yoté from the command line" }
func (*Command) Usage() string {
	return `play [flags]

Play Yoté on the command-line, against a human or AI. Players are
"human", "minimax[:depth]" or "random[:seed]". Humans type moves in
YNN notation (c3, c3-c4, c3xc5, c3xc5*e1), "undo" or "quit".
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.white, "white", "human", "white player")
	flags.StringVar(&c.black, "black", "minimax", "black player")
	flags.StringVar(&c.yps, "yps", "", "start from this YPS position")
	flags.StringVar(&c.out, "out", "", "write YNN to file")
	flags.StringVar(&c.db, "db", "", "record the game in this sqlite database")

	flags.BoolVar(&c.unicode, "unicode", false, "render board with utf8 glyphs")
	flags.BoolVar(&c.color, "color", false, "render board in color")

	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, mm, err := c.mmopt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("config")
		return subcommands.ExitUsageError
	}
	in := bufio.NewReader(os.Stdin)
	white, err := c.parsePlayer(ctx, in, c.white, mm)
	if err != nil {
		log.Error().Err(err).Msg("-white")
		return subcommands.ExitUsageError
	}
	black, err := c.parsePlayer(ctx, in, c.black, mm)
	if err != nil {
		log.Error().Err(err).Msg("-black")
		return subcommands.ExitUsageError
	}

	st := &cli.CLI{
		Out:      os.Stdout,
		White:    white,
		Black:    black,
		Glyphs:   c.glyphs(),
		Evaluate: mm.Evaluate,
	}
	if c.yps != "" {
		st.Initial, err = ynn.ParseYPS(c.yps)
		if err != nil {
			log.Error().Err(err).Msg("-yps")
			return subcommands.ExitUsageError
		}
	}

	final, err := st.Play()
	if err != nil && !errors.Is(err, cli.ErrQuit) {
		log.Error().Err(err).Msg("play")
	}

	if c.out != "" {
		g := &ynn.Game{Moves: st.Moves()}
		g.SetTag("White", c.white)
		g.SetTag("Black", c.black)
		if c.yps != "" {
			g.SetTag("YPS", c.yps)
		}
		if over, winner := final.GameOver(); over {
			g.Winner = winner
		}
		if err := os.WriteFile(c.out, []byte(g.Render()), 0644); err != nil {
			log.Error().Err(err).Str("path", c.out).Msg("write YNN")
			return subcommands.ExitFailure
		}
	}

	if c.db == "" {
		c.db = cfg.Database
	}
	if c.db != "" {
		repo, err := logs.Open(c.db)
		if err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("open database")
			return subcommands.ExitFailure
		}
		defer repo.Close()
		if err := repo.InsertGame(logs.NewGame(c.white, c.black, st.Moves(), final)); err != nil {
			log.Error().Err(err).Msg("record game")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func (c *Command) glyphs() *cli.Glyphs {
	g := cli.DefaultGlyphs
	if c.unicode {
		g = cli.UnicodeGlyphs
	}
	g.Color = c.color
	return &g
}

// clockSeed seeds random players that were not given a seed.
var clockSeed = func() int64 { return time.Now().UnixNano() }

type aiWrapper struct {
	ctx context.Context
	p   ai.YotePlayer
}

func (a *aiWrapper) GetMove(p *yote.Position) (yote.Move, error) {
	return a.p.GetMove(a.ctx, p)
}

func (c *Command) parsePlayer(ctx context.Context, in *bufio.Reader, s string, mm ai.MinimaxConfig) (cli.Player, error) {
	if s == "human" {
		return cli.NewCLIPlayer(os.Stdout, in), nil
	}
	spec, err := opt.ParsePlayer(s, mm)
	if err != nil {
		return nil, err
	}
	return &aiWrapper{ctx, spec.NewPlayer(clockSeed())}, nil
}
