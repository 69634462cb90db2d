package selfplay

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/nelhage/yotician/cmd/internal/opt"
	"github.com/nelhage/yotician/logs"
	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

type Command struct {
	p1   string
	p2   string
	seed int64
	yps  string

	games  int
	cutoff int
	swap   bool

	threads int

	out     string
	db      string
	verbose bool

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "minimax", "player 1")
	flags.StringVar(&c.p2, "p2", "random", "player 2")

	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.StringVar(&c.yps, "yps", "", "start every game from this YPS position")
	flags.IntVar(&c.games, "games", 10, "number of games to play per color")
	flags.IntVar(&c.cutoff, "cutoff", 200, "cut games off after how many plies")
	flags.BoolVar(&c.swap, "swap", true, "swap colors each game")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel games")
	flags.StringVar(&c.out, "out", "", "directory to write YNNs to")
	flags.StringVar(&c.db, "db", "", "record games in this sqlite database")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")

	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, mm, err := c.mmopt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("config")
		return subcommands.ExitUsageError
	}
	p1, err := opt.ParsePlayer(c.p1, mm)
	if err != nil {
		log.Error().Err(err).Msg("-p1")
		return subcommands.ExitUsageError
	}
	p2, err := opt.ParsePlayer(c.p2, mm)
	if err != nil {
		log.Error().Err(err).Msg("-p2")
		return subcommands.ExitUsageError
	}

	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}
	sc := &Config{
		Games:   c.games,
		Verbose: c.verbose,
		P1:      p1,
		P2:      p2,
		Swap:    c.swap,
		Threads: c.threads,
		Seed:    c.seed,
		Cutoff:  c.cutoff,
	}
	if c.yps != "" {
		if sc.Initial, err = ynn.ParseYPS(c.yps); err != nil {
			log.Error().Err(err).Msg("-yps")
			return subcommands.ExitUsageError
		}
	}

	st, err := Simulate(ctx, sc)
	if err != nil {
		log.Error().Err(err).Msg("simulate")
		return subcommands.ExitFailure
	}

	if c.out != "" {
		for i := range st.Games {
			if err := writeGame(c.out, p1.String(), p2.String(), &st.Games[i]); err != nil {
				log.Error().Err(err).Msg("write game")
				return subcommands.ExitFailure
			}
		}
	}
	if c.db == "" {
		c.db = cfg.Database
	}
	if c.db != "" {
		if err := recordGames(c.db, p1.String(), p2.String(), st.Games); err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("record games")
			return subcommands.ExitFailure
		}
	}

	log.Info().
		Int("games", st.Count()).
		Int64("seed", c.seed).
		Int("cutoff", st.Cutoff).
		Int("white", st.White).
		Int("black", st.Black).
		Msg("done")
	log.Info().
		Str("p1", p1.String()).
		Int("p1.wins", st.Players[0].Wins).
		Str("p2", p2.String()).
		Int("p2.wins", st.Players[1].Wins).
		Msg("results")
	tw := tabwriter.NewWriter(os.Stderr, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\twhite\tblack\tsum\tcaptured\tblocked\n")
	for i, name := range []string{"p1", "p2"} {
		ps := st.Players[i]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", name,
			ps.WhiteWins, ps.BlackWins, ps.Wins, ps.CaptureWins, ps.StalemateWins)
	}
	tw.Flush()

	a, b := int64(st.Players[0].Wins), int64(st.Players[1].Wins)
	if a < b {
		a, b = b, a
	}
	log.Info().Float64("p", binomTest(a, b, 0.5)).Msg("one-sided binomial test")

	return subcommands.ExitSuccess
}

func names(p1, p2 string, r *Result) (white, black string) {
	if r.P1Color() == yote.White {
		return p1, p2
	}
	return p2, p1
}

func writeGame(d, p1, p2 string, r *Result) error {
	if err := os.MkdirAll(d, 0755); err != nil {
		return err
	}
	white, black := names(p1, p2, r)
	g := &ynn.Game{Moves: r.Moves, Winner: r.Winner}
	g.SetTag("White", white)
	g.SetTag("Black", black)
	if !r.Initial.Equal(yote.New()) {
		g.SetTag("YPS", ynn.FormatYPS(r.Initial))
	}
	path := filepath.Join(d, fmt.Sprintf("%d.ynn", r.spec.i))
	return os.WriteFile(path, []byte(g.Render()), 0644)
}

func recordGames(db, p1, p2 string, rs []Result) error {
	repo, err := logs.Open(db)
	if err != nil {
		return err
	}
	defer repo.Close()
	gs := make([]*logs.Game, len(rs))
	for i := range rs {
		white, black := names(p1, p2, &rs[i])
		gs[i] = logs.NewGame(white, black, rs[i].Moves, rs[i].Position)
	}
	return repo.InsertGames(gs)
}
