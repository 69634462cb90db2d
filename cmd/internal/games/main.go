package games

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/nelhage/yotician/config"
	"github.com/nelhage/yotician/logs"
)

type Command struct {
	db        string
	config    string
	player    string
	standings bool
}

func (*Command) Name() string     { return "games" }
func (*Command) Synopsis() string { return "List recorded games" }
func (*Command) Usage() string {
	return `games [flags]

List games recorded by play and selfplay, or per-player standings.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", "", "sqlite database (default from config)")
	flags.StringVar(&c.config, "config", "", "engine config file (YAML)")
	flags.StringVar(&c.player, "player", "", "only list games of this player")
	flags.BoolVar(&c.standings, "standings", false, "show per-player results instead")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		cfg, err := config.Load(c.config)
		if err != nil {
			log.Error().Err(err).Msg("config")
			return subcommands.ExitUsageError
		}
		c.db = cfg.Database
	}
	if c.db == "" {
		log.Error().Msg("no database: pass -db or set database in the config")
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(c.db)
	if err != nil {
		log.Error().Err(err).Str("db", c.db).Msg("open database")
		return subcommands.ExitFailure
	}
	defer repo.Close()

	if c.standings {
		err = listStandings(os.Stdout, repo)
	} else {
		err = listGames(os.Stdout, repo, c.player)
	}
	if err != nil {
		log.Error().Err(err).Msg("query")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func listGames(out io.Writer, repo *logs.Repository, player string) error {
	gs, err := repo.Games(player)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\ttime\twhite\tblack\twinner\treason\tplies\n")
	for _, g := range gs {
		winner := g.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			g.ID, g.Timestamp.Format("2006-01-02 15:04"),
			g.Player1, g.Player2, winner, g.Reason, g.Plies)
	}
	return tw.Flush()
}

func listStandings(out io.Writer, repo *logs.Repository) error {
	st, err := repo.Standings()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "player\tgames\twins\tlosses\n")
	for _, s := range st {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Player, s.Games, s.Wins, s.Losses)
	}
	return tw.Flush()
}
