package main

import (
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/nelhage/yotician/cmd/internal/analyze"
	"github.com/nelhage/yotician/cmd/internal/games"
	"github.com/nelhage/yotician/cmd/internal/play"
	"github.com/nelhage/yotician/cmd/internal/selfplay"
)

var verbose = flag.Bool("v", false, "log at debug level")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&games.Command{}, "")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
