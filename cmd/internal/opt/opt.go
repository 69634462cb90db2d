// Package opt holds engine flags shared by the commands.
package opt

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nelhage/yotician/ai"
	"github.com/nelhage/yotician/config"
)

var ErrBadPlayer = errors.New("bad player")

type Minimax struct {
	Config   string
	Depth    int
	Debug    int
	Parallel int
	NoPrune  bool
	Weights  string
}

func (o *Minimax) AddFlags(flags *flag.FlagSet) {
	flags.StringVar(&o.Config, "config", "", "engine config file (YAML)")
	flags.IntVar(&o.Depth, "depth", 0, "minimax depth (default from config)")
	flags.IntVar(&o.Debug, "debug", 0, "search debug level")
	flags.IntVar(&o.Parallel, "parallel", 0, "search root moves on this many workers")
	flags.BoolVar(&o.NoPrune, "no-prune", false, "disable alpha-beta pruning")
	flags.StringVar(&o.Weights, "weights", "", "JSON-encoded evaluation weights")
}

// BuildConfig loads the config file and applies the flags on top of it.
func (o *Minimax) BuildConfig() (config.Config, ai.MinimaxConfig, error) {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return cfg, ai.MinimaxConfig{}, err
	}
	if o.Debug > 0 {
		cfg.Search.Debug = o.Debug
	}
	if o.Parallel > 0 {
		cfg.Search.Parallel = o.Parallel
	}
	if o.NoPrune {
		cfg.Search.NoPrune = true
	}
	mm, err := cfg.Minimax(o.Depth)
	if err != nil {
		return cfg, mm, err
	}
	if o.Weights != "" {
		w, err := cfg.EvalWeights()
		if err != nil {
			return cfg, mm, err
		}
		if err := json.Unmarshal([]byte(o.Weights), &w); err != nil {
			return cfg, mm, fmt.Errorf("-weights: %w", err)
		}
		mm.Evaluate = ai.MakeEvaluator(&w)
	}
	return cfg, mm, nil
}

// PlayerSpec describes an engine player: `minimax[:depth]` or
// `random[:seed]`.
type PlayerSpec struct {
	Kind string
	Seed int64
	mm   ai.MinimaxConfig
}

func ParsePlayer(s string, base ai.MinimaxConfig) (*PlayerSpec, error) {
	kind, arg, hasArg := strings.Cut(s, ":")
	spec := &PlayerSpec{Kind: kind, mm: base}
	switch kind {
	case "minimax":
		if hasArg {
			d, err := strconv.Atoi(arg)
			if err != nil || d < 1 {
				return nil, fmt.Errorf("%w: %q: bad depth", ErrBadPlayer, s)
			}
			spec.mm.Depth = d
		}
	case "random":
		if hasArg {
			seed, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: bad seed", ErrBadPlayer, s)
			}
			spec.Seed = seed
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadPlayer, s)
	}
	return spec, nil
}

// NewPlayer builds a fresh player. `seed` is used by random players
// that were not given one explicitly.
func (s *PlayerSpec) NewPlayer(seed int64) ai.YotePlayer {
	if s.Kind == "random" {
		if s.Seed != 0 {
			seed = s.Seed
		}
		return ai.NewRandom(seed)
	}
	return ai.NewMinimax(s.mm)
}

func (s *PlayerSpec) Depth() int {
	return s.mm.Depth
}

func (s *PlayerSpec) String() string {
	if s.Kind == "random" {
		return "random"
	}
	return fmt.Sprintf("minimax@%d", s.mm.Depth)
}
