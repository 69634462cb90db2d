// Package config loads the engine configuration: search settings,
// evaluator weights and the game database location.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nelhage/yotician/ai"
)

//go:embed defaults/yotician.yaml
var defaultYAML []byte

const fileName = "yotician.yaml"

var ErrBadConfig = errors.New("bad config")

type Config struct {
	Search   Search             `yaml:"search"`
	Weights  map[string]float64 `yaml:"weights"`
	Database string             `yaml:"database"`
}

type Search struct {
	Depth    int  `yaml:"depth"`
	Parallel int  `yaml:"parallel"`
	Debug    int  `yaml:"debug"`
	NoPrune  bool `yaml:"no_prune"`
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded config: %v", err))
	}
	return cfg
}

// Load reads the configuration.
// Search order: customPath -> ~/.yotician/yotician.yaml -> ./configs/yotician.yaml -> embedded default
//
// Files are read on top of the embedded default, so they only need to
// name the settings they change. An unreadable or invalid customPath
// is an error; the other locations are skipped if they are missing or
// do not parse.
func Load(customPath string) (Config, error) {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".yotician", fileName))
	}
	paths = append(paths, filepath.Join("configs", fileName))
	return load(customPath, paths)
}

func load(customPath string, paths []string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		try := Default()
		if err := yaml.Unmarshal(data, &try); err != nil {
			continue
		}
		return try, try.Validate()
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Search.Depth < 1 {
		return fmt.Errorf("%w: search depth %d", ErrBadConfig, c.Search.Depth)
	}
	if c.Search.Parallel < 0 {
		return fmt.Errorf("%w: parallel %d", ErrBadConfig, c.Search.Parallel)
	}
	if _, err := c.EvalWeights(); err != nil {
		return err
	}
	return nil
}

// EvalWeights returns the default evaluator weights overridden by the
// ones named in the config.
func (c Config) EvalWeights() (ai.Weights, error) {
	w := ai.DefaultWeights
	if err := w.SetMap(c.Weights); err != nil {
		return w, fmt.Errorf("%w: weights: %v", ErrBadConfig, err)
	}
	return w, nil
}

// Minimax builds a search configuration. A positive depth overrides
// the configured one.
func (c Config) Minimax(depth int) (ai.MinimaxConfig, error) {
	w, err := c.EvalWeights()
	if err != nil {
		return ai.MinimaxConfig{}, err
	}
	cfg := ai.MinimaxConfig{
		Depth:    c.Search.Depth,
		Debug:    c.Search.Debug,
		Parallel: c.Search.Parallel,
		NoPrune:  c.Search.NoPrune,
		Evaluate: ai.MakeEvaluator(&w),
	}
	if depth > 0 {
		cfg.Depth = depth
	}
	return cfg, nil
}
