package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nelhage/yotician/ai"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yotician.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 4, cfg.Search.Depth)
	require.Empty(t, cfg.Database)

	w, err := cfg.EvalWeights()
	require.NoError(t, err)
	require.Equal(t, ai.DefaultWeights, w)
}

func TestLoadCustom(t *testing.T) {
	path := writeFile(t, `
search:
  depth: 5
  parallel: 4
weights:
  captures: 1.5
database: games.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Search.Depth)
	require.Equal(t, 4, cfg.Search.Parallel)
	require.Equal(t, "games.db", cfg.Database)

	w, err := cfg.EvalWeights()
	require.NoError(t, err)
	require.Equal(t, 1.5, w[ai.Captures])
	require.Equal(t, ai.DefaultWeights[ai.InHand], w[ai.InHand])

	mm, err := cfg.Minimax(0)
	require.NoError(t, err)
	require.Equal(t, 5, mm.Depth)
	require.Equal(t, 4, mm.Parallel)
	require.NotNil(t, mm.Evaluate)

	mm, err = cfg.Minimax(2)
	require.NoError(t, err)
	require.Equal(t, 2, mm.Depth)
}

func TestLoadCustomErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "search: [1, 2"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "search:\n  depth: 0\n"))
	require.ErrorIs(t, err, ErrBadConfig)

	_, err = Load(writeFile(t, "weights:\n  flats: 1\n"))
	require.ErrorIs(t, err, ErrBadConfig)
}

func TestLoadSearchOrder(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")
	broken := writeFile(t, "search: [")
	good := writeFile(t, "search:\n  depth: 6\n")

	cfg, err := load("", []string{missing, broken, good})
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Search.Depth)

	cfg, err = load("", []string{missing})
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
