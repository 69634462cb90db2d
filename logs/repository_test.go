package logs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
	"github.com/nelhage/yotician/yotetest"
)

func openRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func finishedGame(t *testing.T) ([]yote.Move, *yote.Position) {
	t.Helper()
	p := yotetest.YPS("6/6/2wb2/6/6 w 0/0 11/11 40")
	ms := yotetest.Moves("c3xe3")
	final, err := p.Move(ms[0])
	require.NoError(t, err)
	return ms, final
}

func TestNewGame(t *testing.T) {
	ms, final := finishedGame(t)
	g := NewGame("alice", "minimax:3", ms, final)
	require.Equal(t, "white", g.Winner)
	require.Equal(t, yote.AllCaptured.String(), g.Reason)
	require.Equal(t, 1, g.Plies)
	require.Equal(t, "c3xe3", g.Moves)
	require.Equal(t, ynn.FormatYPS(final), g.Final)
	require.Len(t, g.Hash, 16)

	unfinished := NewGame("a", "b", nil, yote.New())
	require.Empty(t, unfinished.Winner)
	require.Equal(t, yote.NotOver.String(), unfinished.Reason)
}

func TestInsertAndQuery(t *testing.T) {
	repo := openRepo(t)
	ms, final := finishedGame(t)

	g := NewGame("alice", "bob", ms, final)
	require.NoError(t, repo.InsertGame(g))
	require.NotZero(t, g.ID)

	require.NoError(t, repo.InsertGames([]*Game{
		NewGame("bob", "carol", ms, final),
		NewGame("carol", "alice", ms, final),
	}))

	all, err := repo.Games("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "alice", all[0].Player1)
	require.Equal(t, "bob", all[0].Player2)
	require.Equal(t, g.Final, all[0].Final)
	require.Equal(t, "c3xe3", all[0].Moves)

	bobs, err := repo.Games("bob")
	require.NoError(t, err)
	require.Len(t, bobs, 2)

	none, err := repo.Games("dave")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestStandings(t *testing.T) {
	repo := openRepo(t)
	ms, final := finishedGame(t)
	require.NoError(t, repo.InsertGames([]*Game{
		NewGame("alice", "bob", ms, final),
		NewGame("alice", "bob", ms, final),
		NewGame("bob", "alice", ms, final),
	}))

	st, err := repo.Standings()
	require.NoError(t, err)
	require.Equal(t, []Standing{
		{Player: "alice", Games: 3, Wins: 2, Losses: 1},
		{Player: "bob", Games: 3, Wins: 1, Losses: 2},
	}, st)
}

func TestStringColumnsKeepText(t *testing.T) {
	repo := openRepo(t)
	ms, final := finishedGame(t)

	hashes := []string{"0000000000000123", "12e4567890123456", "00ab00cd00ef0011"}
	var gs []*Game
	for _, h := range hashes {
		g := NewGame("007", "1e3", ms, final)
		g.Hash = h
		gs = append(gs, g)
	}
	require.NoError(t, repo.InsertGames(gs))

	all, err := repo.Games("")
	require.NoError(t, err)
	require.Len(t, all, len(hashes))
	for i, h := range hashes {
		require.Equal(t, h, all[i].Hash)
		require.Equal(t, "007", all[i].Player1)
		require.Equal(t, "1e3", all[i].Player2)
		require.Equal(t, gs[i].Final, all[i].Final)
	}

	g := NewGame("a", "b", ms, final)
	require.NoError(t, repo.InsertGame(g))
	got, err := repo.Games("a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, g.Hash, got[0].Hash)
	require.Equal(t, g.Reason, got[0].Reason)
	require.Equal(t, g.Winner, got[0].Winner)
}
