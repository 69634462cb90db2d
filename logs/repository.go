// Package logs records finished games in a sqlite database.
package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/nelhage/yotician/ynn"
	"github.com/nelhage/yotician/yote"
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

// Game is one row of the games table. Player1 played White.
type Game struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"time"`
	Player1   string    `db:"player1"`
	Player2   string    `db:"player2"`
	Winner    string    `db:"winner"`
	Reason    string    `db:"reason"`
	Plies     int       `db:"plies"`
	// Moves is the space-separated YNN move list; Final is the YPS of
	// the last position.
	Moves string `db:"moves"`
	Final string `db:"final"`
	Hash  string `db:"hash"`
}

// Standing summarizes one player's results across all recorded games.
type Standing struct {
	Player string `db:"player"`
	Games  int    `db:"games"`
	Wins   int    `db:"wins"`
	Losses int    `db:"losses"`
}

// NewGame builds a record of a game that reached `final` by playing
// `moves`.
func NewGame(white, black string, moves []yote.Move, final *yote.Position) *Game {
	d := final.WinDetails()
	g := &Game{
		Timestamp: time.Now().UTC(),
		Player1:   white,
		Player2:   black,
		Reason:    d.Reason.String(),
		Plies:     len(moves),
		Moves:     ynn.FormatMoves(moves),
		Final:     ynn.FormatYPS(final),
		Hash:      fmt.Sprintf("%016x", final.Hash()),
	}
	if d.Over {
		g.Winner = d.Winner.String()
	}
	return g
}

func Open(db string) (*Repository, error) {
	sql, err := sqlx.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	_, err = sql.Exec(createGameTable)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create game table: %w", err)
	}
	_, err = sql.Exec(createPlayerView)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create player_games view: %w", err)
	}

	repo := &Repository{db: sql}
	repo.insert, err = sql.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertGame(g *Game) error {
	return r.insertGame(r.insert, g)
}

func (r *Repository) insertGame(stmt *sqlx.NamedStmt, g *Game) error {
	res, err := stmt.Exec(g)
	if err != nil {
		return err
	}
	g.ID, err = res.LastInsertId()
	return err
}

func (r *Repository) InsertGames(gs []*Game) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, g := range gs {
		if e := r.insertGame(stmt, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// Games returns recorded games in insertion order. A non-empty player
// restricts the result to games that player took part in.
func (r *Repository) Games(player string) ([]Game, error) {
	var gs []Game
	var err error
	if player == "" {
		err = r.db.Select(&gs, selectGames)
	} else {
		err = r.db.Select(&gs, selectPlayerGames, player, player)
	}
	if err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}
	return gs, nil
}

func (r *Repository) Standings() ([]Standing, error) {
	var out []Standing
	if err := r.db.Select(&out, selectStandings); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}
	return out, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
