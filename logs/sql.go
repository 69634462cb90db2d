package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id integer primary key,
  time datetime,
  player1 varchar,
  player2 varchar,
  winner text,
  reason text,
  plies int,
  moves text,
  final text,
  hash text
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  id, player, opponent, color, win, reason, plies
) AS
SELECT id, player2, player1, 'black',
       CASE winner WHEN 'white' THEN 'lose' WHEN 'black' THEN 'win' ELSE 'none' END,
       reason, plies
 FROM games
UNION
SELECT id, player1, player2, 'white',
       CASE winner WHEN 'white' THEN 'win' WHEN 'black' THEN 'lose' ELSE 'none' END,
       reason, plies
 FROM games
`

const insertStmt = `
INSERT INTO games (time, player1, player2, winner, reason, plies, moves, final, hash)
VALUES (:time, :player1, :player2, :winner, :reason, :plies, :moves, :final, :hash)
`

const selectGames = `
SELECT id, time, player1, player2, winner, reason, plies, moves, final, hash
FROM games
ORDER BY id
`

const selectPlayerGames = `
SELECT g.id, g.time, g.player1, g.player2, g.winner, g.reason, g.plies, g.moves, g.final, g.hash
FROM games g
WHERE g.player1 = ? OR g.player2 = ?
ORDER BY g.id
`

const selectStandings = `
SELECT player,
       count(*) AS games,
       sum(CASE win WHEN 'win' THEN 1 ELSE 0 END) AS wins,
       sum(CASE win WHEN 'lose' THEN 1 ELSE 0 END) AS losses
FROM player_games
GROUP BY player
ORDER BY wins DESC, player
`
