package automatic

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	game_id INTEGER NOT NULL,
	seed TEXT NOT NULL,
	player TEXT NOT NULL,
	deck TEXT NOT NULL,
	score INTEGER NOT NULL,
	turns INTEGER NOT NULL,
	churns INTEGER NOT NULL,
	cards_placed INTEGER NOT NULL,
	position_hash TEXT NOT NULL,
	moves TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS games_run ON games(run_id);
`

// ResultStore keeps game results in a SQLite database, so runs can be
// compared later. It is safe for concurrent use.
type ResultStore struct {
	db *sql.DB
}

// OpenResultStore opens (creating if needed) the database at path.
func OpenResultStore(ctx context.Context, path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating results schema: %w", err)
	}
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

// isBusy reports whether err is SQLite telling us another writer holds the
// lock.
func isBusy(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}

// Insert stores one result, retrying while the database is busy.
func (s *ResultStore) Insert(ctx context.Context, runID, player, deck string, r *GameResult) error {
	return retry.Do(
		func() error {
			_, err := s.db.ExecContext(ctx,
				`INSERT INTO games (run_id, game_id, seed, player, deck, score, turns,
				churns, cards_placed, position_hash, moves)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, r.GameID, r.Seeds.String(), player, deck, r.Score, r.Turns,
				r.Churns, r.CardsPlaced, strconv.FormatUint(r.Hash, 16),
				strings.Join(r.Moves, ";"))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(20*time.Millisecond),
		retry.RetryIf(isBusy),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("n", n).Int("game", r.GameID).Msg("results-db-busy")
		}),
	)
}

// RunStats summarizes a stored run.
type RunStats struct {
	Games     int
	MeanScore float64
	BestScore int
	BestGame  int
}

func (s *ResultStore) RunStats(ctx context.Context, runID string) (*RunStats, error) {
	st := &RunStats{}
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(score), 0)
		FROM games WHERE run_id = ?`, runID)
	if err := row.Scan(&st.Games, &st.MeanScore, &st.BestScore); err != nil {
		return nil, err
	}
	if st.Games == 0 {
		return st, nil
	}
	row = s.db.QueryRowContext(ctx,
		`SELECT game_id FROM games WHERE run_id = ? AND score = ?
		ORDER BY game_id LIMIT 1`, runID, st.BestScore)
	if err := row.Scan(&st.BestGame); err != nil {
		return nil, err
	}
	return st, nil
}

// Moves returns the stored move notation of one game of a run.
func (s *ResultStore) Moves(ctx context.Context, runID string, gameID int) ([]string, error) {
	var moves string
	row := s.db.QueryRowContext(ctx,
		`SELECT moves FROM games WHERE run_id = ? AND game_id = ?`, runID, gameID)
	if err := row.Scan(&moves); err != nil {
		return nil, err
	}
	if moves == "" {
		return nil, nil
	}
	return strings.Split(moves, ";"), nil
}
