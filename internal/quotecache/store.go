package quotecache

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"MarketMath/internal/model"
)

// SQLiteStore keeps raw fetched bars per (symbol, period). Only acquisition
// data lives here; derived series are never stored.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// Entry is one cached fetch.
type Entry struct {
	Bars      []model.OHLCV
	FetchedAt time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log.With().Str("component", "quotecache").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite quote cache opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_fetches (
			symbol     TEXT NOT NULL,
			period     TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, period)
		)`,
		`CREATE TABLE IF NOT EXISTS quote_bars (
			symbol TEXT NOT NULL,
			period TEXT NOT NULL,
			ts     INTEGER NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (symbol, period, ts)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Get returns the cached entry; ok is false when nothing is stored.
func (s *SQLiteStore) Get(symbol string, period model.Period) (entry Entry, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fetchedAt int64
	err = s.db.QueryRow(`SELECT fetched_at FROM quote_fetches WHERE symbol = ? AND period = ?`,
		symbol, string(period)).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("query fetch time: %w", err)
	}

	rows, err := s.db.Query(`SELECT ts, open, high, low, close, volume FROM quote_bars
		WHERE symbol = ? AND period = ? ORDER BY ts`, symbol, string(period))
	if err != nil {
		return Entry{}, false, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	entry.FetchedAt = time.Unix(fetchedAt, 0).UTC()
	entry.Bars = []model.OHLCV{}
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return Entry{}, false, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		entry.Bars = append(entry.Bars, b)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, false, fmt.Errorf("iterate bars: %w", err)
	}
	return entry, true, nil
}

// Put replaces the cached bars of (symbol, period) in one transaction.
func (s *SQLiteStore) Put(symbol string, period model.Period, bars []model.OHLCV, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM quote_bars WHERE symbol = ? AND period = ?`, symbol, string(period)); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO quote_bars
		(symbol, period, ts, open, high, low, close, volume) VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, b := range bars {
		if _, err := stmt.Exec(symbol, string(period), b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO quote_fetches (symbol, period, fetched_at) VALUES (?,?,?)`,
		symbol, string(period), fetchedAt.Unix()); err != nil {
		return fmt.Errorf("record fetch: %w", err)
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite quote cache")
	return s.db.Close()
}
