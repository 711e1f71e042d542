package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultSQLitePath = "liars_roulette.db"

type SQLiteService struct {
	db *sql.DB
}

func sqlitePathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv("HISTORY_SQLITE_PATH")); p != "" {
		return p
	}
	return defaultSQLitePath
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS game_history (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at_ms INTEGER NOT NULL,
    ended_at_ms   INTEGER NOT NULL,
    rounds        INTEGER NOT NULL,
    seats         INTEGER NOT NULL,
    winner_name   TEXT NOT NULL,
    eliminations  TEXT NOT NULL
)`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteService{db: db}, nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) RecordGame(rec Record) {
	elims, err := json.Marshal(rec.Eliminations)
	if err != nil {
		log.Printf("[History] marshal eliminations failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err = s.db.ExecContext(ctx, `
INSERT INTO game_history (started_at_ms, ended_at_ms, rounds, seats, winner_name, eliminations)
VALUES (?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.UTC().UnixMilli(),
		rec.EndedAt.UTC().UnixMilli(),
		rec.Rounds,
		rec.Seats,
		rec.WinnerName,
		string(elims),
	)
	if err != nil {
		log.Printf("[History] insert game record failed: %v", err)
	}
}
