// Package history is the write-only audit of finished games. Live
// sessions are never persisted or resumed; a record exists only once a
// game reached its winner.
package history

import (
	"os"
	"strings"
	"time"
)

// Elimination marks one death: who, in which round, on which pull of
// their cylinder.
type Elimination struct {
	Name  string `json:"name"`
	Round uint16 `json:"round"`
	Shots int    `json:"shots"`
}

// Record summarizes one finished game.
type Record struct {
	StartedAt    time.Time
	EndedAt      time.Time
	Rounds       int
	Seats        int
	WinnerName   string
	Eliminations []Elimination
}

type Service interface {
	Close() error
	// RecordGame persists one finished game. Failures are logged, never
	// surfaced: the game flow must not depend on the ledger.
	RecordGame(rec Record)
}

type noopService struct{}

func NewNoopService() Service { return &noopService{} }

func (n *noopService) Close() error { return nil }

func (n *noopService) RecordGame(_ Record) {}

// NewService picks a backend by driver name: "sqlite", "postgres", or
// anything else for the in-memory no-op. An empty dsn falls back to the
// driver's default location.
func NewService(driver, dsn string) (Service, string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "local":
		if strings.TrimSpace(dsn) == "" {
			dsn = sqlitePathFromEnv()
		}
		svc, err := NewSQLiteService(dsn)
		if err != nil {
			return nil, "", err
		}
		return svc, "sqlite", nil
	case "postgres", "pg":
		if strings.TrimSpace(dsn) == "" {
			dsn = postgresDSNFromEnv()
		}
		svc, err := NewPostgresService(dsn)
		if err != nil {
			return nil, "", err
		}
		return svc, "postgres", nil
	default:
		return NewNoopService(), "memory-noop", nil
	}
}

// NewServiceFromEnv reads HISTORY_DRIVER and the matching DSN env vars.
func NewServiceFromEnv() (Service, string, error) {
	return NewService(os.Getenv("HISTORY_DRIVER"), "")
}
