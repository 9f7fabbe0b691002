// Package sink persists tournament progress outside the process: a
// Postgres table of finished games, and a Redis-backed counter store for
// distributed gauntlets. Neither is required by the core; both are
// optional collaborators the scheduler may attach.
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/ucigauntlet/arbiter/pkg/game"
)

// Postgres persists one row per finished game so a long gauntlet survives
// process restarts and can be queried independently of the PGN file.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to databaseURL and verifies connectivity.
func OpenPostgres(databaseURL string) (*Postgres, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("sink: DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("sink: opening postgres: %w", err)
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("sink: pinging postgres: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// CreateSchema provisions the results table if it doesn't already exist.
func (p *Postgres) CreateSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS arbiter_games (
			id          UUID PRIMARY KEY,
			round       INT NOT NULL,
			game_num    INT NOT NULL,
			white       TEXT NOT NULL,
			black       TEXT NOT NULL,
			result      TEXT NOT NULL,
			termination TEXT NOT NULL,
			ply_count   INT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("sink: creating schema: %w", err)
	}
	return nil
}

// SaveGame upserts one finished game's result row.
func (p *Postgres) SaveGame(ctx context.Context, g *game.Game) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO arbiter_games (id, round, game_num, white, black, result, termination, ply_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			result = EXCLUDED.result,
			termination = EXCLUDED.termination,
			ply_count = EXCLUDED.ply_count`,
		g.ID, g.Round, g.Num, g.Names[game.White], g.Names[game.Black],
		resultTag(g), g.State.String(), g.Ply())
	if err != nil {
		return fmt.Errorf("sink: saving game %s: %w", g.ID, err)
	}
	return nil
}

func resultTag(g *game.Game) string {
	if g.State == game.None {
		return "*"
	}
	turn := g.Current().Turn
	if g.State.IsDraw() {
		return "1/2-1/2"
	}
	if turn == game.White {
		return "0-1"
	}
	return "1-0"
}
