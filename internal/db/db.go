package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"career-coach/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

const pingTimeout = 3 * time.Second

// Pinger es la parte de *pgxpool.Pool que usa Ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping verifica conectividad; pgxpool.NewWithConfig no abre conexiones hasta el primer uso.
func Ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// schema se aplica en cada arranque; todas las sentencias son idempotentes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS career_history (
		id               BIGSERIAL PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		job_title        TEXT NOT NULL,
		company_name     TEXT NOT NULL,
		job_description  TEXT NOT NULL,
		job_url          TEXT NOT NULL DEFAULT '',
		match_score      DOUBLE PRECISION NOT NULL DEFAULT 0,
		analysis_text    JSONB NOT NULL DEFAULT '{}'::jsonb,
		company_research JSONB,
		cover_letter     TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS career_history_user_created_idx ON career_history (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS assessment_snapshots (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		snapshot   JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS assessment_snapshots_user_created_idx ON assessment_snapshots (user_id, created_at DESC)`,
}

// Execer permite aplicar el esquema sobre un pool o una transacción.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema crea las tablas que faltan.
func EnsureSchema(ctx context.Context, conn Execer) error {
	for i, stmt := range schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
