package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createPlansTable = `
CREATE TABLE IF NOT EXISTS trip_plans (
	id         UUID PRIMARY KEY,
	plan       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and makes sure the plans table
// exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createPlansTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create trip_plans table: %w", err)
	}

	log.Println("Postgres plan store ready")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, id string, plan json.RawMessage) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO trip_plans (id, plan) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET plan = EXCLUDED.plan`,
		id, []byte(plan))
	if err != nil {
		return fmt.Errorf("failed to save plan %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT plan FROM trip_plans WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return json.RawMessage(raw), nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
