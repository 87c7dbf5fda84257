package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotConfigured = errors.New("database url not configured")

const (
	StatusDisabled = "disabled"
	StatusUp       = "up"
	StatusDown     = "down"
)

// Connect opens a pool against dbURL and verifies it with a ping.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	if dbURL == "" {
		return nil, ErrNotConfigured
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing db config: %w", err)
	}
	config.MaxConns = 4
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging db: %w", err)
	}

	return pool, nil
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Status reports the health of an optional store. A nil pinger means the
// store is not configured.
func Status(ctx context.Context, p Pinger) string {
	if p == nil {
		return StatusDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return StatusDown
	}
	return StatusUp
}
