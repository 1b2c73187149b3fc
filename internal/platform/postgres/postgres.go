// Package postgres opens the pgx connection pool used by the inspection store.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"uvci/internal/platform/config"
)

// Pool wraps pgxpool.Pool with health checking capabilities.
type Pool struct {
	*pgxpool.Pool
}

// New opens and pings a pool. Returns nil if the URL is empty (Postgres not
// configured).
func New(ctx context.Context, cfg config.PostgresConfig) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return &Pool{Pool: pool}, nil
}

// Health checks if the database is reachable.
func (p *Pool) Health(ctx context.Context) error {
	return p.Ping(ctx)
}
