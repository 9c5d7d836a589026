package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
)

// Client represents a Postgres client for the remote persistence
// collaborator. The core treats it as fallible: construction errors put the
// system into local-only degraded mode instead of failing startup.
type Client struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

// Pool returns the underlying connection pool.
func (p *Client) Pool() *pgxpool.Pool {
	return p.pool
}

// DB returns a database/sql adapter over the pool for the squirrel-built
// repositories.
func (p *Client) DB() *sql.DB {
	return p.db
}

// Close closes the database connection for graceful shutdown.
func (p *Client) Close() {
	p.pool.Close()
}

// NewClient connects to Postgres and runs pending migrations.
func NewClient(ctx context.Context) (*Client, error) {
	connStr := fmt.Sprintf(
		"host=%s port=5432 user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("POS_PG_HOST"),
		os.Getenv("POS_PG_USER"),
		os.Getenv("POS_PG_PASSWORD"),
		os.Getenv("POS_PG_DB"),
	)

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := goose.Up(db, viper.GetString("postgres.migrations_path")); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Client{
		pool: pool,
		db:   db,
	}, nil
}
