package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaredmarko/worldly-demo/internal/common/config"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteClient wraps the SQL database connection.
type SQLiteClient struct {
	DB *sql.DB
}

// NewSQLite creates a new SQLite client.
func NewSQLite(cfg config.SQLiteConfig) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// sqlite serializes writers; a single connection avoids lock contention
	// on the shared file while reads stay concurrent through it.
	db.SetMaxOpenConns(1)

	return &SQLiteClient{DB: db}, nil
}

// Ping tests the database connection.
func (c *SQLiteClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection.
func (c *SQLiteClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// GetDB returns the underlying *sql.DB for compatibility.
func (c *SQLiteClient) GetDB() *sql.DB {
	return c.DB
}
