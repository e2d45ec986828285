package database

import (
	"commission-central/internal/config"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLite opens a file-backed commission database for local use.
func NewSQLite(cfg *config.Config) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", cfg.SQLitePath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.SQLitePath, err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	return db, nil
}
