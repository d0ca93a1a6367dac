// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refdata manages the static reference tables behind the
// selection controls: countries and per-sector commodity lists. The
// tables are inputs to queries, not query results, so persisting them
// does not conflict with the engine's in-process-only result caching.
package refdata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/resilience-engine/pkg/types"
)

const dbFile = "reference.db"

// Store manages the reference SQLite database under the data
// directory.
type Store struct {
	db *sql.DB
}

// Open opens or creates the reference database at
// dataDir/reference.db, creating the schema if needed.
func Open(cfg types.RefDataConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS countries (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS commodities (
			sector TEXT NOT NULL,
			code TEXT NOT NULL,
			label TEXT NOT NULL,
			PRIMARY KEY (sector, code)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commodities_sector ON commodities(sector)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// UpsertCountries replaces or inserts country rows. Option values are
// country codes; labels are display names.
func (s *Store) UpsertCountries(ctx context.Context, options []types.Option) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO countries (code, name) VALUES (?, ?)
		 ON CONFLICT(code) DO UPDATE SET name=excluded.name`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, opt := range options {
		if _, err := stmt.ExecContext(ctx, opt.Value, opt.Label); err != nil {
			return fmt.Errorf("upserting country %s: %w", opt.Value, err)
		}
	}
	return tx.Commit()
}

// Countries returns all stored countries as label/value options,
// ordered by name.
func (s *Store) Countries(ctx context.Context) ([]types.Option, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying countries: %w", err)
	}
	defer rows.Close()

	var options []types.Option
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, fmt.Errorf("scanning country row: %w", err)
		}
		options = append(options, types.Option{Label: name, Value: code})
	}
	return options, rows.Err()
}

// UpsertCommodities replaces or inserts one sector's commodity rows.
func (s *Store) UpsertCommodities(ctx context.Context, sector string, options []types.Option) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO commodities (sector, code, label) VALUES (?, ?, ?)
		 ON CONFLICT(sector, code) DO UPDATE SET label=excluded.label`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, opt := range options {
		if _, err := stmt.ExecContext(ctx, sector, opt.Value, opt.Label); err != nil {
			return fmt.Errorf("upserting commodity %s: %w", opt.Value, err)
		}
	}
	return tx.Commit()
}

// Commodities returns one sector's commodity options ordered by code.
func (s *Store) Commodities(ctx context.Context, sector string) ([]types.Option, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, label FROM commodities WHERE sector = ? ORDER BY CAST(code AS INTEGER)`, sector)
	if err != nil {
		return nil, fmt.Errorf("querying commodities: %w", err)
	}
	defer rows.Close()

	var options []types.Option
	for rows.Next() {
		var code, label string
		if err := rows.Scan(&code, &label); err != nil {
			return nil, fmt.Errorf("scanning commodity row: %w", err)
		}
		options = append(options, types.Option{Label: label, Value: code})
	}
	return options, rows.Err()
}
