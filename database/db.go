package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Migrate() error {
	queries := []string{
		// Notes table. Note ids are client-supplied and unique per owner,
		// so two users may hold the same id without colliding.
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,

		// Tag index. Rewritten wholesale with its parent note; no foreign
		// key to notes because tag rows are always managed inside the same
		// transaction as the note itself.
		`CREATE TABLE IF NOT EXISTS note_tags (
			user_id TEXT NOT NULL,
			note_id TEXT NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (user_id, note_id, tag)
		)`,

		// Tombstone log, append-only. A note re-created and re-deleted
		// under the same id produces a second row, so no unique constraint.
		`CREATE TABLE IF NOT EXISTS deleted_notes (
			note_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			deleted_at DATETIME NOT NULL
		)`,

		// Sessions issued by the auth handlers, swept by the cleanup routine
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			last_used_at DATETIME NOT NULL,
			expires_at DATETIME NOT NULL
		)`,

		// Indexes for the sync read path and the session sweep
		`CREATE INDEX IF NOT EXISTS idx_notes_user_updated ON notes(user_id, updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_deleted_notes_user_deleted ON deleted_notes(user_id, deleted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
