package theme

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps preferences in a SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens the database at path and creates the table.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("theme: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS theme_preference (
		client TEXT PRIMARY KEY,
		theme  TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("theme: create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, client string) (Theme, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT theme FROM theme_preference WHERE client = ?`, client).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return Light, nil
	}
	if err != nil {
		return "", fmt.Errorf("theme: load %s: %w", client, err)
	}

	return Parse(name)
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, client string, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO theme_preference (client, theme)
		VALUES (?, ?)
		ON CONFLICT(client) DO UPDATE SET theme = excluded.theme`, client, string(t))
	if err != nil {
		return fmt.Errorf("theme: save %s: %w", client, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
