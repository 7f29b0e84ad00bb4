package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dhcgn/msg-ledger/model"
)

const schema = `
	CREATE TABLE IF NOT EXISTS messages (
		collection TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		sender TEXT NOT NULL,
		recipient TEXT NOT NULL,
		message TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		PRIMARY KEY (collection, position)
	);`

// SQLiteBackend stores collections as ordered rows in a single table.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLiteBackend opens the database at path, creating parent directories and the schema.
func OpenSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Load(name string) ([]model.Message, error) {
	if name == "" {
		return nil, loadError(name, ErrEmptyResource)
	}

	rows, err := s.db.Query(
		`SELECT id, sender, recipient, message, timestamp FROM messages WHERE collection = ? ORDER BY position`,
		name,
	)
	if err != nil {
		return nil, loadError(name, err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Recipient, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, loadError(name, fmt.Errorf("%w: %w", ErrCorrupt, err))
		}
		if msg.ID == "" {
			return nil, loadError(name, fmt.Errorf("%w: row %d has no id", ErrCorrupt, len(messages)))
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, loadError(name, err)
	}

	return messages, nil
}

func (s *SQLiteBackend) Save(name string, messages []model.Message) error {
	if name == "" {
		return saveError(name, ErrEmptyResource)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return saveError(name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages WHERE collection = ?`, name); err != nil {
		return saveError(name, fmt.Errorf("clear: %w", err))
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (collection, position, id, sender, recipient, message, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return saveError(name, err)
	}
	defer stmt.Close()

	for i, msg := range messages {
		if _, err := stmt.Exec(name, i, msg.ID, msg.Sender, msg.Recipient, msg.Body, msg.CreatedAt); err != nil {
			return saveError(name, fmt.Errorf("insert %s: %w", msg.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return saveError(name, fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
