package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// createdAtLayout is RFC 3339 with fixed nanosecond width so that the stored
// text sorts chronologically.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Document is one stored record: the store-assigned id, the server-assigned
// creation time and the entity fields as raw JSON.
type Document struct {
	ID        string
	CreatedAt time.Time
	Body      json.RawMessage
}

// Store is the document persistence capability: append a record to a
// collection, read a collection back newest-first.
type Store interface {
	Put(ctx context.Context, collection string, createdAt time.Time, body json.RawMessage) (string, error)
	List(ctx context.Context, collection string) ([]Document, error)
}

// SQLite persists documents in a single sqlite table, one row per record.
type SQLite struct {
	db *sql.DB
}

// Open creates the connection pool and sets up the schema.
func Open(dataSourceName string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT NOT NULL PRIMARY KEY,
		collection TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_collection_created_at
		ON documents (collection, created_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Put appends a document to a collection and returns the assigned id.
func (s *SQLite) Put(ctx context.Context, collection string, createdAt time.Time, body json.RawMessage) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO documents (id, collection, body, created_at) VALUES (?, ?, ?, ?)",
		id, collection, string(body), createdAt.UTC().Format(createdAtLayout))
	if err != nil {
		return "", err
	}
	return id, nil
}

// List returns every document in a collection, newest first. Records sharing a
// creation time come back in reverse insertion order, stable within one query.
func (s *SQLite) List(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, body, created_at FROM documents WHERE collection = ? ORDER BY created_at DESC, rowid DESC",
		collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var body, createdAt string
		if err := rows.Scan(&doc.ID, &body, &createdAt); err != nil {
			return nil, err
		}
		doc.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, err
		}
		doc.Body = json.RawMessage(body)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
