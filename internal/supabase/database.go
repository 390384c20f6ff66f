package supabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"genai-space-backend/internal/store"
)

const documentsTable = "documents"

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// ListDocuments reads the whole collection ordered by id.
func (d *DatabaseClient) ListDocuments(ctx context.Context, collection string) ([]store.Document, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, data
		FROM documents
		WHERE collection = $1
		ORDER BY id
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		fields := store.Fields{}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		docs = append(docs, store.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

// MergeDocument shallow-merges fields into the stored document. It returns
// store.ErrNotFound when no document matched.
func (d *DatabaseClient) MergeDocument(ctx context.Context, collection, id string, fields store.Fields) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}

	res, err := d.db.ExecContext(ctx, `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`, collection, id, string(patch))
	if err != nil {
		return fmt.Errorf("failed to merge document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to merge document: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
