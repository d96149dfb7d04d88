// internal/repository/postgres/document_store.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"crm-service/internal/domain/docstore"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// DocumentStore persists partitioned JSON documents in a single JSONB
// table. Partitions exist implicitly: a partition is the set of rows
// sharing a partition key.
type DocumentStore struct {
	db *pgxpool.Pool
}

func NewDocumentStore(db *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{db: db}
}

var _ docstore.Store = (*DocumentStore)(nil)

// Insert stores a new document and returns the assigned ULID.
func (s *DocumentStore) Insert(ctx context.Context, partition string, doc map[string]interface{}) (string, error) {
	id := ulid.Make().String()

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	query := `
		INSERT INTO documents (partition, id, doc)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.Exec(ctx, query, partition, id, data); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// Put stores a document under a caller-chosen id, replacing any existing
// content.
func (s *DocumentStore) Put(ctx context.Context, partition, id string, doc map[string]interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	query := `
		INSERT INTO documents (partition, id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (partition, id) DO UPDATE SET doc = EXCLUDED.doc
	`
	if _, err := s.db.Exec(ctx, query, partition, id, data); err != nil {
		return fmt.Errorf("failed to put document: %w", err)
	}
	return nil
}

// ListAll returns every document in the partition in store order.
func (s *DocumentStore) ListAll(ctx context.Context, partition string) ([]docstore.Document, error) {
	query := `
		SELECT id, doc
		FROM documents
		WHERE partition = $1
	`

	rows, err := s.db.Query(ctx, query, partition)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document %s: %w", id, err)
		}

		docs = append(docs, docstore.Document{ID: id, Data: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// GetOne returns a single document or xerrors.ErrNotFound.
func (s *DocumentStore) GetOne(ctx context.Context, partition, id string) (map[string]interface{}, error) {
	query := `
		SELECT doc
		FROM documents
		WHERE partition = $1 AND id = $2
	`

	var data []byte
	err := s.db.QueryRow(ctx, query, partition, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return doc, nil
}

// MergeUpdate merges partial onto the stored document with the JSONB
// concatenation operator, so only supplied fields are touched.
func (s *DocumentStore) MergeUpdate(ctx context.Context, partition, id string, partial map[string]interface{}) error {
	data, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("failed to marshal partial document: %w", err)
	}

	query := `
		UPDATE documents
		SET doc = doc || $3
		WHERE partition = $1 AND id = $2
	`
	tag, err := s.db.Exec(ctx, query, partition, id, data)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a document. Deleting an id that does not exist is fine;
// the end state is the same either way.
func (s *DocumentStore) Delete(ctx context.Context, partition, id string) error {
	query := `
		DELETE FROM documents
		WHERE partition = $1 AND id = $2
	`
	if _, err := s.db.Exec(ctx, query, partition, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
