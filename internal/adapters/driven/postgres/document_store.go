package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cam-barts/rs-document/internal/core/domain"
	"github.com/cam-barts/rs-document/internal/core/ports/driven"
	"github.com/lib/pq"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Save creates or updates a document under id.
func (s *DocumentStore) Save(ctx context.Context, id string, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO documents (id, content, metadata, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, id, doc.Content, metadataJSON); err != nil {
		return fmt.Errorf("failed to save document %s: %w", id, err)
	}
	return nil
}

// LoadBatch retrieves the documents referenced by ids, in request order.
func (s *DocumentStore) LoadBatch(ctx context.Context, ids []string) ([]*domain.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, content, metadata FROM documents WHERE id = ANY($1)`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Document, len(ids))
	for rows.Next() {
		var id, content string
		var metadataJSON []byte
		if err := rows.Scan(&id, &content, &metadataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}

		metadata := make(map[string]string)
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata for %s: %w", id, err)
			}
		}
		byID[id] = domain.NewDocument(content, metadata)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}

	docs := make([]*domain.Document, 0, len(ids))
	for _, id := range ids {
		doc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Ping checks if the database is reachable.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *DocumentStore) Close() error {
	return s.db.Close()
}
