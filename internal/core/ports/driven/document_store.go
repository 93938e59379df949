package driven

import (
	"context"

	"github.com/cam-barts/rs-document/internal/core/domain"
)

// DocumentStore persists source documents. It is the source the batch and
// worker run modes use: LoadBatch resolves a BatchJob's document IDs into
// Documents. The chunks CleanAndSplit produces are persisted through
// ChunkStore.SaveBatch.
type DocumentStore interface {
	// Save creates or updates a single document under id.
	Save(ctx context.Context, id string, doc *domain.Document) error

	// LoadBatch retrieves the documents referenced by ids, in request
	// order. A missing id yields domain.ErrNotFound.
	LoadBatch(ctx context.Context, ids []string) ([]*domain.Document, error)

	// Ping checks if the store backend is healthy.
	Ping(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

// ChunkStore persists the chunks CleanAndSplit produces for a document.
type ChunkStore interface {
	// SaveBatch persists the chunks produced from one source document, in
	// split order, replacing any chunks previously saved for it.
	SaveBatch(ctx context.Context, documentID string, chunks []*domain.Chunk) error

	// GetByDocument retrieves all chunks for a document, in split order.
	GetByDocument(ctx context.Context, documentID string) ([]*domain.Chunk, error)

	// DeleteByDocument deletes all chunks for a document.
	DeleteByDocument(ctx context.Context, documentID string) error
}
