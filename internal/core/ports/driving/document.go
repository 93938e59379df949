package driving

import (
	"context"

	"github.com/cam-barts/rs-document/internal/core/domain"
)

// DocumentService exposes the engine's clean-and-split operation to the
// driving adapters (HTTP, batch CLI, worker).
type DocumentService interface {
	// CleanAndSplit runs every document in docs through the fixed cleaner
	// pipeline and the recursive character splitter, producing chunks no
	// larger than chunkSize Unicode scalar values. Each input document's
	// chunks occupy their own slot in the returned slice, in input order.
	// Returns domain.ErrInvalidArgument if chunkSize <= 0.
	CleanAndSplit(ctx context.Context, docs []*domain.Document, chunkSize int) ([][]*domain.Chunk, error)
}
