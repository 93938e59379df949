package services

import (
	"context"

	"github.com/cam-barts/rs-document/internal/core/domain"
	"github.com/cam-barts/rs-document/internal/core/ports/driving"
	"github.com/cam-barts/rs-document/internal/pipeline"
)

var _ driving.DocumentService = (*documentService)(nil)

// documentService adapts the engine's C5 batch pipeline to the
// DocumentService port so HTTP, batch, and worker run modes all go
// through the same entrypoint.
type documentService struct {
	opts pipeline.Options
}

// NewDocumentService constructs a DocumentService backed by
// pipeline.CleanAndSplit. opts controls the worker pool size and whether
// oversized C3 output is re-cut with C4.
func NewDocumentService(opts pipeline.Options) driving.DocumentService {
	return &documentService{opts: opts}
}

func (s *documentService) CleanAndSplit(ctx context.Context, docs []*domain.Document, chunkSize int) ([][]*domain.Chunk, error) {
	return pipeline.CleanAndSplitWithOptions(ctx, docs, chunkSize, s.opts)
}
