// Package splitter implements the engine's two splitting strategies: the
// fixed-size splitter (C4) and the recursive character splitter (C3), both
// counting length in Unicode scalar values rather than bytes.
package splitter

import (
	"fmt"

	"github.com/cam-barts/rs-document/internal/core/domain"
)

// SplitOnNumCharacters walks doc.Content by Unicode scalar value, emitting
// chunks of exactly n scalars each (the last may be shorter). Empty content
// produces no chunks. Each chunk carries a clone of doc.Metadata so callers
// can mutate one chunk's metadata without affecting the others or the
// source document.
func SplitOnNumCharacters(doc *domain.Document, n int) ([]*domain.Chunk, error) {
	if n <= 0 {
		return nil, fmt.Errorf("split_on_num_characters: n must be > 0, got %d: %w", n, domain.ErrInvalidArgument)
	}
	if doc.Content == "" {
		return nil, nil
	}

	runes := []rune(doc.Content)
	chunks := make([]*domain.Chunk, 0, (len(runes)+n-1)/n)
	for start := 0; start < len(runes); start += n {
		end := start + n
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.NewDocument(string(runes[start:end]), cloneMetadata(doc.Metadata)))
	}
	return chunks, nil
}

func cloneMetadata(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
