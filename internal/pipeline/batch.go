// Package pipeline implements the engine's data-parallel batch entrypoint
// (C5): clean then recursively split every input document, concurrently,
// with per-document output preserved in input order.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cam-barts/rs-document/internal/cleaners"
	"github.com/cam-barts/rs-document/internal/core/domain"
	"github.com/cam-barts/rs-document/internal/splitter"
)

// Options controls CleanAndSplit's behavior beyond the two required
// arguments.
type Options struct {
	// Workers bounds the number of documents processed concurrently. Zero
	// or negative means runtime.NumCPU().
	Workers int

	// StrictSizeBound re-cuts any chunk C3 emits that still exceeds
	// chunkSize with the fixed-size splitter (C4). Off by default,
	// matching the reference's behavior of emitting oversized atomic
	// fragments verbatim.
	StrictSizeBound bool
}

// CleanAndSplit runs every document in docs through the fixed
// CleanerPipeline and then the recursive character splitter, data-parallel
// across documents. Output is a slice with one entry per input document,
// in input order, each holding that document's chunks in split order —
// the position of docs[i]'s chunks in the result is fixed at i,
// independent of which worker finishes first.
//
// Metadata is read but never mutated by the pipeline, so documents may be
// safely shared read-only across workers.
func CleanAndSplit(ctx context.Context, docs []*domain.Document, chunkSize int) ([][]*domain.Chunk, error) {
	return CleanAndSplitWithOptions(ctx, docs, chunkSize, Options{})
}

// CleanAndSplitWithOptions is CleanAndSplit with explicit worker count and
// size-bound behavior.
func CleanAndSplitWithOptions(ctx context.Context, docs []*domain.Document, chunkSize int, opts Options) ([][]*domain.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("clean_and_split: chunk_size must be > 0, got %d: %w", chunkSize, domain.ErrInvalidArgument)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(docs) {
		workers = len(docs)
	}

	results := make([][]*domain.Chunk, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, d := range docs {
		i, d := i, d
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			chunks, err := processOne(d, chunkSize, opts.StrictSizeBound)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			results[i] = chunks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// processOne cleans and splits a single document. It works on a worker-
// local copy so the caller-visible Document is never mutated.
func processOne(d *domain.Document, chunkSize int, strictSizeBound bool) ([]*domain.Chunk, error) {
	local := d.Clone()
	local.Content = cleaners.Clean(local.Content)

	chunks, err := splitter.SplitRecursive(local, chunkSize)
	if err != nil {
		return nil, err
	}
	if !strictSizeBound {
		return chunks, nil
	}

	bounded := make([]*domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if len([]rune(c.Content)) <= chunkSize {
			bounded = append(bounded, c)
			continue
		}
		recut, err := splitter.SplitOnNumCharacters(c, chunkSize)
		if err != nil {
			return nil, err
		}
		bounded = append(bounded, recut...)
	}
	return bounded, nil
}
