package splitter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cam-barts/rs-document/internal/core/domain"
)

// DefaultSeparators is the priority-ordered separator list used when a
// caller does not supply its own: paragraph breaks first, then lines, then
// words, with the empty string as the terminal "split between every
// character" fallback.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// DefaultOverlap returns the engine's default chunk overlap for a given
// chunk size: one third, integer division.
func DefaultOverlap(chunkSize int) int {
	return chunkSize / 3
}

// SplitRecursive splits doc.Content with DefaultSeparators and
// DefaultOverlap(chunkSize).
func SplitRecursive(doc *domain.Document, chunkSize int) ([]*domain.Chunk, error) {
	return SplitRecursiveWithOptions(doc, chunkSize, DefaultSeparators, DefaultOverlap(chunkSize))
}

// SplitRecursiveWithOptions runs the two-phase recursive character
// splitter: Phase A descends through separators (highest priority first)
// to produce small fragments no single one of which exceeds chunkSize
// (barring the terminal empty-string separator, which cannot); Phase B
// walks the fragments left to right, merging them into chunks up to
// chunkSize and carrying `overlap` scalar values of trailing context into
// the next chunk.
//
// separators must be non-nil; pass DefaultSeparators for the engine's
// usual priority list. overlap must be strictly less than chunkSize.
func SplitRecursiveWithOptions(doc *domain.Document, chunkSize int, separators []string, overlap int) ([]*domain.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("split_recursive: chunk_size must be > 0, got %d: %w", chunkSize, domain.ErrInvalidArgument)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("split_recursive: overlap must be < chunk_size (overlap=%d, chunk_size=%d): %w", overlap, chunkSize, domain.ErrInvalidArgument)
	}
	if doc.Content == "" {
		return nil, nil
	}

	fragments := splitPhaseA(doc.Content, chunkSize, separators)
	pieces := mergePhaseB(fragments, chunkSize, overlap)

	chunks := make([]*domain.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = domain.NewDocument(p, cloneMetadata(doc.Metadata))
	}
	return chunks, nil
}

// splitPhaseA is the recursive separator descent. It returns an ordered
// list of fragments whose concatenation (joined with the empty string)
// reproduces content, since each fragment carries its own trailing
// separator.
func splitPhaseA(content string, chunkSize int, separators []string) []string {
	if len(separators) == 0 {
		return []string{content}
	}

	sep, restIdx := pickSeparator(content, separators)
	rest := separators[restIdx:]

	pieces := splitPreserving(content, sep)
	fragments := make([]string, 0, len(pieces))
	for _, p := range pieces {
		switch {
		case utf8.RuneCountInString(p) < chunkSize:
			fragments = append(fragments, p)
		case sep == "":
			// Smallest unsplittable unit; Phase B polices its size.
			fragments = append(fragments, p)
		default:
			fragments = append(fragments, splitPhaseA(p, chunkSize, rest)...)
		}
	}
	return fragments
}

// pickSeparator returns the first separator that occurs in content and the
// index just past it in separators (the restricted, lower-priority list
// for any further recursion). Since the empty string occurs trivially in
// any string, it is always "found" once reached, which is exactly the
// terminal fallback the caller wants.
func pickSeparator(content string, separators []string) (sep string, restIdx int) {
	for i, s := range separators {
		if strings.Contains(content, s) {
			return s, i + 1
		}
	}
	return separators[len(separators)-1], len(separators)
}

// splitPreserving splits content on sep, appending sep back onto every
// piece but the last so the pieces concatenate (with "") to content. For
// the empty separator it splits into individual Unicode scalar values.
func splitPreserving(content, sep string) []string {
	if sep == "" {
		return strings.Split(content, "")
	}
	parts := strings.Split(content, sep)
	out := make([]string, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 {
			out[i] = p + sep
		} else {
			out[i] = p
		}
	}
	return out
}

// mergePhaseB walks fragments left to right, accumulating them into a
// buffer and cutting a new chunk whenever the next fragment would push the
// buffer past chunkSize. After each cut, leading fragments are dropped
// from the buffer until it holds at most overlap scalar values and the
// next fragment fits within chunkSize alongside it; the residue becomes
// the start of the next chunk.
func mergePhaseB(fragments []string, chunkSize, overlap int) []string {
	if len(fragments) == 0 {
		return nil
	}

	var chunks []string
	buf := make([]string, 0, len(fragments))
	bufLen := 0

	for _, f := range fragments {
		fLen := utf8.RuneCountInString(f)
		if bufLen > 0 && bufLen+fLen > chunkSize {
			chunks = append(chunks, strings.Join(buf, ""))
			for len(buf) > 0 && (bufLen > overlap || bufLen+fLen > chunkSize) {
				bufLen -= utf8.RuneCountInString(buf[0])
				buf = buf[1:]
			}
		}
		buf = append(buf, f)
		bufLen += fLen
	}

	if bufLen > 0 {
		chunks = append(chunks, strings.Join(buf, ""))
	}
	return chunks
}
