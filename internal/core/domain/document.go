package domain

import "fmt"

// Document holds page content plus arbitrary string-keyed metadata.
// Content is counted and indexed by Unicode scalar value, not by byte,
// everywhere it crosses a chunk-size boundary. Metadata key order is not
// semantically significant, but metadata must be preserved byte-for-byte
// (same key set, same values) across every cleaner and splitter call.
type Document struct {
	Content  string
	Metadata map[string]string
}

// NewDocument constructs a Document from content and metadata. The
// metadata map is not copied; callers that need isolation should Clone.
func NewDocument(content string, metadata map[string]string) *Document {
	if metadata == nil {
		metadata = make(map[string]string)
	}
	return &Document{Content: content, Metadata: metadata}
}

// Clone returns a deep copy: a new Document with its own metadata map so
// later mutation of either copy's metadata cannot affect the other.
func (d *Document) Clone() *Document {
	metadata := make(map[string]string, len(d.Metadata))
	for k, v := range d.Metadata {
		metadata[k] = v
	}
	return &Document{Content: d.Content, Metadata: metadata}
}

// Equal reports whether two documents are structurally identical: same
// content, same metadata key set and values.
func (d *Document) Equal(other *Document) bool {
	if other == nil {
		return false
	}
	if d.Content != other.Content {
		return false
	}
	if len(d.Metadata) != len(other.Metadata) {
		return false
	}
	for k, v := range d.Metadata {
		if ov, ok := other.Metadata[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// String renders the document the way the host ecosystem's default
// string repr would: double-quoted content, Go-map-ordered metadata.
func (d *Document) String() string {
	return fmt.Sprintf("Document(page_content=%q, metadata=%v)", d.Content, d.Metadata)
}

// Chunk is structurally identical to a Document; it is what splitters
// produce. Kept as a distinct name so call sites read as "I hold one
// piece of a larger document" rather than "I hold a whole document".
type Chunk = Document
