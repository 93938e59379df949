package domain

import "testing"

func TestNewDocument(t *testing.T) {
	doc := NewDocument("hello", map[string]string{"source": "test.txt"})
	if doc.Content != "hello" {
		t.Errorf("expected content 'hello', got %q", doc.Content)
	}
	if doc.Metadata["source"] != "test.txt" {
		t.Errorf("expected source test.txt, got %s", doc.Metadata["source"])
	}
}

func TestNewDocument_NilMetadata(t *testing.T) {
	doc := NewDocument("hello", nil)
	if doc.Metadata == nil {
		t.Fatal("expected non-nil metadata map")
	}
	if len(doc.Metadata) != 0 {
		t.Errorf("expected empty metadata, got %v", doc.Metadata)
	}
}

func TestDocument_Clone(t *testing.T) {
	original := NewDocument("hello", map[string]string{"id": "1"})
	clone := original.Clone()

	clone.Content = "changed"
	clone.Metadata["id"] = "2"
	clone.Metadata["new"] = "field"

	if original.Content != "hello" {
		t.Errorf("mutating clone content affected original: %q", original.Content)
	}
	if original.Metadata["id"] != "1" {
		t.Errorf("mutating clone metadata affected original: %v", original.Metadata)
	}
	if _, ok := original.Metadata["new"]; ok {
		t.Errorf("adding a key to clone metadata affected original: %v", original.Metadata)
	}
}

func TestDocument_Equal(t *testing.T) {
	a := NewDocument("same", map[string]string{"k": "v"})
	b := NewDocument("same", map[string]string{"k": "v"})
	c := NewDocument("different", map[string]string{"k": "v"})
	d := NewDocument("same", map[string]string{"k": "other"})
	e := NewDocument("same", map[string]string{"k": "v", "extra": "1"})

	if !a.Equal(b) {
		t.Error("expected equal documents to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected different content to compare unequal")
	}
	if a.Equal(d) {
		t.Error("expected different metadata value to compare unequal")
	}
	if a.Equal(e) {
		t.Error("expected different metadata key set to compare unequal")
	}
	if a.Equal(nil) {
		t.Error("expected comparison against nil to be false")
	}
}

func TestDocument_String(t *testing.T) {
	doc := NewDocument(`has "quotes"`, map[string]string{"k": "v"})
	got := doc.String()
	want := `Document(page_content="has \"quotes\"", metadata=map[k:v])`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestChunkIsDocument(t *testing.T) {
	var c *Chunk = NewDocument("chunk content", map[string]string{"id": "1"})
	if c.Content != "chunk content" {
		t.Errorf("expected chunk content to be settable via Document API, got %q", c.Content)
	}
}
