package services

import (
	"context"
	"testing"

	"github.com/cam-barts/rs-document/internal/core/domain"
	"github.com/cam-barts/rs-document/internal/pipeline"
)

func TestDocumentService_CleanAndSplit(t *testing.T) {
	svc := NewDocumentService(pipeline.Options{Workers: 2})

	docs := []*domain.Document{
		domain.NewDocument("hello world", map[string]string{"id": "1"}),
		domain.NewDocument("", map[string]string{"id": "2"}),
	}

	out, err := svc.CleanAndSplit(context.Background(), docs, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 result slots, got %d", len(out))
	}
	if len(out[0]) == 0 {
		t.Error("expected chunks for non-empty document")
	}
	if len(out[1]) != 0 {
		t.Error("expected no chunks for empty document")
	}
}

func TestDocumentService_CleanAndSplit_InvalidChunkSize(t *testing.T) {
	svc := NewDocumentService(pipeline.Options{})
	docs := []*domain.Document{domain.NewDocument("hello", nil)}
	if _, err := svc.CleanAndSplit(context.Background(), docs, 0); err == nil {
		t.Error("expected error for chunk_size <= 0")
	}
}
