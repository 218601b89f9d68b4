package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"resume-builder/internal/shared/storage/object"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "generations/abc/resume.docx", "application/octet-stream", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}
	if _, err := store.Put(ctx, "generations/abc/resume.docx", "", strings.NewReader("second")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	rc, err := store.Open(ctx, "generations/abc/resume.docx")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "second" {
		t.Fatalf("expected overwritten content, got %q", body)
	}
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "generations/missing/resume.docx")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	tests := []string{"../escape", "/etc/passwd", "."}
	for _, key := range tests {
		key := key
		t.Run(key, func(t *testing.T) {
			if _, err := store.Put(context.Background(), key, "", strings.NewReader("x")); err == nil {
				t.Fatalf("expected error for key %q", key)
			}
			if _, err := store.Open(context.Background(), key); err == nil {
				t.Fatalf("expected open error for key %q", key)
			}
		})
	}
}
