package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadWritesFileAndReturnsURL(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, "/uploads/")

	url, err := s.Upload(context.Background(), "items/abc.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "/uploads/items/abc.jpg" {
		t.Fatalf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(root, "items", "abc.jpg"))
	if err != nil {
		t.Fatalf("read uploaded file: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("uploaded content = %q", data)
	}
}

func TestUploadRejectsEscapingPaths(t *testing.T) {
	s := NewStore(t.TempDir(), "/uploads")

	if _, err := s.Upload(context.Background(), "../outside.txt", strings.NewReader("x")); err == nil {
		t.Fatal("Upload() accepted a path escaping the root")
	}
	if _, err := s.Upload(context.Background(), "", strings.NewReader("x")); err == nil {
		t.Fatal("Upload() accepted an empty path")
	}
}
