package picstash

import (
	"bytes"
	"errors"
	"testing"
)

func setupTestBlobs(t *testing.T) *BlobStore {
	t.Helper()
	b, err := NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create blob store: %v", err)
	}
	return b
}

func TestWriteReadOriginal(t *testing.T) {
	b := setupTestBlobs(t)

	data := []byte("original bytes")
	if err := b.WriteOriginal(1, data); err != nil {
		t.Fatalf("WriteOriginal failed: %v", err)
	}

	got, err := b.ReadOriginal(1)
	if err != nil {
		t.Fatalf("ReadOriginal failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("ReadOriginal = %q, want %q", got, data)
	}
}

func TestWriteOriginalTwice(t *testing.T) {
	b := setupTestBlobs(t)

	if err := b.WriteOriginal(1, []byte("first")); err != nil {
		t.Fatalf("WriteOriginal failed: %v", err)
	}
	err := b.WriteOriginal(1, []byte("second"))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second WriteOriginal error = %v, want ErrAlreadyExists", err)
	}

	// The first write must be untouched.
	got, err := b.ReadOriginal(1)
	if err != nil {
		t.Fatalf("ReadOriginal failed: %v", err)
	}
	if string(got) != "first" {
		t.Errorf("ReadOriginal = %q, want %q", got, "first")
	}
}

func TestReadMissingBlobs(t *testing.T) {
	b := setupTestBlobs(t)

	if _, err := b.ReadOriginal(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadOriginal error = %v, want ErrNotFound", err)
	}
	if _, err := b.ReadThumbnail(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadThumbnail error = %v, want ErrNotFound", err)
	}
}

func TestThumbnailRewrite(t *testing.T) {
	b := setupTestBlobs(t)

	if err := b.WriteThumbnail(1, []byte("first")); err != nil {
		t.Fatalf("WriteThumbnail failed: %v", err)
	}
	// Thumbnails carry no exclusivity guard; regeneration rewrites in place.
	if err := b.WriteThumbnail(1, []byte("second")); err != nil {
		t.Fatalf("second WriteThumbnail failed: %v", err)
	}

	got, err := b.ReadThumbnail(1)
	if err != nil {
		t.Fatalf("ReadThumbnail failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("ReadThumbnail = %q, want %q", got, "second")
	}
}

func TestThumbnailExists(t *testing.T) {
	b := setupTestBlobs(t)

	if b.ThumbnailExists(1) {
		t.Error("ThumbnailExists = true before write")
	}
	if err := b.WriteThumbnail(1, []byte("thumb")); err != nil {
		t.Fatalf("WriteThumbnail failed: %v", err)
	}
	if !b.ThumbnailExists(1) {
		t.Error("ThumbnailExists = false after write")
	}
}

func TestBlobPathsDisjoint(t *testing.T) {
	b := setupTestBlobs(t)

	if b.OriginalPath(1) == b.ThumbnailPath(1) {
		t.Error("original and thumbnail paths must differ")
	}
	if b.OriginalPath(1) == b.OriginalPath(2) {
		t.Error("paths for distinct ids must differ")
	}
}
