package picstash

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BlobStore keeps original and thumbnail image bytes as loose files in one
// directory, named {id}.jpg and {id}_thumb.jpg. Concurrent writes are safe
// because distinct ids map to distinct paths.
type BlobStore struct {
	dir string
}

// NewBlobStore creates the blob directory if needed.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &BlobStore{dir: dir}, nil
}

// OriginalPath returns the filesystem path of the original blob for id.
func (b *BlobStore) OriginalPath(id int64) string {
	return filepath.Join(b.dir, fmt.Sprintf("%d.jpg", id))
}

// ThumbnailPath returns the filesystem path of the thumbnail blob for id.
func (b *BlobStore) ThumbnailPath(id int64) string {
	return filepath.Join(b.dir, fmt.Sprintf("%d_thumb.jpg", id))
}

// WriteOriginal stores the uploaded bytes for id. Originals are immutable:
// a second write for the same id fails with ErrAlreadyExists.
func (b *BlobStore) WriteOriginal(id int64, data []byte) error {
	f, err := os.OpenFile(b.OriginalPath(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("original %d: %w", id, ErrAlreadyExists)
		}
		return fmt.Errorf("write original %d: %w", id, err)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("write original %d: %w", id, werr)
	}
	if cerr != nil {
		return fmt.Errorf("write original %d: %w", id, cerr)
	}
	return nil
}

// ReadOriginal returns the original bytes for id, or ErrNotFound.
func (b *BlobStore) ReadOriginal(id int64) ([]byte, error) {
	return b.read(b.OriginalPath(id), id)
}

// WriteThumbnail stores thumbnail bytes for id. Unlike originals there is
// no exclusivity guard: generation is idempotent and may be re-run.
func (b *BlobStore) WriteThumbnail(id int64, data []byte) error {
	if err := os.WriteFile(b.ThumbnailPath(id), data, 0o644); err != nil {
		return fmt.Errorf("write thumbnail %d: %w", id, err)
	}
	return nil
}

// ReadThumbnail returns the thumbnail bytes for id, or ErrNotFound.
func (b *BlobStore) ReadThumbnail(id int64) ([]byte, error) {
	return b.read(b.ThumbnailPath(id), id)
}

// ThumbnailExists reports whether a thumbnail blob is present for id.
func (b *BlobStore) ThumbnailExists(id int64) bool {
	_, err := os.Stat(b.ThumbnailPath(id))
	return err == nil
}

func (b *BlobStore) read(path string, id int64) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("image %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("read image %d: %w", id, err)
	}
	return data, nil
}
