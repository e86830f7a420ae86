package picstash

import "fmt"

// Backfill generates a thumbnail for every record that is missing one. It
// runs sequentially before the server accepts connections, so once serving
// begins every record from an earlier run has its thumbnail; only records
// uploaded while serving can transiently lack one. The first failure
// aborts startup rather than leaving the gap the pass exists to close.
func Backfill(store *Store, blobs *BlobStore, gen *Thumbnailer) error {
	ids, err := store.AllIDs()
	if err != nil {
		return fmt.Errorf("backfill: %w", err)
	}
	for _, id := range ids {
		if blobs.ThumbnailExists(id) {
			continue
		}
		if err := gen.Generate(id); err != nil {
			return fmt.Errorf("backfill: %w", err)
		}
	}
	return nil
}
