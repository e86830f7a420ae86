package picstash

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// Store wraps a SQLite database holding one row per uploaded image.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access and set a busy
	// timeout so writers wait instead of returning SQLITE_BUSY immediately.
	// synchronous=NORMAL is safe with WAL and avoids an fsync per insert.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS images (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tags TEXT NOT NULL
);
`)
	return err
}

// InsertImage adds a record with the given tags and returns its new id.
// AUTOINCREMENT guarantees ids are monotonic and never reused, which the
// blob store relies on for collision-free filenames.
func (s *Store) InsertImage(tags string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO images (tags) VALUES (?)`, tags)
	if err != nil {
		return 0, fmt.Errorf("insert image: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert image: %w", err)
	}
	return id, nil
}

// ListImages returns every record ordered by id ascending.
func (s *Store) ListImages() ([]ImageRecord, error) {
	rows, err := s.db.Query(`SELECT id, tags FROM images ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return scanRecords(rows)
}

// SearchImages returns records whose tags contain substr, ordered by id
// ascending. instr is used instead of LIKE: it needs no wildcard escaping
// and stays case-sensitive, where SQLite LIKE folds ASCII case.
func (s *Store) SearchImages(substr string) ([]ImageRecord, error) {
	rows, err := s.db.Query(`SELECT id, tags FROM images WHERE instr(tags, ?) > 0 ORDER BY id ASC`, substr)
	if err != nil {
		return nil, fmt.Errorf("search images: %w", err)
	}
	return scanRecords(rows)
}

// AllIDs returns the id of every record, ordered ascending.
func (s *Store) AllIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT id FROM images ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list ids: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	return ids, nil
}

func scanRecords(rows *sql.Rows) ([]ImageRecord, error) {
	defer rows.Close()

	// Non-nil so an empty result still serializes as a JSON array.
	records := make([]ImageRecord, 0)
	for rows.Next() {
		var r ImageRecord
		if err := rows.Scan(&r.ID, &r.Tags); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan images: %w", err)
	}
	return records, nil
}
