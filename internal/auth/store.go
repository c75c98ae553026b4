package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StorageError indicates the persisted token record is unreadable or corrupt.
// A missing file is not a StorageError, it is reported as an absent record.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("token storage %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store persists a single TokenRecord to a JSON file.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted record. An absent file yields (nil, nil).
func (s *Store) Load() (*TokenRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &StorageError{Path: s.path, Err: err}
	}
	defer func() { _ = f.Close() }()

	rec := &TokenRecord{}
	if err := json.NewDecoder(f).Decode(rec); err != nil {
		return nil, &StorageError{Path: s.path, Err: fmt.Errorf("decode failed: %w", err)}
	}

	return rec, nil
}

// Save writes the record to a temp file in the target directory and renames
// it into place, so a crash mid-write cannot corrupt the previous record.
func (s *Store) Save(rec *TokenRecord) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".token-*.json")
	if err != nil {
		return &StorageError{Path: s.path, Err: fmt.Errorf("os.CreateTemp failed: %w", err)}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return &StorageError{Path: s.path, Err: fmt.Errorf("tmp.Chmod failed: %w", err)}
	}

	if err := json.NewEncoder(tmp).Encode(rec); err != nil {
		_ = tmp.Close()
		return &StorageError{Path: s.path, Err: fmt.Errorf("encode failed: %w", err)}
	}

	if err := tmp.Close(); err != nil {
		return &StorageError{Path: s.path, Err: fmt.Errorf("tmp.Close failed: %w", err)}
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &StorageError{Path: s.path, Err: fmt.Errorf("os.Rename failed: %w", err)}
	}

	return nil
}
