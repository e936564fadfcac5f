package invoice

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage defines the interface for storing rendered invoice documents
type Storage interface {
	// Save saves a document and returns the filename it was stored under
	Save(filename string, data []byte) (string, error)

	// Get retrieves a document by filename
	Get(filename string) ([]byte, error)

	// Delete removes a document
	Delete(filename string) error
}

// LocalStorage keeps rendered invoice documents in a flat directory. The
// invoice_<number>.pdf naming scheme never produces subdirectories, so
// filenames carrying path separators are rejected rather than resolved.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Save writes an invoice document under the storage root
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	path, err := l.documentPath(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}
	return filename, nil
}

// Get retrieves an invoice document from local storage
func (l *LocalStorage) Get(filename string) ([]byte, error) {
	path, err := l.documentPath(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return data, nil
}

// Delete removes an invoice document from local storage
func (l *LocalStorage) Delete(filename string) error {
	path, err := l.documentPath(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

func (l *LocalStorage) documentPath(filename string) (string, error) {
	if filename == "" || filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid document filename: %q", filename)
	}
	return filepath.Join(l.basePath, filename), nil
}
