package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

var _ Store = (*FileStore)(nil)

type fileData struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// FileStore implements Store as a single JSON file, rewritten atomically on
// every record. It is meant for one CLI process at a time.
type FileStore struct {
	path     string
	capacity int
}

// NewFileStore creates a store at path.
// If path is empty, uses ~/.gwctl/history.json
func NewFileStore(path string, capacity int) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".gwctl", "history.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	log.Debug().Str("path", path).Int("capacity", capacity).Msg("history store initialized")

	return &FileStore{path: path, capacity: capacity}, nil
}

func (f *FileStore) Record(ctx context.Context, o *pipeline.Outcome) error {
	entry, err := NewEntry(o)
	if err != nil {
		return err
	}

	data, err := f.load()
	if err != nil {
		return err
	}

	data.Entries = trim(append(data.Entries, entry), f.capacity)

	return f.save(data)
}

func (f *FileStore) List(ctx context.Context, limit int) ([]Entry, error) {
	data, err := f.load()
	if err != nil {
		return nil, err
	}
	return newestFirst(data.Entries, limit), nil
}

func (f *FileStore) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	data, err := f.load()
	if err != nil {
		return nil, err
	}
	for _, e := range data.Entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, ErrEntryNotFound
}

func (f *FileStore) Clear(ctx context.Context) error {
	return f.save(&fileData{Version: 1})
}

func (f *FileStore) load() (*fileData, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return &fileData{Version: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}

	return &data, nil
}

// save writes the history file atomically.
func (f *FileStore) save(data *fileData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	if err := os.Rename(tempPath, f.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save history: %w", err)
	}

	return nil
}
