// Package file persists the inventory mapping as a JSON array on disk.
//
// The file is the one shared mutable resource in the system. Every Reserve is
// a full read-modify-write cycle under a single mutex, and writes go through a
// temp file plus rename so a crash never leaves a partial file behind.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/orderops/shipsplit/internal/domains/inventory/domain"
	"github.com/orderops/shipsplit/internal/domains/inventory/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is the JSON-file-backed inventory adapter.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewStore wires a file store. The file does not need to exist yet: a missing
// or unreadable file is treated as empty inventory.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("inventory file path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}, nil
}

func (s *Store) Reserve(_ context.Context, sku string, quantity int) (bool, error) {
	if sku == "" || quantity <= 0 {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.load()
	for i, record := range records {
		if record.SKU != sku {
			continue
		}
		if !record.CanCover(quantity) {
			return false, nil
		}
		records[i].Available -= quantity
		// Persist before returning so the next reservation, in this batch or
		// any other, observes the decrement.
		if err := s.persist(records); err != nil {
			return false, fmt.Errorf("persist reservation for %s: %w", sku, err)
		}
		return true, nil
	}
	return false, nil
}

func (s *Store) ReplaceAll(_ context.Context, records []domain.Record) error {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(records)
}

func (s *Store) List(_ context.Context) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// load reads the backing file. Malformed or missing content degrades to empty
// inventory: every SKU then falls through to the prefix rules.
func (s *Store) load() []domain.Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("inventory file unreadable, treating as empty",
				slog.String("path", s.path), slog.String("error", err.Error()))
		}
		return nil
	}
	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("inventory file corrupt, treating as empty",
			slog.String("path", s.path), slog.String("error", err.Error()))
		return nil
	}
	return records
}

// persist writes the full mapping atomically: temp file in the same directory,
// then rename over the target.
func (s *Store) persist(records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create inventory dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".inventory-*.json")
	if err != nil {
		return fmt.Errorf("create temp inventory file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp inventory file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp inventory file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace inventory file: %w", err)
	}
	return nil
}
