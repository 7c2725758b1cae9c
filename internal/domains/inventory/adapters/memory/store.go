package memory

import (
	"context"
	"sync"

	"github.com/orderops/shipsplit/internal/domains/inventory/domain"
	"github.com/orderops/shipsplit/internal/domains/inventory/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory inventory adapter used in tests and as a fallback
// when no backing file is configured.
type Store struct {
	mu      sync.Mutex
	records map[string]domain.Record
	order   []string
}

func NewStore() *Store {
	return &Store{records: map[string]domain.Record{}}
}

// NewStoreWith seeds the store, ignoring invalid records.
func NewStoreWith(records ...domain.Record) *Store {
	s := NewStore()
	_ = s.ReplaceAll(context.Background(), records)
	return s
}

func (s *Store) Reserve(_ context.Context, sku string, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[sku]
	if !ok || !record.CanCover(quantity) {
		return false, nil
	}
	record.Available -= quantity
	s.records[sku] = record
	return true, nil
}

func (s *Store) ReplaceAll(_ context.Context, records []domain.Record) error {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]domain.Record, len(records))
	s.order = s.order[:0]
	for _, record := range records {
		if _, ok := s.records[record.SKU]; !ok {
			s.order = append(s.order, record.SKU)
		}
		s.records[record.SKU] = record
	}
	return nil
}

func (s *Store) List(_ context.Context) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]domain.Record, 0, len(s.records))
	for _, sku := range s.order {
		list = append(list, s.records[sku])
	}
	return list, nil
}
