package ports

import (
	"context"

	"github.com/orderops/shipsplit/internal/domains/inventory/domain"
)

// Store persists the SKU-to-available mapping and hands out reservations.
//
// Reserve is the only mutation the classifier performs: an atomic
// check-and-decrement for one SKU. Implementations must serialize the whole
// read-modify-write cycle so concurrent webhook deliveries cannot lose
// reservations, and must persist a successful decrement before returning.
type Store interface {
	// Reserve decrements the SKU's available quantity by quantity when the
	// remaining stock covers it. It returns false, without mutating anything,
	// when the SKU is unknown or the stock is insufficient. Available never
	// goes negative.
	Reserve(ctx context.Context, sku string, quantity int) (bool, error)
	// ReplaceAll swaps the full mapping, last writer wins.
	ReplaceAll(ctx context.Context, records []domain.Record) error
	// List returns the current mapping.
	List(ctx context.Context) ([]domain.Record, error)
}
