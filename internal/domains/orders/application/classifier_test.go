package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	inventorymemory "github.com/orderops/shipsplit/internal/domains/inventory/adapters/memory"
	inventorydomain "github.com/orderops/shipsplit/internal/domains/inventory/domain"
	"github.com/orderops/shipsplit/internal/domains/orders/domain"
)

type failingStore struct{}

func (failingStore) Reserve(context.Context, string, int) (bool, error) {
	return false, errors.New("store unavailable")
}
func (failingStore) ReplaceAll(context.Context, []inventorydomain.Record) error { return nil }
func (failingStore) List(context.Context) ([]inventorydomain.Record, error) { return nil, nil }

func TestClassify_ReservesInHouseStock(t *testing.T) {
	store := inventorymemory.NewStoreWith(inventorydomain.Record{SKU: "DRA-100", Available: 5})
	classifier := NewClassifier(domain.DefaultAssignmentTable(), store, nil)

	label := classifier.Classify(context.Background(), domain.Item{SKU: "DRA-100", Quantity: 3})
	require.Equal(t, domain.WarehouseEmmaus, label)

	// 2 units remain, so a second request for 3 units falls to the prefix rule.
	label = classifier.Classify(context.Background(), domain.Item{SKU: "DRA-100", Quantity: 3})
	require.Equal(t, domain.WarehouseAMC, label)

	// The failed reservation must not have touched the remaining stock.
	label = classifier.Classify(context.Background(), domain.Item{SKU: "DRA-100", Quantity: 2})
	require.Equal(t, domain.WarehouseEmmaus, label)
}

func TestClassify_PrefixFallbacks(t *testing.T) {
	classifier := NewClassifier(domain.DefaultAssignmentTable(), inventorymemory.NewStore(), nil)

	ctx := context.Background()
	require.Equal(t, domain.WarehouseAMC, classifier.Classify(ctx, domain.Item{SKU: "DRA-1", Quantity: 1}))
	require.Equal(t, domain.WarehouseAMCGeneric, classifier.Classify(ctx, domain.Item{SKU: "DR2-1", Quantity: 1}))
	require.Equal(t, domain.WarehouseImpact, classifier.Classify(ctx, domain.Item{SKU: "DRI-1", Quantity: 1}))
	require.Equal(t, domain.WarehouseTrevco, classifier.Classify(ctx, domain.Item{SKU: "DRT-1", Quantity: 1}))
	require.Equal(t, domain.WarehouseManual, classifier.Classify(ctx, domain.Item{SKU: "OTHER-1", Quantity: 1}))
}

func TestClassify_StoreErrorDegradesToPrefixRules(t *testing.T) {
	classifier := NewClassifier(domain.DefaultAssignmentTable(), failingStore{}, nil)

	label := classifier.Classify(context.Background(), domain.Item{SKU: "DRT-9", Quantity: 1})
	require.Equal(t, domain.WarehouseTrevco, label)
}

func TestClassify_NilInventorySkipsInHouseCheck(t *testing.T) {
	classifier := NewClassifier(domain.DefaultAssignmentTable(), nil, nil)

	label := classifier.Classify(context.Background(), domain.Item{SKU: "DRA-1", Quantity: 1})
	require.Equal(t, domain.WarehouseAMC, label)
}

func TestClassifyAll_LabelsItemsInOrder(t *testing.T) {
	store := inventorymemory.NewStoreWith(inventorydomain.Record{SKU: "SHARED", Available: 1})
	classifier := NewClassifier(domain.DefaultAssignmentTable(), store, nil)

	order := &domain.Order{
		OrderNumber: "1001",
		Items: []domain.Item{
			{SKU: "SHARED", Quantity: 1},
			{SKU: "SHARED", Quantity: 1},
		},
	}
	classifier.ClassifyAll(context.Background(), order)

	// The first item claims the last unit; the second misses and has no
	// matching prefix, so it goes to manual review.
	require.Equal(t, domain.WarehouseEmmaus, *order.Items[0].Label)
	require.Equal(t, domain.WarehouseManual, *order.Items[1].Label)
}
