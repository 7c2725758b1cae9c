package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func labelPtr(w Warehouse) *Warehouse {
	return &w
}

func TestOrderValidate(t *testing.T) {
	order := Order{
		OrderNumber: "1001",
		Items: []Item{
			{SKU: "DRA-100", Quantity: 1},
			{SKU: "TEE-200", Quantity: 3},
		},
	}
	require.NoError(t, order.Validate())

	noNumber := order
	noNumber.OrderNumber = ""
	require.ErrorIs(t, noNumber.Validate(), ErrEmptyOrderNumber)

	noItems := order
	noItems.Items = nil
	require.ErrorIs(t, noItems.Validate(), ErrNoItems)

	blankSKU := order
	blankSKU.Items = []Item{{SKU: "", Quantity: 1}}
	require.ErrorIs(t, blankSKU.Validate(), ErrMissingSKU)

	zeroQty := order
	zeroQty.Items = []Item{{SKU: "DRA-100", Quantity: 0}}
	require.ErrorIs(t, zeroQty.Validate(), ErrInvalidQuantity)
}

func TestDistinctLabels_FirstOccurrenceOrder(t *testing.T) {
	order := Order{
		OrderNumber: "1001",
		Items: []Item{
			{SKU: "DRT-1", Quantity: 1, Label: labelPtr(WarehouseTrevco)},
			{SKU: "DRA-1", Quantity: 1, Label: labelPtr(WarehouseAMC)},
			{SKU: "DRT-2", Quantity: 1, Label: labelPtr(WarehouseTrevco)},
			{SKU: "MISC", Quantity: 1},
		},
	}
	require.Equal(t, []Warehouse{WarehouseTrevco, WarehouseAMC}, order.DistinctLabels())
}

func TestDistinctLabels_Unlabeled(t *testing.T) {
	order := Order{Items: []Item{{SKU: "A", Quantity: 1}, {SKU: "B", Quantity: 1}}}
	require.Empty(t, order.DistinctLabels())
}

func TestClone_IsDeep(t *testing.T) {
	order := Order{
		OrderID:     42,
		OrderNumber: "1001",
		Items:       []Item{{SKU: "DRA-1", Quantity: 2}},
		TagIDs:      []int64{11},
		BillTo:      []byte(`{"name":"Pat"}`),
		ShipTo:      []byte(`{"name":"Pat"}`),
	}

	clone := order.Clone()
	clone.Items[0].Quantity = 99
	clone.TagIDs[0] = 77
	clone.BillTo[0] = 'X'

	require.Equal(t, 2, order.Items[0].Quantity)
	require.Equal(t, int64(11), order.TagIDs[0])
	require.Equal(t, byte('{'), order.BillTo[0])
}

func TestMarkAsChild_StripsIdentityAndFinancials(t *testing.T) {
	order := Order{
		OrderID:        42,
		OrderKey:       "abc",
		OrderNumber:    "1001",
		AmountPaid:     25.50,
		TaxAmount:      1.75,
		ShippingAmount: 4.99,
	}
	order.MarkAsChild()

	require.Zero(t, order.OrderID)
	require.Empty(t, order.OrderKey)
	require.Equal(t, "1001", order.OrderNumber)
	require.Zero(t, order.AmountPaid)
	require.Zero(t, order.TaxAmount)
	require.Zero(t, order.ShippingAmount)
}

func TestApplyAssignment(t *testing.T) {
	order := Order{TagIDs: []int64{1}}
	order.ApplyAssignment(Assignment{TagIDs: []int64{34550}, WarehouseID: 310206})

	require.Equal(t, []int64{34550}, order.TagIDs)
	require.Equal(t, int64(310206), order.AdvancedOptions.WarehouseID)
}

func TestTagged(t *testing.T) {
	require.False(t, (&Order{}).Tagged())
	require.True(t, (&Order{TagIDs: []int64{34317}}).Tagged())
}
