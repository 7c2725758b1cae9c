package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoItems          = errors.New("order has no items")
	ErrMissingSKU       = errors.New("order item is missing a SKU")
	ErrInvalidQuantity  = errors.New("order item quantity must be greater than zero")
	ErrEmptyOrderNumber = errors.New("order number is empty")
)

// Item is one order line as received from ShipStation, plus the warehouse
// label resolved by classification. The label never appears on the inbound
// payload and is never serialized back to the platform.
type Item struct {
	OrderItemID       int64
	SKU               string
	Name              string
	Quantity          int
	UnitPrice         float64
	WarehouseLocation string

	// Label is nil until classification assigns a warehouse.
	Label *Warehouse
}

// Labeled reports whether classification has resolved this item.
func (i Item) Labeled() bool {
	return i.Label != nil
}

// AdvancedOptions carries the subset of ShipStation advanced options the
// splitter touches; everything else passes through untouched on the wire type.
type AdvancedOptions struct {
	WarehouseID int64
	StoreID     int64
}

// Order is the transient aggregate built from each webhook delivery. It lives
// for exactly one processing pass and is discarded after the resulting API
// calls complete.
type Order struct {
	OrderID         int64
	OrderKey        string
	OrderNumber     string
	OrderDate       string
	OrderStatus     string
	Items           []Item
	TagIDs          []int64
	AdvancedOptions AdvancedOptions
	AmountPaid      float64
	TaxAmount       float64
	ShippingAmount  float64

	// BillTo and ShipTo are opaque platform blobs carried through untouched
	// so create/update calls keep the customer addresses intact.
	BillTo []byte
	ShipTo []byte
}

// Validate enforces the invariants the classifier depends on.
func (o *Order) Validate() error {
	if o.OrderNumber == "" {
		return ErrEmptyOrderNumber
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for idx, item := range o.Items {
		if item.SKU == "" {
			return fmt.Errorf("item %d: %w", idx, ErrMissingSKU)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d (%s): %w", idx, item.SKU, ErrInvalidQuantity)
		}
	}
	return nil
}

// Tagged reports whether prior automation already tagged this order. A tagged
// order is never re-processed.
func (o *Order) Tagged() bool {
	return len(o.TagIDs) > 0
}

// DistinctLabels returns the resolved warehouse labels in first-occurrence
// order across the order's items. Unlabeled items are skipped.
func (o *Order) DistinctLabels() []Warehouse {
	var labels []Warehouse
	seen := make(map[Warehouse]struct{}, len(o.Items))
	for _, item := range o.Items {
		if item.Label == nil {
			continue
		}
		if _, ok := seen[*item.Label]; ok {
			continue
		}
		seen[*item.Label] = struct{}{}
		labels = append(labels, *item.Label)
	}
	return labels
}

// Clone deep-copies the order so split payloads can diverge safely.
func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = make([]Item, len(o.Items))
	copy(clone.Items, o.Items)
	clone.TagIDs = append([]int64(nil), o.TagIDs...)
	clone.BillTo = append([]byte(nil), o.BillTo...)
	clone.ShipTo = append([]byte(nil), o.ShipTo...)
	return &clone
}

// ApplyAssignment stamps the routing decision onto the order.
func (o *Order) ApplyAssignment(assignment Assignment) {
	o.TagIDs = append([]int64(nil), assignment.TagIDs...)
	o.AdvancedOptions.WarehouseID = assignment.WarehouseID
}

// MarkAsChild converts a split clone into a brand-new order payload: the
// platform-assigned identifiers are removed and the financial fields zeroed,
// since the platform treats it as a creation rather than an update.
func (o *Order) MarkAsChild() {
	o.OrderID = 0
	o.OrderKey = ""
	o.AmountPaid = 0
	o.TaxAmount = 0
	o.ShippingAmount = 0
}
