package application

import (
	"fmt"

	"github.com/orderops/shipsplit/internal/domains/orders/domain"
)

// Splitter partitions a classified order into per-warehouse payloads and
// builds the single-warehouse update payload.
type Splitter struct {
	table domain.AssignmentTable
}

// NewSplitter wires the splitter with its routing table.
func NewSplitter(table domain.AssignmentTable) *Splitter {
	return &Splitter{table: table}
}

// Split produces one payload per distinct warehouse label, in first-occurrence
// order of the labels among the order's items.
//
// Index 0 keeps the platform identifiers and financials: downstream automation
// treats it as the authoritative update of the original order. Every later
// index is a brand-new order, so its identifiers are stripped and its
// financial fields zeroed. Tag ids and warehouse id come from the routing
// table at every index.
func (s *Splitter) Split(order *domain.Order) ([]*domain.Order, error) {
	labels := order.DistinctLabels()
	if len(labels) == 0 {
		return nil, fmt.Errorf("order %s: no classified items to split", order.OrderNumber)
	}
	payloads := make([]*domain.Order, 0, len(labels))
	for x, label := range labels {
		assignment, ok := s.table.Lookup(label)
		if !ok {
			return nil, fmt.Errorf("order %s: no assignment for warehouse %q", order.OrderNumber, label)
		}
		clone := order.Clone()
		clone.Items = filterItems(clone.Items, label, x == 0)
		clone.OrderNumber = fmt.Sprintf("%s-%s", order.OrderNumber, label)
		clone.ApplyAssignment(assignment)
		if x != 0 {
			clone.MarkAsChild()
		}
		payloads = append(payloads, clone)
	}
	return payloads, nil
}

// UpdateSingle applies the routing table to an unsplit order: same lookup as
// the splitter's index-0 case, but no suffix, no identifier stripping, and no
// financial zeroing.
func (s *Splitter) UpdateSingle(order *domain.Order, label domain.Warehouse) (*domain.Order, error) {
	assignment, ok := s.table.Lookup(label)
	if !ok {
		return nil, fmt.Errorf("order %s: no assignment for warehouse %q", order.OrderNumber, label)
	}
	clone := order.Clone()
	clone.ApplyAssignment(assignment)
	return clone, nil
}

// filterItems keeps the items resolved to label. An unlabeled item can only
// exist when classification was skipped entirely; adopting it into the primary
// payload keeps a degenerate unsplit order intact.
func filterItems(items []domain.Item, label domain.Warehouse, primary bool) []domain.Item {
	kept := items[:0]
	for _, item := range items {
		if item.Label == nil {
			if primary {
				adopted := label
				item.Label = &adopted
				kept = append(kept, item)
			}
			continue
		}
		if *item.Label == label {
			kept = append(kept, item)
		}
	}
	return kept
}
