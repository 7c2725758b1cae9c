package application

import (
	"context"
	"log/slog"

	"github.com/orderops/shipsplit/internal/domains/inventory/ports"
	"github.com/orderops/shipsplit/internal/domains/orders/domain"
)

// Classifier resolves one order item to a warehouse label.
//
// Resolution order is fixed: in-house stock first (reserving it as a side
// effect), then the SKU-prefix rules, then the manual-review label. The
// in-house check and the prefix rules are mutually exclusive per item; an
// item that fails to reserve falls through without mutating inventory.
type Classifier struct {
	table     domain.AssignmentTable
	inventory ports.Store
	logger    *slog.Logger
}

// NewClassifier wires the classifier. A nil inventory store disables the
// in-house check entirely, leaving only the prefix rules.
func NewClassifier(table domain.AssignmentTable, inventory ports.Store, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{table: table, inventory: inventory, logger: logger}
}

// Classify labels a single item. Inventory failures degrade to the prefix
// rules and are logged, never returned: classification itself cannot fail.
func (c *Classifier) Classify(ctx context.Context, item domain.Item) domain.Warehouse {
	if c.inventory != nil && item.SKU != "" && item.Quantity > 0 {
		reserved, err := c.inventory.Reserve(ctx, item.SKU, item.Quantity)
		if err != nil {
			c.logger.Warn("inventory reservation failed, falling back to prefix rules",
				slog.String("sku", item.SKU),
				slog.Int("quantity", item.Quantity),
				slog.String("error", err.Error()))
		} else if reserved {
			return domain.WarehouseEmmaus
		}
	}
	label, _ := c.table.MatchPrefix(item.SKU)
	return label
}

// ClassifyAll labels every item of the order in place, preserving item order.
// Item order matters: the first item to reach a SKU claims its remaining
// stock, so callers must not reorder items before classification.
func (c *Classifier) ClassifyAll(ctx context.Context, order *domain.Order) {
	for i := range order.Items {
		label := c.Classify(ctx, order.Items[i])
		order.Items[i].Label = &label
	}
}
