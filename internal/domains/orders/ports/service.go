package ports

import (
	"context"

	"github.com/orderops/shipsplit/internal/domains/orders/domain"
)

// Action describes what the processing pass did with one order.
type Action string

const (
	ActionSplit   Action = "split"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// OrderOutcome records the decision taken for a single order. Err is non-nil
// only when Action is ActionFailed; a failed order never aborts its batch.
// Error mirrors Err as text so outcomes survive workflow serialization.
type OrderOutcome struct {
	OrderNumber string
	Action      Action
	Warehouses  []domain.Warehouse
	Payloads    int
	Error       string
	Err         error `json:"-"`
}

// Fail marks the outcome failed with the given cause.
func (o *OrderOutcome) Fail(err error) {
	o.Action = ActionFailed
	o.Err = err
	if err != nil {
		o.Error = err.Error()
	}
}

// BatchSummary aggregates the outcomes of one webhook delivery.
type BatchSummary struct {
	BatchID  string
	Orders   []domain.Order
	Outcomes []OrderOutcome
}

// Processed returns the number of orders examined.
func (s BatchSummary) Processed() int {
	return len(s.Outcomes)
}

// Failed returns the number of orders whose submission or classification failed.
func (s BatchSummary) Failed() int {
	n := 0
	for _, outcome := range s.Outcomes {
		if outcome.Action == ActionFailed {
			n++
		}
	}
	return n
}

// Service exposes the order-splitting use cases to adapters (inbound port).
type Service interface {
	// ProcessWebhook fetches the order batch behind a webhook resource URL and
	// routes every order. The returned error covers the fetch only; per-order
	// failures live in the summary.
	ProcessWebhook(ctx context.Context, resourceURL string) (*BatchSummary, error)
	// ProcessOrders classifies and routes an already-fetched batch.
	ProcessOrders(ctx context.Context, orders []domain.Order) *BatchSummary
}
