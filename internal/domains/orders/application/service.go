package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	invports "github.com/orderops/shipsplit/internal/domains/inventory/ports"
	"github.com/orderops/shipsplit/internal/domains/orders/domain"
	"github.com/orderops/shipsplit/internal/domains/orders/ports"
)

// Service orchestrates the order-splitting use cases: fetch a webhook batch,
// classify every item, and submit split or update payloads back to the
// platform.
type Service struct {
	gateway    ports.OrderGateway
	classifier *Classifier
	splitter   *Splitter

	// mu serializes whole batches. Reservations are order-dependent, so two
	// concurrent webhook deliveries must never interleave their items.
	mu sync.Mutex
}

// NewService wires the orchestrator with its collaborators.
func NewService(gateway ports.OrderGateway, classifier *Classifier, splitter *Splitter) *Service {
	return &Service{gateway: gateway, classifier: classifier, splitter: splitter}
}

// NewServiceFromTable is a convenience constructor building the classifier and
// splitter from a routing table and inventory store.
func NewServiceFromTable(gateway ports.OrderGateway, table domain.AssignmentTable, inventory invports.Store) *Service {
	return NewService(gateway, NewClassifier(table, inventory, nil), NewSplitter(table))
}

// ProcessWebhook fetches the orders behind a webhook resource URL and routes
// them. The returned error covers the fetch only; individual order failures
// are recorded in the summary and never abort the batch.
func (s *Service) ProcessWebhook(ctx context.Context, resourceURL string) (*ports.BatchSummary, error) {
	if resourceURL == "" {
		return nil, fmt.Errorf("%w: resource URL is empty", ErrInvalidWebhook)
	}
	orders, err := s.gateway.FetchOrders(ctx, resourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetch orders from %s: %w", resourceURL, err)
	}
	summary := s.ProcessOrders(ctx, orders)
	summary.Orders = orders
	return summary, nil
}

// ProcessOrders classifies and routes an already-fetched batch sequentially.
func (s *Service) ProcessOrders(ctx context.Context, orders []domain.Order) *ports.BatchSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := &ports.BatchSummary{BatchID: uuid.NewString()}
	for i := range orders {
		summary.Outcomes = append(summary.Outcomes, s.processOrder(ctx, &orders[i]))
	}
	return summary
}

// processOrder runs the per-order state machine:
// received -> classified -> {split-submit | update-submit | no-op} -> done.
func (s *Service) processOrder(ctx context.Context, order *domain.Order) ports.OrderOutcome {
	outcome := ports.OrderOutcome{OrderNumber: order.OrderNumber}
	if len(order.Items) == 0 {
		outcome.Action = ports.ActionSkipped
		return outcome
	}
	if err := order.Validate(); err != nil {
		outcome.Fail(fmt.Errorf("invalid order %s: %w", order.OrderNumber, err))
		return outcome
	}

	s.classifier.ClassifyAll(ctx, order)
	labels := order.DistinctLabels()
	outcome.Warehouses = labels

	switch {
	case len(labels) > 1:
		payloads, err := s.splitter.Split(order)
		if err == nil {
			err = s.gateway.SubmitOrders(ctx, payloads)
		}
		if err != nil {
			outcome.Fail(fmt.Errorf("split order %s: %w", order.OrderNumber, err))
			return outcome
		}
		outcome.Action = ports.ActionSplit
		outcome.Payloads = len(payloads)
	case len(labels) == 1 && !order.Tagged():
		payload, err := s.splitter.UpdateSingle(order, labels[0])
		if err == nil {
			err = s.gateway.SubmitOrders(ctx, []*domain.Order{payload})
		}
		if err != nil {
			outcome.Fail(fmt.Errorf("update order %s: %w", order.OrderNumber, err))
			return outcome
		}
		outcome.Action = ports.ActionUpdated
		outcome.Payloads = 1
	default:
		// Already tagged by prior automation, or nothing classified.
		outcome.Action = ports.ActionSkipped
	}
	return outcome
}

var _ ports.Service = (*Service)(nil)
