package ports

import (
	"context"
	"errors"

	"github.com/orderops/shipsplit/internal/domains/orders/domain"
)

var (
	// ErrGatewayTimeout marks an outbound platform call that exceeded its deadline.
	ErrGatewayTimeout = errors.New("order platform call timed out")
	// ErrGatewayUnavailable marks any other outbound platform failure.
	ErrGatewayUnavailable = errors.New("order platform unavailable")
)

// OrderGateway is the outbound port to the order-management platform.
type OrderGateway interface {
	// FetchOrders retrieves the order batch behind a webhook resource URL.
	FetchOrders(ctx context.Context, resourceURL string) ([]domain.Order, error)
	// SubmitOrders creates or updates the given payloads in one call.
	SubmitOrders(ctx context.Context, orders []*domain.Order) error
}
