package shipstation

import (
	"context"
	"errors"
	"fmt"

	shipstationclient "github.com/orderops/shipsplit/internal/clients/http/shipstation"
	"github.com/orderops/shipsplit/internal/domains/orders/domain"
	"github.com/orderops/shipsplit/internal/domains/orders/ports"
)

var _ ports.OrderGateway = (*Gateway)(nil)

// Gateway implements the outbound order-platform port over the ShipStation
// HTTP client.
type Gateway struct {
	client *shipstationclient.Client
}

// NewGateway wires the ShipStation client into the gateway adapter.
func NewGateway(client *shipstationclient.Client) *Gateway {
	return &Gateway{client: client}
}

// FetchOrders retrieves and maps the order batch behind a resource URL.
func (g *Gateway) FetchOrders(ctx context.Context, resourceURL string) ([]domain.Order, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("shipstation gateway not configured")
	}
	wireOrders, err := g.client.ListOrders(ctx, resourceURL)
	if err != nil {
		return nil, mapClientError(err)
	}
	orders := make([]domain.Order, 0, len(wireOrders))
	for _, order := range wireOrders {
		orders = append(orders, ToDomainOrder(order))
	}
	return orders, nil
}

// SubmitOrders creates or updates the routed payloads in one platform call.
func (g *Gateway) SubmitOrders(ctx context.Context, orders []*domain.Order) error {
	if g == nil || g.client == nil {
		return errors.New("shipstation gateway not configured")
	}
	payloads := make([]shipstationclient.Order, 0, len(orders))
	for _, order := range orders {
		payloads = append(payloads, FromDomainOrder(order))
	}
	if err := g.client.CreateOrders(ctx, payloads); err != nil {
		return mapClientError(err)
	}
	return nil
}

// mapClientError translates transport failures into port sentinels so callers
// can distinguish timeouts without importing the client package.
func mapClientError(err error) error {
	switch {
	case errors.Is(err, shipstationclient.ErrTimeout):
		return fmt.Errorf("%w: %w", ports.ErrGatewayTimeout, err)
	default:
		return fmt.Errorf("%w: %w", ports.ErrGatewayUnavailable, err)
	}
}
