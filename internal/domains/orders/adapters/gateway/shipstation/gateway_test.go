package shipstation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	shipstationclient "github.com/orderops/shipsplit/internal/clients/http/shipstation"
	"github.com/orderops/shipsplit/internal/domains/orders/ports"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := shipstationclient.NewClient(server.URL, "key", "secret", &http.Client{Timeout: timeout})
	require.NoError(t, err)
	return NewGateway(client)
}

func TestFetchOrders_MapsWireOrders(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(shipstationclient.OrderListResponse{Orders: []shipstationclient.Order{
			{OrderNumber: "1001", Items: []shipstationclient.Item{{SKU: "DRA-1", Quantity: 1}}},
		}})
	}, time.Second)

	orders, err := gateway.FetchOrders(context.Background(), "/orders?importBatch=1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "1001", orders[0].OrderNumber)
	require.Equal(t, "DRA-1", orders[0].Items[0].SKU)
}

func TestFetchOrders_TimeoutMapsToGatewayTimeout(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, 50*time.Millisecond)

	_, err := gateway.FetchOrders(context.Background(), "/orders")
	require.ErrorIs(t, err, ports.ErrGatewayTimeout)
}

func TestFetchOrders_StatusMapsToGatewayUnavailable(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, time.Second)

	_, err := gateway.FetchOrders(context.Background(), "/orders")
	require.ErrorIs(t, err, ports.ErrGatewayUnavailable)
}
