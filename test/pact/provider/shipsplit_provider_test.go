//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/orderops/shipsplit/test/pact"

	"github.com/orderops/shipsplit/internal/app/api"
	inventoryhttp "github.com/orderops/shipsplit/internal/domains/inventory/adapters/http"
	inventorymemory "github.com/orderops/shipsplit/internal/domains/inventory/adapters/memory"
	inventoryapp "github.com/orderops/shipsplit/internal/domains/inventory/application"
	inventorydomain "github.com/orderops/shipsplit/internal/domains/inventory/domain"
	orderhttp "github.com/orderops/shipsplit/internal/domains/orders/adapters/http"
	ordersobs "github.com/orderops/shipsplit/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/orderops/shipsplit/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/orderops/shipsplit/internal/domains/orders/application"
	ordersdomain "github.com/orderops/shipsplit/internal/domains/orders/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestShipsplitProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateInventorySeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedInventory(t)
			}
			return nil, nil
		},
		pacttest.StateBatchImportable: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// stubGateway keeps the provider self-contained: the webhook interaction never
// reaches the real order platform.
type stubGateway struct{}

func (stubGateway) FetchOrders(_ context.Context, _ string) ([]ordersdomain.Order, error) {
	return []ordersdomain.Order{{
		OrderID:     42,
		OrderNumber: pacttest.ExampleOrderNumber,
		Items: []ordersdomain.Item{
			{SKU: "DRA-SHIRT", Quantity: 1},
			{SKU: "DRT-HAT", Quantity: 1},
		},
	}}, nil
}

func (stubGateway) SubmitOrders(_ context.Context, _ []*ordersdomain.Order) error {
	return nil
}

type contractProviderApp struct {
	store  *inventorymemory.Store
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	store := inventorymemory.NewStore()
	orderService := ordersobs.New(
		ordersapp.NewServiceFromTable(stubGateway{}, ordersdomain.DefaultAssignmentTable(), store),
	)
	orchestrator := ordersworkflows.NewInlineIngestion(orderService)

	router := api.NewRouter(
		orderhttp.NewWebhookHandler(orchestrator),
		inventoryhttp.NewHandler(inventoryapp.NewService(store)),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{store: store, server: server}
}

func (a *contractProviderApp) seedInventory(t testing.TB) {
	t.Helper()
	require.NoError(t, a.store.ReplaceAll(context.Background(), []inventorydomain.Record{
		{SKU: pacttest.ExampleSKU, Name: "Band Tee", Available: 12, Location: "A1-03"},
	}))
}
