//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/orderops/shipsplit/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type webhookResult struct {
	Message string `json:"message"`
	Data    struct {
		BatchID string `json:"batchId"`
		Failed  int    `json:"failed"`
		Orders  []struct {
			OrderNumber string `json:"orderNumber"`
			Action      string `json:"action"`
		} `json:"orders"`
	} `json:"data"`
}

type inventoryResult struct {
	Data []struct {
		SKU       string `json:"SKU"`
		Available int    `json:"Available"`
	} `json:"data"`
}

func TestOpsPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateBatchImportable).
		UponReceiving("a new-orders webhook delivery").
		WithRequest("POST", "/webhooks/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"resource_url": matchers.Like(pacttest.ExampleResourceURL),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"message": matchers.Like("Analyzed 1 new order(s)."),
				"data": matchers.Map{
					"batchId": matchers.Like("2b3c8f0e-0a7e-4f4b-bb1e-1d2f3a4b5c6d"),
					"failed":  matchers.Like(0),
					"orders": matchers.EachLike(matchers.Map{
						"orderNumber": matchers.Like(pacttest.ExampleOrderNumber),
						"action":      matchers.Term("split", "split|updated|skipped|failed"),
					}, 1),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateInventorySeeded).
		UponReceiving("a request for the inventory mapping").
		WithRequest("GET", "/inventory").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"data": matchers.EachLike(matchers.Map{
					"SKU":       matchers.Like(pacttest.ExampleSKU),
					"Available": matchers.Like(12),
				}, 1),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newPortalClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := client.DeliverWebhook(ctx, pacttest.ExampleResourceURL)
		if err != nil {
			return fmt.Errorf("deliver webhook: %w", err)
		}
		if result.Data.BatchID == "" {
			return fmt.Errorf("expected batch id in webhook response")
		}
		if len(result.Data.Orders) == 0 {
			return fmt.Errorf("expected order outcomes in webhook response")
		}

		inventory, err := client.ListInventory(ctx)
		if err != nil {
			return fmt.Errorf("list inventory: %w", err)
		}
		if len(inventory.Data) == 0 {
			return fmt.Errorf("expected inventory records")
		}
		return nil
	})
	require.NoError(t, err)
}

type portalClient struct {
	baseURL    string
	httpClient *http.Client
}

func newPortalClient(config pactconsumer.MockServerConfig) *portalClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &portalClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *portalClient) DeliverWebhook(ctx context.Context, resourceURL string) (*webhookResult, error) {
	body, err := json.Marshal(map[string]string{"resource_url": resourceURL})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/webhooks/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("webhook returned status %d", res.StatusCode)
	}

	var result webhookResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *portalClient) ListInventory(ctx context.Context) (*inventoryResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/inventory", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory returned status %d", res.StatusCode)
	}

	var result inventoryResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
