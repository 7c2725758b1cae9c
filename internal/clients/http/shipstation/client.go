// Package shipstation is a thin client for the ShipStation REST API covering
// the two calls this service makes: listing orders behind a webhook resource
// URL and batch create-or-update via /orders/createorders.
package shipstation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const createOrdersPath = "/orders/createorders"

var (
	// ErrTimeout marks a call that exceeded its deadline.
	ErrTimeout = errors.New("shipstation request timed out")
	// ErrStatus marks a non-2xx response.
	ErrStatus = errors.New("shipstation returned an error status")
)

// Client issues authenticated calls to the ShipStation API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
}

// NewClient instantiates the client with sane defaults. apiKey and apiSecret
// form the Basic credentials ShipStation expects.
func NewClient(baseURL, apiKey, apiSecret string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("shipstation base URL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("shipstation API key is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(apiKey + ":" + apiSecret))
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		authHeader: "Basic " + credentials,
	}, nil
}

// ListOrders fetches the order batch behind a webhook resource URL. The URL
// may be absolute (as delivered by ShipStation webhooks) or relative to the
// configured base URL.
func (c *Client) ListOrders(ctx context.Context, resourceURL string) ([]Order, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("shipstation client not configured")
	}
	target, err := c.resolve(resourceURL)
	if err != nil {
		return nil, err
	}
	body, err := c.call(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	var envelope OrderListResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode order list: %w", err)
	}
	return envelope.Orders, nil
}

// CreateOrders creates or updates the given payloads in one call.
func (c *Client) CreateOrders(ctx context.Context, orders []Order) error {
	if c == nil || c.httpClient == nil {
		return errors.New("shipstation client not configured")
	}
	if len(orders) == 0 {
		return nil
	}
	_, err := c.call(ctx, http.MethodPost, c.baseURL+createOrdersPath, orders)
	return err
}

func (c *Client) resolve(resourceURL string) (string, error) {
	resourceURL = strings.TrimSpace(resourceURL)
	if resourceURL == "" {
		return "", errors.New("resource URL is empty")
	}
	parsed, err := url.Parse(resourceURL)
	if err != nil {
		return "", fmt.Errorf("parse resource URL: %w", err)
	}
	if parsed.IsAbs() {
		return resourceURL, nil
	}
	return c.baseURL + "/" + strings.TrimLeft(resourceURL, "/"), nil
}

func (c *Client) call(ctx context.Context, method, target string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, target, err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, method, target)
		}
		return nil, fmt.Errorf("call %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", target, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s %s: %s", ErrStatus, method, target, strings.TrimSpace(responseDetail(data, resp.Status)))
	}
	return data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func responseDetail(body []byte, fallback string) string {
	var envelope struct {
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return fallback
}
