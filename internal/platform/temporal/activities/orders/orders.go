package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/orderops/shipsplit/internal/domains/orders/application"
	"github.com/orderops/shipsplit/internal/domains/orders/ports"
)

const (
	// IngestWebhookActivityName fetches and routes the batch behind a webhook resource URL.
	IngestWebhookActivityName = "orders.activities.IngestWebhook"
)

// Application error types carried across the worker boundary. Serialization
// flattens wrapped error chains, so the type string is what the client side
// uses to restore the port sentinels.
const (
	ErrTypeInvalidWebhook     = "InvalidWebhook"
	ErrTypeGatewayTimeout     = "GatewayTimeout"
	ErrTypeGatewayUnavailable = "GatewayUnavailable"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// IngestWebhook runs the complete processing pass for one webhook delivery.
func (a *Activities) IngestWebhook(ctx context.Context, resourceURL string) (*ports.BatchSummary, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("ingest activity not initialized", "resourceUrl", resourceURL)
		return nil, errors.New("ingest activity not initialized")
	}
	logger.Info("IngestWebhook activity started", "resourceUrl", resourceURL)
	summary, err := a.service.ProcessWebhook(ctx, resourceURL)
	if err != nil {
		logger.Error("IngestWebhook activity failed", "resourceUrl", resourceURL, "error", err)
		return nil, wrapActivityError(err)
	}
	logger.Info("IngestWebhook activity completed",
		"resourceUrl", resourceURL,
		"processed", summary.Processed(),
		"failed", summary.Failed())
	return summary, nil
}

// wrapActivityError converts service failures into typed application errors.
// A malformed webhook can never succeed on retry, so it is non-retryable;
// gateway failures stay retryable under the sequence's retry policy.
func wrapActivityError(err error) error {
	switch {
	case errors.Is(err, application.ErrInvalidWebhook):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidWebhook, err)
	case errors.Is(err, ports.ErrGatewayTimeout):
		return temporal.NewApplicationError(err.Error(), ErrTypeGatewayTimeout)
	case errors.Is(err, ports.ErrGatewayUnavailable):
		return temporal.NewApplicationError(err.Error(), ErrTypeGatewayUnavailable)
	default:
		return err
	}
}
