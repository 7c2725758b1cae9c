package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/orderops/shipsplit/internal/domains/orders/application"
	"github.com/orderops/shipsplit/internal/domains/orders/ports"
	orderworkflows "github.com/orderops/shipsplit/internal/durable/temporal/workflows/orders"
	orderactivities "github.com/orderops/shipsplit/internal/platform/temporal/activities/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalIngestion)(nil)
	_ ports.WorkflowOrchestrator = (*InlineIngestion)(nil)
)

// TemporalIngestion starts webhook ingestion on a Temporal cluster. Duplicate
// webhook deliveries map onto the same workflow ID, so redelivery attaches to
// the in-flight run instead of processing the batch twice.
type TemporalIngestion struct {
	client    client.Client
	taskQueue string
}

// NewTemporalIngestion wires a Temporal client into the orchestrator.
func NewTemporalIngestion(c client.Client) *TemporalIngestion {
	return &TemporalIngestion{client: c, taskQueue: orderworkflows.OrderIngestionTaskQueue}
}

// IngestWebhook starts the durable ingestion workflow and waits for its summary.
func (o *TemporalIngestion) IngestWebhook(ctx context.Context, resourceURL string) (*ports.BatchSummary, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal ingestion not configured")
	}
	workflowID := buildIngestionWorkflowID(resourceURL)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	input := orderworkflows.OrderIngestionWorkflowInput{
		ResourceURL: resourceURL,
		TraceID:     workflowTraceID(ctx),
	}
	// Start by registered name, not function reference: the standalone client
	// has no registry, so a function reference would resolve to the reflective
	// short name the worker never registered.
	run, err := o.client.ExecuteWorkflow(ctx, options, orderworkflows.OrderIngestionWorkflowName, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var summary ports.BatchSummary
			if err := existingRun.Get(ctx, &summary); err != nil {
				return nil, mapWorkflowError(err)
			}
			return &summary, nil
		}
		return nil, err
	}
	var summary ports.BatchSummary
	if err := run.Get(ctx, &summary); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &summary, nil
}

// mapWorkflowError restores port sentinels from typed application errors.
// Temporal serializes errors across the worker boundary, so the error chain is
// gone by the time the client sees the failure; the application error type is
// the only identity that survives.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrTypeInvalidWebhook:
		return fmt.Errorf("%w: %s", application.ErrInvalidWebhook, appErr.Message())
	case orderactivities.ErrTypeGatewayTimeout:
		return fmt.Errorf("%w: %s", ports.ErrGatewayTimeout, appErr.Message())
	case orderactivities.ErrTypeGatewayUnavailable:
		return fmt.Errorf("%w: %s", ports.ErrGatewayUnavailable, appErr.Message())
	default:
		return err
	}
}

// InlineIngestion executes the service directly without Temporal, useful for
// tests or dev fallbacks.
type InlineIngestion struct {
	service ports.Service
}

// NewInlineIngestion wraps the orders service for synchronous execution.
func NewInlineIngestion(service ports.Service) *InlineIngestion {
	return &InlineIngestion{service: service}
}

// IngestWebhook delegates to the application service without durable orchestration.
func (o *InlineIngestion) IngestWebhook(ctx context.Context, resourceURL string) (*ports.BatchSummary, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline ingestion not configured")
	}
	return o.service.ProcessWebhook(ctx, resourceURL)
}

// buildIngestionWorkflowID derives a deterministic ID from the resource URL,
// binned by hour so a URL the platform reuses later still gets a fresh run.
func buildIngestionWorkflowID(resourceURL string) string {
	sum := sha256.Sum256([]byte(resourceURL))
	return fmt.Sprintf("order-ingestion-%s-%s",
		hex.EncodeToString(sum[:8]),
		time.Now().UTC().Format("2006010215"))
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
