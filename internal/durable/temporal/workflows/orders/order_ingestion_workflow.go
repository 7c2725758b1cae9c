package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/orderops/shipsplit/internal/domains/orders/ports"
	"github.com/orderops/shipsplit/internal/durable/temporal/sequences"
)

const (
	// OrderIngestionWorkflowName is the public identifier for registering the workflow.
	OrderIngestionWorkflowName = "orders.workflows.Ingestion"
	// OrderIngestionTaskQueue is the queue consumed by the worker processing order workflows.
	OrderIngestionTaskQueue = "ORDER_INGESTION"
)

// OrderIngestionWorkflowInput captures one webhook delivery.
type OrderIngestionWorkflowInput struct {
	ResourceURL string
	TraceID     string
}

// OrderIngestionWorkflow durably fetches and routes the order batch behind a
// webhook resource URL.
func OrderIngestionWorkflow(ctx workflow.Context, input OrderIngestionWorkflowInput) (*ports.BatchSummary, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderIngestionWorkflow started", withTraceID(input.TraceID, "resourceUrl", input.ResourceURL)...)
	summary, err := sequences.RunOrderIngestionSequence(ctx, input.ResourceURL)
	if err != nil {
		logger.Error("OrderIngestionWorkflow failed", withTraceID(input.TraceID, "resourceUrl", input.ResourceURL, "error", err)...)
		return nil, err
	}
	logger.Info("OrderIngestionWorkflow completed",
		withTraceID(input.TraceID, "processed", summary.Processed(), "failed", summary.Failed())...)
	return summary, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
