package ports

import "context"

// WorkflowOrchestrator starts the webhook-ingestion flow, either inline or on a
// durable workflow engine.
type WorkflowOrchestrator interface {
	IngestWebhook(ctx context.Context, resourceURL string) (*BatchSummary, error)
}
