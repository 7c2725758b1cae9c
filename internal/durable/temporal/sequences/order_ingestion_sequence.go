package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/orderops/shipsplit/internal/domains/orders/ports"
	orderactivities "github.com/orderops/shipsplit/internal/platform/temporal/activities/orders"
)

// RunOrderIngestionSequence executes the activity that fetches and routes the
// order batch behind a webhook resource URL. Retries cover transient platform
// failures; the activity itself never retries individual orders.
func RunOrderIngestionSequence(ctx workflow.Context, resourceURL string) (*ports.BatchSummary, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order ingestion sequence started", "resourceUrl", resourceURL)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var summary ports.BatchSummary
	err := workflow.ExecuteActivity(ctx, orderactivities.IngestWebhookActivityName, resourceURL).Get(ctx, &summary)
	if err != nil {
		logger.Error("order ingestion sequence failed", "resourceUrl", resourceURL, "error", err)
		return nil, err
	}
	logger.Info("order ingestion sequence completed",
		"resourceUrl", resourceURL,
		"processed", summary.Processed(),
		"failed", summary.Failed())
	return &summary, nil
}
