package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/orderops/shipsplit/internal/app/api"
	shipstationclient "github.com/orderops/shipsplit/internal/clients/http/shipstation"
	ordersgateway "github.com/orderops/shipsplit/internal/domains/orders/adapters/gateway/shipstation"
	ordersobs "github.com/orderops/shipsplit/internal/domains/orders/adapters/observability"
	ordersapp "github.com/orderops/shipsplit/internal/domains/orders/application"
	ordersdomain "github.com/orderops/shipsplit/internal/domains/orders/domain"
	orderworkflows "github.com/orderops/shipsplit/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/orderops/shipsplit/internal/platform/observability"
	orderactivities "github.com/orderops/shipsplit/internal/platform/temporal/activities/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "shipsplit-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	table := ordersdomain.DefaultAssignmentTable()
	if err := table.Validate(); err != nil {
		logger.Error("invalid warehouse assignment table", slog.String("error", err.Error()))
		os.Exit(1)
	}

	inventoryStore, cleanupStore, err := api.BuildInventoryStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to configure inventory store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanupStore()

	ssClient, err := shipstationclient.NewClient(
		cfg.ShipStationBaseURL,
		cfg.ShipStationAPIKey,
		cfg.ShipStationAPISecret,
		&http.Client{Timeout: cfg.ShipStationTimeout},
	)
	if err != nil {
		logger.Error("failed to configure ShipStation client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	orderService := ordersobs.New(
		ordersapp.NewService(
			ordersgateway.NewGateway(ssClient),
			ordersapp.NewClassifier(table, inventoryStore, logger),
			ordersapp.NewSplitter(table),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	orderActivities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderIngestionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderIngestionWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderIngestionWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.IngestWebhook, activity.RegisterOptions{Name: orderactivities.IngestWebhookActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderIngestionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
