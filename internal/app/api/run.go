package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	shipstationclient "github.com/orderops/shipsplit/internal/clients/http/shipstation"
	inventoryfile "github.com/orderops/shipsplit/internal/domains/inventory/adapters/file"
	inventoryhttp "github.com/orderops/shipsplit/internal/domains/inventory/adapters/http"
	inventorypostgres "github.com/orderops/shipsplit/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/orderops/shipsplit/internal/domains/inventory/application"
	invports "github.com/orderops/shipsplit/internal/domains/inventory/ports"
	ordersgateway "github.com/orderops/shipsplit/internal/domains/orders/adapters/gateway/shipstation"
	orderhttp "github.com/orderops/shipsplit/internal/domains/orders/adapters/http"
	ordersobs "github.com/orderops/shipsplit/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/orderops/shipsplit/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/orderops/shipsplit/internal/domains/orders/application"
	ordersdomain "github.com/orderops/shipsplit/internal/domains/orders/domain"
	ordersports "github.com/orderops/shipsplit/internal/domains/orders/ports"
	"github.com/orderops/shipsplit/internal/platform/migrations"
	platformobservability "github.com/orderops/shipsplit/internal/platform/observability"
	platformpostgres "github.com/orderops/shipsplit/internal/platform/postgres"
)

// Run boots the order-splitting HTTP API with observability, the inventory
// store, the ShipStation gateway, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "shipsplit-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		return err
	}

	table := ordersdomain.DefaultAssignmentTable()
	if err := table.Validate(); err != nil {
		logger.Error("invalid warehouse assignment table", slog.String("error", err.Error()))
		return err
	}

	inventoryStore, cleanupStore, err := BuildInventoryStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to configure inventory store", slog.String("error", err.Error()))
		return err
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
		return err
	}
	gateway := ordersgateway.NewGateway(ssClient)

	coreService := ordersapp.NewService(
		gateway,
		ordersapp.NewClassifier(table, inventoryStore, logger),
		ordersapp.NewSplitter(table),
	)
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orchestrator ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineIngestion(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline ingestion", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = ordersworkflows.NewTemporalIngestion(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	inventoryService := inventoryapp.NewService(inventoryStore)

	router := NewRouter(
		orderhttp.NewWebhookHandler(orchestrator),
		inventoryhttp.NewHandler(inventoryService),
	)
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("order-splitting API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order-splitting API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// BuildInventoryStore selects postgres when a DSN is configured and falls
// back to the file-backed store otherwise. The worker shares this wiring.
func BuildInventoryStore(ctx context.Context, cfg Config, logger *slog.Logger) (invports.Store, func(), error) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("run inventory migrations: %w", err)
		}
		logger.Info("inventory store configured with postgres")
		return inventorypostgres.NewStore(db), cleanup, nil
	}
	store, err := inventoryfile.NewStore(cfg.InventoryFile, logger)
	if err != nil {
		return nil, func() {}, err
	}
	logger.Info("inventory store configured with file backend", slog.String("path", cfg.InventoryFile))
	return store, func() {}, nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
