package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/orderops/shipsplit/internal/domains/orders/domain"
	"github.com/orderops/shipsplit/internal/domains/orders/ports"
)

const tracerName = "github.com/orderops/shipsplit/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and
// metrics. Per-order failures inside a batch are logged here; the inner
// service only records them in the summary.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// ProcessWebhook fetches and routes a webhook batch with instrumentation.
func (s *Service) ProcessWebhook(ctx context.Context, resourceURL string) (*ports.BatchSummary, error) {
	ctx, span := s.startSpan(ctx, "Service.ProcessWebhook", attribute.String("webhook.resource_url", resourceURL))
	defer span.End()

	s.logInfo(ctx, "processing webhook", slog.String("resource_url", resourceURL))
	summary, err := s.inner.ProcessWebhook(ctx, resourceURL)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to process webhook", slog.String("resource_url", resourceURL))
	}
	s.recordSummary(ctx, span, summary)
	return summary, nil
}

// ProcessOrders routes an already-fetched batch with instrumentation.
func (s *Service) ProcessOrders(ctx context.Context, orders []domain.Order) *ports.BatchSummary {
	ctx, span := s.startSpan(ctx, "Service.ProcessOrders", attribute.Int("orders.count", len(orders)))
	defer span.End()

	s.logInfo(ctx, "processing order batch", slog.Int("orders", len(orders)))
	summary := s.inner.ProcessOrders(ctx, orders)
	s.recordSummary(ctx, span, summary)
	return summary
}

func (s *Service) recordSummary(ctx context.Context, span trace.Span, summary *ports.BatchSummary) {
	if summary == nil {
		return
	}
	span.SetAttributes(
		attribute.String("batch.id", summary.BatchID),
		attribute.Int("batch.processed", summary.Processed()),
		attribute.Int("batch.failed", summary.Failed()),
	)
	for _, outcome := range summary.Outcomes {
		s.metrics.recordOutcome(ctx, outcome.Action)
		switch outcome.Action {
		case ports.ActionFailed:
			s.logError(ctx, "order routing failed", outcome.Err,
				slog.String("batch.id", summary.BatchID),
				slog.String("order.number", outcome.OrderNumber))
		default:
			s.logInfo(ctx, "order routed",
				slog.String("batch.id", summary.BatchID),
				slog.String("order.number", outcome.OrderNumber),
				slog.String("action", string(outcome.Action)),
				slog.Int("payloads", outcome.Payloads))
		}
	}
	s.logInfo(ctx, "batch completed",
		slog.String("batch.id", summary.BatchID),
		slog.Int("processed", summary.Processed()),
		slog.Int("failed", summary.Failed()))
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersRouted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersRouted, _ := m.Int64Counter("orders.service.routed",
		metric.WithDescription("Number of orders examined, partitioned by routing action"))
	return serviceMetrics{ordersRouted: ordersRouted}
}

func (m serviceMetrics) recordOutcome(ctx context.Context, action ports.Action) {
	if m.ordersRouted == nil {
		return
	}
	m.ordersRouted.Add(ctx, 1, metric.WithAttributes(attribute.String("order.action", string(action))))
}

var _ ports.Service = (*Service)(nil)
