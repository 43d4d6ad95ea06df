package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"petstore/internal/core/port"
	"petstore/pkg/tracing"
)

// OTELProbe implements Telemetry using OpenTelemetry. When metrics are
// provided, service and repository operations also feed the prometheus
// counters.
type OTELProbe struct {
	logger  *slog.Logger
	metrics *tracing.AppMetrics
}

func NewOTELProbe(logger *slog.Logger, metrics *tracing.AppMetrics) port.Telemetry {
	return &OTELProbe{
		logger:  logger,
		metrics: metrics,
	}
}

// OTelSpan wraps an OpenTelemetry span to implement the generic Span port.
type OTelSpan struct {
	span trace.Span
}

func (s *OTelSpan) End() {
	s.span.End()
}

func (s *OTelSpan) SetAttributes(attrs map[string]interface{}) {
	s.span.SetAttributes(convertAttributes(attrs)...)
}

func (s *OTelSpan) SetStatus(code string, message string) {
	var statusCode codes.Code
	switch code {
	case "ok":
		statusCode = codes.Ok
	case "error":
		statusCode = codes.Error
	default:
		statusCode = codes.Unset
	}
	s.span.SetStatus(statusCode, message)
}

func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func convertAttributes(attrs map[string]interface{}) []attribute.KeyValue {
	var otelAttrs []attribute.KeyValue
	for key, value := range attrs {
		switch v := value.(type) {
		case string:
			otelAttrs = append(otelAttrs, attribute.String(key, v))
		case int:
			otelAttrs = append(otelAttrs, attribute.Int(key, v))
		case int64:
			otelAttrs = append(otelAttrs, attribute.Int64(key, v))
		case float64:
			otelAttrs = append(otelAttrs, attribute.Float64(key, v))
		case bool:
			otelAttrs = append(otelAttrs, attribute.Bool(key, v))
		default:
			otelAttrs = append(otelAttrs, attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}
	return otelAttrs
}

func (p *OTELProbe) tracer() trace.Tracer {
	return otel.Tracer("petstore")
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	spanName := fmt.Sprintf("repository.%s.%s", entity, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}
	standardAttrs = append(standardAttrs, convertAttributes(attrs)...)

	ctx, span := p.tracer().Start(ctx, spanName, trace.WithAttributes(standardAttrs...))
	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}
	standardAttrs = append(standardAttrs, convertAttributes(attrs)...)

	ctx, span := p.tracer().Start(ctx, spanName, trace.WithAttributes(standardAttrs...))
	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("repository.operation", trace.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("entity", entity),
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("success", err == nil),
	))

	if err == nil && p.metrics != nil {
		p.metrics.RecordDatabaseOperation(ctx, operation, entity)
	}

	if err != nil && p.logger != nil {
		p.logger.Error("repository operation failed",
			"operation", operation,
			"entity", entity,
			"error", err)
	}
}

func (p *OTELProbe) RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{}) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("repository.query", trace.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("entity", entity),
		attribute.String("db.statement", query),
		attribute.Int("db.args_count", len(args)),
	))
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("service.operation", trace.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("success", err == nil),
	))

	if err == nil && p.metrics != nil && service == "pet" {
		p.metrics.RecordPetOperation(ctx, operation)
	}
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{}) {
	attrs := []attribute.KeyValue{
		attribute.String("event", event),
		attribute.String("entity", entity),
		attribute.String("entity.id", entityID),
	}
	attrs = append(attrs, convertAttributes(metadata)...)

	span := trace.SpanFromContext(ctx)
	span.AddEvent(fmt.Sprintf("business.%s.%s", entity, event), trace.WithAttributes(attrs...))
}

func (p *OTELProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(convertAttributes(metadata)...))
	span.SetStatus(codes.Error, err.Error())

	if p.logger != nil {
		p.logger.Error("operation failed", "operation", operation, "error", err)
	}
}
