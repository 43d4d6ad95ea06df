package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CreateChildSpan starts a span under whatever span the context carries.
func CreateChildSpan(ctx context.Context, name string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer("petstore")
	opts := []trace.SpanStartOption{
		trace.WithAttributes(attrs...),
	}
	return tracer.Start(ctx, name, opts...)
}

func AddSpanAttributes(span trace.Span, attrs []attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// AddSpanError marks the span as failed and records the error on it.
func AddSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func AddSpanEvent(span trace.Span, name string, attrs []attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

func AddDatabaseAttributes(span trace.Span, table string, operation string, query string) {
	span.SetAttributes(
		attribute.String("db.table", table),
		attribute.String("db.operation", operation),
		attribute.String("db.query", query),
	)
}

func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

func GetSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().SpanID().String()
	}
	return ""
}

// SpanWrapper runs fn inside a child span and records any returned error.
func SpanWrapper(ctx context.Context, name string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	ctx, span := CreateChildSpan(ctx, name, attrs)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		AddSpanError(span, err)
	}

	return err
}

func DatabaseSpanWrapper(ctx context.Context, table, operation, query string, fn func(context.Context) error) error {
	attrs := []attribute.KeyValue{
		attribute.String("db.table", table),
		attribute.String("db.operation", operation),
		attribute.String("db.query", query),
	}

	return SpanWrapper(ctx, fmt.Sprintf("db.%s.%s", table, operation), attrs, fn)
}

func ServiceSpanWrapper(ctx context.Context, service, operation string, fn func(context.Context) error) error {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
	}

	return SpanWrapper(ctx, fmt.Sprintf("service.%s.%s", service, operation), attrs, fn)
}
