package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const userIDAttribute = attribute.Key("pool.user_id")

var apiTracer = otel.Tracer("confidence-pool/internal/interfaces/httpapi")

// startSpan opens a child span for handler names only. Middleware and helpers
// reuse the request span, and untraced requests such as probes get no span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !isHandlerSpan(name) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(spanAttributes(ctx, attrs)...))
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

func spanAttributes(ctx context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return attrs
	}
	out := make([]attribute.KeyValue, 0, len(attrs)+1)
	out = append(out, userIDAttribute.String(userID))
	return append(out, attrs...)
}
