package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestIsHandlerSpan(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.SubmitPicks", want: true},
		{in: "httpapi.Handler.RunScoreWeekJob", want: true},
		{in: "httpapi.RequireUser", want: false},
		{in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := isHandlerSpan(tt.in); got != tt.want {
				t.Fatalf("isHandlerSpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartSpan_UntracedRequestGetsNoSpan(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.GetStandings")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() || span.IsRecording() {
		t.Fatalf("expected a no-op span without a parent")
	}
	if trace.SpanFromContext(got).SpanContext().IsValid() {
		t.Fatalf("expected no span in context")
	}
}

func TestSpanAttributes(t *testing.T) {
	week := attribute.Int64("pool.week_id", 3)

	if attrs := spanAttributes(context.Background(), []attribute.KeyValue{week}); len(attrs) != 1 {
		t.Fatalf("expected caller attributes only, got %v", attrs)
	}

	attrs := spanAttributes(withUserID(context.Background(), "alice"), []attribute.KeyValue{week})
	if len(attrs) != 2 {
		t.Fatalf("expected user attribute to be added, got %v", attrs)
	}
	if attrs[0].Key != userIDAttribute || attrs[0].Value.AsString() != "alice" {
		t.Fatalf("unexpected user attribute: %v", attrs[0])
	}
}
