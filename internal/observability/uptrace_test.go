package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/confidence-pool/internal/config"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

func TestInitUptrace_DisabledIsNoop(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Config
		wantReason string
	}{
		{name: "flag off", cfg: config.Config{UptraceEnabled: false, UptraceDSN: "https://t@api.uptrace.dev"}, wantReason: "UPTRACE_ENABLED=false"},
		{name: "blank dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  "}, wantReason: "UPTRACE_DSN empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uptraceDisabledReason(tt.cfg); got != tt.wantReason {
				t.Fatalf("uptraceDisabledReason()=%q want=%q", got, tt.wantReason)
			}

			shutdown, err := InitUptrace(tt.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}

func TestPoolResourceAttributes(t *testing.T) {
	attrs := poolResourceAttributes(config.Config{
		StorageDriver:        config.StoragePostgres,
		NonParticipantPolicy: config.PolicyZero,
		EnforceDeadline:      true,
		MustWinTeams:         []string{"CHI"},
	})

	got := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		got[kv.Key] = kv.Value
	}
	if got["pool.storage_driver"].AsString() != config.StoragePostgres {
		t.Fatalf("unexpected storage attribute: %v", got["pool.storage_driver"])
	}
	if got["pool.non_participant_policy"].AsString() != config.PolicyZero {
		t.Fatalf("unexpected policy attribute: %v", got["pool.non_participant_policy"])
	}
	if teams := got["pool.must_win_teams"].AsStringSlice(); len(teams) != 1 || teams[0] != "CHI" {
		t.Fatalf("unexpected must-win attribute: %v", teams)
	}

	if attrs := poolResourceAttributes(config.Config{}); len(attrs) != 3 {
		t.Fatalf("expected must-win attribute to be omitted, got %d attributes", len(attrs))
	}
}
