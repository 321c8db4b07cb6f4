package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/confidence-pool/internal/config"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

// InitUptrace installs the global tracer, meter and log providers and, when
// log export is on, mirrors logger records into them. The returned func
// flushes pending spans and logs before shutting the providers down.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if reason := uptraceDisabledReason(cfg); reason != "" {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "reason", reason)
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
		uptrace.WithResourceAttributes(poolResourceAttributes(cfg)...),
	)

	var mirror logging.MirrorFunc
	if cfg.UptraceLogsEnabled {
		mirror = newLogBridge(cfg.ServiceVersion, cfg.UptraceLogMinLevel).mirror()
	}
	logging.SetMirror(mirror)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
		"log_min_level", cfg.UptraceLogMinLevel.String(),
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		if err := uptrace.ForceFlush(ctx); err != nil {
			logger.Warn("uptrace flush failed", "error", err)
		}
		return uptrace.Shutdown(ctx)
	}, nil
}

func uptraceDisabledReason(cfg config.Config) string {
	switch {
	case !cfg.UptraceEnabled:
		return "UPTRACE_ENABLED=false"
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		return "UPTRACE_DSN empty"
	default:
		return ""
	}
}

// poolResourceAttributes tag every span with the pool rules in force, so
// traces from differently configured deployments can be told apart.
func poolResourceAttributes(cfg config.Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("pool.storage_driver", cfg.StorageDriver),
		attribute.String("pool.non_participant_policy", cfg.NonParticipantPolicy),
		attribute.Bool("pool.enforce_deadline", cfg.EnforceDeadline),
	}
	if len(cfg.MustWinTeams) > 0 {
		attrs = append(attrs, attribute.StringSlice("pool.must_win_teams", cfg.MustWinTeams))
	}
	return attrs
}
