package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.NonParticipantPolicy != PolicyOmit {
		t.Fatalf("unexpected NonParticipantPolicy: %q", cfg.NonParticipantPolicy)
	}
	if !cfg.EnforceDeadline {
		t.Fatalf("expected EnforceDeadline=true by default")
	}
	if cfg.ScoringWorkers != 4 {
		t.Fatalf("unexpected ScoringWorkers: %d", cfg.ScoringWorkers)
	}
	if len(cfg.MustWinTeams) != 0 {
		t.Fatalf("expected no must-win teams, got %v", cfg.MustWinTeams)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}

func TestLoad_PoolPolicy(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("POOL_MUST_WIN_TEAMS", " chi, gb ,")
	t.Setenv("POOL_NON_PARTICIPANT_POLICY", "ZERO")
	t.Setenv("POOL_ENFORCE_DEADLINE", "false")
	t.Setenv("POOL_SCORING_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.MustWinTeams) != 2 || cfg.MustWinTeams[0] != "CHI" || cfg.MustWinTeams[1] != "GB" {
		t.Fatalf("unexpected MustWinTeams: %v", cfg.MustWinTeams)
	}
	if cfg.NonParticipantPolicy != PolicyZero {
		t.Fatalf("unexpected NonParticipantPolicy: %q", cfg.NonParticipantPolicy)
	}
	if cfg.EnforceDeadline {
		t.Fatalf("expected EnforceDeadline=false")
	}
	if cfg.ScoringWorkers != 8 {
		t.Fatalf("unexpected ScoringWorkers: %d", cfg.ScoringWorkers)
	}
}

func TestLoad_RejectsInvalidPoolValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "policy", key: "POOL_NON_PARTICIPANT_POLICY", val: "average"},
		{name: "workers zero", key: "POOL_SCORING_WORKERS", val: "0"},
		{name: "workers not a number", key: "POOL_SCORING_WORKERS", val: "many"},
		{name: "deadline", key: "POOL_ENFORCE_DEADLINE", val: "maybe"},
		{name: "storage driver", key: "STORAGE_DRIVER", val: "sqlite"},
		{name: "cache ttl", key: "CACHE_TTL", val: "-1s"},
		{name: "log level", key: "APP_LOG_LEVEL", val: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_LogSinkRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LOG_SINK_ENABLED", "true")
	t.Setenv("LOG_SINK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when LOG_SINK_ENABLED=true without LOG_SINK_ENDPOINT")
	}
}

func TestLoad_LogSinkConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LOG_SINK_ENABLED", "true")
	t.Setenv("LOG_SINK_ENDPOINT", "logs.example.com/ingest")
	t.Setenv("LOG_SINK_TOKEN", "token-123")
	t.Setenv("LOG_SINK_TIMEOUT", "4s")
	t.Setenv("LOG_SINK_MIN_LEVEL", "error")
	t.Setenv("LOG_SINK_BATCH_SIZE", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.LogSinkEnabled || cfg.LogSinkEndpoint != "logs.example.com/ingest" {
		t.Fatalf("unexpected log sink settings: enabled=%t endpoint=%q", cfg.LogSinkEnabled, cfg.LogSinkEndpoint)
	}
	if cfg.LogSinkToken != "token-123" {
		t.Fatalf("unexpected LogSinkToken")
	}
	if cfg.LogSinkTimeout != 4*time.Second {
		t.Fatalf("unexpected LogSinkTimeout: %s", cfg.LogSinkTimeout)
	}
	if cfg.LogSinkMinLevel.String() != "error" {
		t.Fatalf("unexpected LogSinkMinLevel: %s", cfg.LogSinkMinLevel.String())
	}
	if cfg.LogSinkBatch != 10 {
		t.Fatalf("unexpected LogSinkBatch: %d", cfg.LogSinkBatch)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PostgresRequiresPoolSizes(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when idle connections exceed open connections")
	}
}

func TestLoad_QStash(t *testing.T) {
	t.Run("enabled requires token target and job token", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("QSTASH_ENABLED", "true")
		t.Setenv("QSTASH_TOKEN", "q-token")
		t.Setenv("QSTASH_TARGET_BASE_URL", "https://pool.example.com")
		t.Setenv("INTERNAL_JOB_TOKEN", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when INTERNAL_JOB_TOKEN is missing")
		}
	})

	t.Run("parses settings", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("QSTASH_ENABLED", "true")
		t.Setenv("QSTASH_TOKEN", "q-token")
		t.Setenv("QSTASH_TARGET_BASE_URL", "https://pool.example.com")
		t.Setenv("INTERNAL_JOB_TOKEN", "job-secret")
		t.Setenv("QSTASH_RETRIES", "5")
		t.Setenv("QSTASH_SCORE_DELAY", "0s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.QStashBaseURL != "https://qstash.upstash.io" {
			t.Fatalf("unexpected QStashBaseURL: %q", cfg.QStashBaseURL)
		}
		if cfg.QStashRetries != 5 || cfg.QStashScoreDelay != 0 {
			t.Fatalf("unexpected retries=%d delay=%s", cfg.QStashRetries, cfg.QStashScoreDelay)
		}
		if cfg.QStashTimeout != 10*time.Second {
			t.Fatalf("unexpected QStashTimeout: %s", cfg.QStashTimeout)
		}
	})

	t.Run("rejects negative delay", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("QSTASH_SCORE_DELAY", "-5s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative QSTASH_SCORE_DELAY")
		}
	})
}
