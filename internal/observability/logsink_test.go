package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/confidence-pool/internal/config"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

func TestInitLogSink_ShipsBatchedRecords(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		records  []map[string]any
		lastAuth string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var batch []map[string]any
		if err := sonic.Unmarshal(body, &batch); err != nil {
			t.Errorf("decode batch: %v", err)
		}
		mu.Lock()
		records = append(records, batch...)
		lastAuth = r.Header.Get("Authorization")
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	cfg := config.Config{
		LogSinkEnabled:  true,
		LogSinkEndpoint: server.URL,
		LogSinkToken:    "secret-token",
		LogSinkTimeout:  2 * time.Second,
		LogSinkMinLevel: logging.LevelWarn,
		LogSinkBatch:    10,
		ServiceName:     "confidence-pool-api",
		AppEnv:          config.EnvDev,
	}

	logger, shutdown, err := InitLogSink(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init log sink: %v", err)
	}

	logger.Info("below threshold")
	logger.WarnContext(context.Background(), "scoring partial", "week_id", 3)
	logger.ErrorContext(context.Background(), "scoring failed", "week_id", 4)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown log sink: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(records) != 2 {
		t.Fatalf("expected 2 shipped records, got %d", len(records))
	}
	if records[0]["message"] != "scoring partial" || records[0]["service"] != "confidence-pool-api" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if lastAuth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", lastAuth)
	}
}

func TestInitLogSink_Disabled(t *testing.T) {
	base := logging.NewNop()
	logger, shutdown, err := InitLogSink(config.Config{}, base)
	if err != nil {
		t.Fatalf("init log sink: %v", err)
	}
	if logger != base {
		t.Fatalf("expected base logger when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNormalizeSinkEndpoint(t *testing.T) {
	tests := map[string]string{
		"":                          "",
		"logs.example.com":          "https://logs.example.com",
		"http://localhost:9000/in":  "http://localhost:9000/in",
		" https://logs.example.com": "https://logs.example.com",
	}
	for in, want := range tests {
		if got := normalizeSinkEndpoint(in); got != want {
			t.Fatalf("normalizeSinkEndpoint(%q)=%q want %q", in, got, want)
		}
	}
}
