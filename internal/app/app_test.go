package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/confidence-pool/internal/config"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:             ":0",
		StorageDriver:        config.StorageMemory,
		CacheEnabled:         true,
		CacheTTL:             time.Minute,
		NonParticipantPolicy: config.PolicyOmit,
		ScoringWorkers:       2,
		MetricsEnabled:       true,
		InternalJobToken:     "secret",
	}
}

func TestNewServices_Memory(t *testing.T) {
	services, err := NewServices(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = services.Close() })

	week, err := services.Schedule.ActiveWeek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, week.Number)
	assert.Len(t, week.Games, 4)
}

func TestNewServices_RejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"

	_, err := NewServices(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewHTTPServer_ServesHealthAndMetrics(t *testing.T) {
	cfg := memoryConfig()
	services, err := NewServices(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	srv, err := NewHTTPServer(cfg, services, logging.NewNop())
	require.NoError(t, err)

	for _, path := range []string{"/healthz", "/metrics", "/v1/teams"} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestNewHTTPServer_MetricsDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.MetricsEnabled = false
	services, err := NewServices(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	srv, err := NewHTTPServer(cfg, services, logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeedKickoff(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "monday rolls to thursday",
			now:  time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 9, 4, 0, 20, 0, 0, time.UTC),
		},
		{
			name: "thursday before kickoff",
			now:  time.Date(2025, 9, 4, 0, 10, 0, 0, time.UTC),
			want: time.Date(2025, 9, 4, 0, 20, 0, 0, time.UTC),
		},
		{
			name: "thursday after kickoff",
			now:  time.Date(2025, 9, 4, 1, 0, 0, 0, time.UTC),
			want: time.Date(2025, 9, 11, 0, 20, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, seedKickoff(tt.now))
		})
	}
}
