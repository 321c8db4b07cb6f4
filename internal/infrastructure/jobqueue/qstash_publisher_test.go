package jobqueue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

var _ usecase.ScoreJobPublisher = (*QStashPublisher)(nil)

func TestQStashPublisher_PublishScoreWeek(t *testing.T) {
	var (
		gotPath    string
		gotHeaders http.Header
		gotBody    string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	publisher, err := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://pool.example.com/",
		Retries:          3,
		InternalJobToken: "job-secret",
		ScoreDelay:       30 * time.Second,
	}, logging.NewNop())
	require.NoError(t, err)

	err = publisher.PublishScoreWeek(context.Background(), 7, "score-week-7-game-3-21-14")
	require.NoError(t, err)

	assert.Equal(t, "/v2/publish/https://pool.example.com/v1/internal/jobs/score-week", gotPath)
	assert.JSONEq(t, `{"week_id":7}`, gotBody)
	assert.Equal(t, "Bearer qstash-token", gotHeaders.Get("Authorization"))
	assert.Equal(t, "POST", gotHeaders.Get("Upstash-Method"))
	assert.Equal(t, "3", gotHeaders.Get("Upstash-Retries"))
	assert.Equal(t, "30s", gotHeaders.Get("Upstash-Delay"))
	assert.Equal(t, "score-week-7-game-3-21-14", gotHeaders.Get("Upstash-Deduplication-Id"))
	assert.Equal(t, "job-secret", gotHeaders.Get("Upstash-Forward-X-Internal-Job-Token"))
}

func TestQStashPublisher_Non2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	publisher, err := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		Token:         "t",
		TargetBaseURL: "https://pool.example.com",
	}, nil)
	require.NoError(t, err)

	err = publisher.PublishScoreWeek(context.Background(), 1, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewQStashPublisher_ValidatesConfig(t *testing.T) {
	tests := []QStashPublisherConfig{
		{BaseURL: "", Token: "t", TargetBaseURL: "https://pool.example.com"},
		{BaseURL: "ftp://qstash.upstash.io", Token: "t", TargetBaseURL: "https://pool.example.com"},
		{BaseURL: "https://qstash.upstash.io", Token: "t", TargetBaseURL: "https://"},
		{BaseURL: "https://qstash.upstash.io", Token: " ", TargetBaseURL: "https://pool.example.com"},
	}
	for _, cfg := range tests {
		if _, err := NewQStashPublisher(cfg, nil); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestFormatDelay(t *testing.T) {
	assert.Equal(t, "0s", formatDelay(-time.Second))
	assert.Equal(t, "2s", formatDelay(1600*time.Millisecond))
	assert.Equal(t, "90s", formatDelay(90*time.Second))
}
