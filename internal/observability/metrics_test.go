package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

var _ usecase.ScoringRecorder = (*ScoringMetrics)(nil)

func TestScoringMetrics_Counters(t *testing.T) {
	m := NewScoringMetrics()

	m.AddSurvivorStrikes(2)
	m.AddSurvivorStrikes(0)
	m.AddEliminations(1)
	m.AddWarnings(usecase.WarningNoFinalGames, 1)
	m.AddWarnings(usecase.WarningNoFinalGames, 2)
	m.AddUserFailures(0)

	if got := testutil.ToFloat64(m.strikes); got != 2 {
		t.Fatalf("strikes=%v want 2", got)
	}
	if got := testutil.ToFloat64(m.eliminations); got != 1 {
		t.Fatalf("eliminations=%v want 1", got)
	}
	if got := testutil.ToFloat64(m.warnings.WithLabelValues(usecase.WarningNoFinalGames)); got != 3 {
		t.Fatalf("warnings=%v want 3", got)
	}
	if got := testutil.ToFloat64(m.userFailures); got != 0 {
		t.Fatalf("user failures=%v want 0", got)
	}
}

func TestScoringMetrics_HandlerExposesHistogram(t *testing.T) {
	m := NewScoringMetrics()
	m.ObserveScoreWeek("success", 120*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `confidence_pool_scoring_week_duration_seconds_count{outcome="success"} 1`) {
		t.Fatalf("histogram sample missing from output:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Fatalf("go collector missing from output")
	}
}
