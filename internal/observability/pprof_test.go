package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/confidence-pool/internal/config"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected no server when pprof is disabled")
	}
	if err := StopPprofServer(context.Background(), srv, nil); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}

func TestStartPprofServer_ServesIndex(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	t.Cleanup(func() {
		if err := StopPprofServer(context.Background(), srv, logging.NewNop()); err != nil {
			t.Errorf("stop pprof: %v", err)
		}
	})

	resp, err := http.Get("http://" + srv.Addr + "/debug/pprof/")
	if err != nil {
		t.Fatalf("get pprof index: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "goroutine") {
		t.Fatalf("unexpected pprof index status=%d", resp.StatusCode)
	}
}

func TestPprofMux_RejectsWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestProfileTypes(t *testing.T) {
	pg := profileTypes(config.Config{StorageDriver: config.StoragePostgres})
	if wantsContention(pg) {
		t.Fatalf("postgres deployments should not collect contention profiles")
	}
	mem := profileTypes(config.Config{StorageDriver: config.StorageMemory})
	if !wantsContention(mem) || len(mem) != len(pg)+4 {
		t.Fatalf("memory deployments should add mutex and block profiles, got %d types", len(mem))
	}
	if mem[0] != pyroscope.ProfileCPU {
		t.Fatalf("expected CPU profile first, got %s", mem[0])
	}
}
