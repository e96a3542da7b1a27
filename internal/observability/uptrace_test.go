package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/club-manager/internal/config"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "club-manager-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EmptyDSN(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: true,
		UptraceDSN:     "  ",
		ServiceName:    "club-manager-api",
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestStartProfiling_Disabled(t *testing.T) {
	profiling, err := StartProfiling(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("start profiling: %v", err)
	}
	if addr := profiling.PprofAddr(); addr != "" {
		t.Fatalf("expected no pprof listener when disabled, got %q", addr)
	}
	if err := profiling.Stop(context.Background()); err != nil {
		t.Fatalf("stop profiling: %v", err)
	}
}

func TestProfilingStop_Nil(t *testing.T) {
	var profiling *Profiling
	if err := profiling.Stop(context.Background()); err != nil {
		t.Fatalf("stop nil profiling: %v", err)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("pprof index status=%d", rec.Code)
	}
}
