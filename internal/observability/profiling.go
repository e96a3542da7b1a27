package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"runtime"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/club-manager/internal/config"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

// Profiling owns the optional pprof listener and the Pyroscope uploader.
// Both are nil when disabled.
type Profiling struct {
	server   *http.Server
	profiler *pyroscope.Profiler
	logger   *logging.Logger
}

// StartProfiling starts whichever profilers the config enables. Mutex and
// block sampling is on whenever either of them runs.
func StartProfiling(cfg config.Config, logger *logging.Logger) (*Profiling, error) {
	if logger == nil {
		logger = logging.Default()
	}
	p := &Profiling{logger: logger.Named("profiling")}

	if cfg.PprofEnabled || cfg.PyroscopeEnabled {
		runtime.SetMutexProfileFraction(5)
		runtime.SetBlockProfileRate(5)
	}

	if cfg.PyroscopeEnabled {
		profiler, err := startPyroscope(cfg)
		if err != nil {
			return nil, err
		}
		p.profiler = profiler
		p.logger.Info("pyroscope enabled",
			"server_address", cfg.PyroscopeServerAddress,
			"application", cfg.PyroscopeAppName,
		)
	} else {
		p.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
	}

	if cfg.PprofEnabled {
		p.server = &http.Server{
			Addr:              cfg.PprofAddr,
			Handler:           pprofMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func(srv *http.Server) {
			p.logger.Info("pprof server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				p.logger.Error("pprof server failed", "error", err)
			}
		}(p.server)
	} else {
		p.logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
	}

	return p, nil
}

// Stop shuts the pprof listener down and flushes the last Pyroscope upload.
func (p *Profiling) Stop(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var errs []error
	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			p.logger.Info("pprof server stopped")
		}
	}
	if p.profiler != nil {
		if err := p.profiler.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Profiling) PprofAddr() string {
	if p == nil || p.server == nil {
		return ""
	}
	return p.server.Addr
}

func startPyroscope(cfg config.Config) (*pyroscope.Profiler, error) {
	return pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockDuration,
		},
	})
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	for _, name := range []string{"heap", "goroutine", "mutex", "block", "allocs"} {
		mux.Handle("GET /debug/pprof/"+name, pprof.Handler(name))
	}
	return mux
}
