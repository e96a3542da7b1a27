package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/club-manager/external/contentgen"
	"github.com/riskibarqy/club-manager/internal/config"
	"github.com/riskibarqy/club-manager/internal/domain/content"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-manager/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/club-manager/internal/platform/id"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/platform/random"
	"github.com/riskibarqy/club-manager/internal/platform/resilience"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

// App holds the HTTP server and everything that has to be released with it.
type App struct {
	Server *http.Server
	season *usecase.SeasonService
	pool   *ants.Pool
	db     *sqlx.DB
	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	seed, err := memory.SeedClubs()
	if err != nil {
		return nil, fmt.Errorf("load reference clubs: %w", err)
	}
	clubRepo := memory.NewClubRepository(seed)

	archive, db, err := newArchive(cfg, logger)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(cfg.GameWorkerPoolSize, ants.WithNonblocking(true))
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	clock := clockwork.NewRealClock()
	season := usecase.NewSeasonService(
		clubRepo,
		newGenerator(cfg, clock, logger),
		archive,
		pool,
		idgen.NewUUIDGenerator(),
		random.New(),
		clock,
		usecase.SeasonConfig{
			StartingBudget: cfg.GameStartingBudget,
			HomeClubID:     cfg.GameHomeClubID,
		},
		logger,
	)
	career := usecase.NewCareerService(season)

	handler := httpapi.NewHandler(season, career, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		season: season,
		pool:   pool,
		db:     db,
		logger: logger,
	}, nil
}

// Shutdown stops the HTTP server first, then drains background season work
// and releases the pool and database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := a.season.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("season tasks: %w", err))
	}
	a.pool.Release()
	closeDB(a.db, a.logger)
	return errors.Join(errs...)
}

func newGenerator(cfg config.Config, clock clockwork.Clock, logger *logging.Logger) content.Generator {
	if !cfg.GeneratorEnabled {
		logger.Info("content generator disabled", "reason", "GENERATOR_ENABLED=false")
		return contentgen.Disabled{}
	}

	logger.Info("content generator enabled", "base_url", cfg.GeneratorBaseURL, "model", cfg.GeneratorModel)
	return contentgen.NewClient(contentgen.ClientConfig{
		BaseURL:      cfg.GeneratorBaseURL,
		APIKey:       cfg.GeneratorAPIKey,
		Model:        cfg.GeneratorModel,
		Timeout:      cfg.GeneratorTimeout,
		MaxRetries:   cfg.GeneratorMaxRetries,
		RetryBackoff: cfg.GeneratorRetryBackoff,
		Clock:        clock,
		Logger:       logger.Named("contentgen"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GeneratorCircuitEnabled,
			FailureThreshold: cfg.GeneratorCircuitFailureCount,
			OpenTimeout:      cfg.GeneratorCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GeneratorCircuitHalfOpenMaxReq,
		},
	})
}
