package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/confidence-pool/internal/config"
	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
	"github.com/riskibarqy/confidence-pool/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/confidence-pool/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/confidence-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/confidence-pool/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/confidence-pool/internal/interfaces/httpapi"
	"github.com/riskibarqy/confidence-pool/internal/observability"
	basecache "github.com/riskibarqy/confidence-pool/internal/platform/cache"
	"github.com/riskibarqy/confidence-pool/internal/platform/id"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

// Services holds the use cases shared by the API server and the scorer CLI.
type Services struct {
	Picks     *usecase.PickService
	Scoring   *usecase.ScoringService
	Standings *usecase.StandingsService
	Schedule  *usecase.ScheduleService
	Metrics   *observability.ScoringMetrics

	db *sqlx.DB
}

type repositories struct {
	schedule  schedule.Repository
	picks     pick.Repository
	standings standing.Repository
	db        *sqlx.DB
}

func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewScoringMetrics()
	policy := usecase.NonParticipantPolicy(cfg.NonParticipantPolicy)

	scheduleService := usecase.NewScheduleService(repos.schedule, logger.Named("schedule"))
	if cfg.QStashEnabled {
		publisher, err := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
			ScoreDelay:       cfg.QStashScoreDelay,
		}, logger.Named("jobqueue"))
		if err != nil {
			if repos.db != nil {
				_ = repos.db.Close()
			}
			return nil, fmt.Errorf("init qstash publisher: %w", err)
		}
		scheduleService.WithScoreJobs(publisher)
	}

	return &Services{
		Picks: usecase.NewPickService(repos.schedule, repos.picks, repos.standings, usecase.PickServiceConfig{
			Rules:           pick.Rules{MustWinTeams: cfg.MustWinTeams},
			EnforceDeadline: cfg.EnforceDeadline,
		}, logger.Named("picks")),
		Scoring: usecase.NewScoringService(repos.schedule, repos.picks, repos.standings, usecase.ScoringConfig{
			NonParticipantPolicy: policy,
			Workers:              cfg.ScoringWorkers,
		}, id.NewUUIDGenerator(), metrics, logger.Named("scoring")),
		Standings: usecase.NewStandingsService(repos.schedule, repos.standings),
		Schedule:  scheduleService,
		Metrics:   metrics,
		db:        repos.db,
	}, nil
}

// Close releases the database pool when one was opened.
func (s *Services) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db, seedKickoff(time.Now())); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("sample schedule seeded")
		}
		repos = repositories{
			schedule:  postgres.NewScheduleRepository(db),
			picks:     postgres.NewPickRepository(db),
			standings: postgres.NewStandingRepository(db),
			db:        db,
		}
	case config.StorageMemory, "":
		picks := memory.NewPickRepository()
		repos = repositories{
			schedule:  memory.NewScheduleRepository(memory.SeedSeasons(), memory.SeedWeeks(seedKickoff(time.Now())), memory.SeedTeams()),
			picks:     picks,
			standings: memory.NewStandingRepository(picks),
		}
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		repos.schedule = cache.NewScheduleRepository(repos.schedule, basecache.NewStore(cfg.CacheTTL))
	}

	logger.Info("repositories ready",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
	)
	return repos, nil
}

// seedKickoff is the next Thursday 00:20 UTC, the usual opening kickoff.
func seedKickoff(now time.Time) time.Time {
	now = now.UTC()
	days := (int(time.Thursday) - int(now.Weekday()) + 7) % 7
	kickoff := time.Date(now.Year(), now.Month(), now.Day()+days, 0, 20, 0, 0, time.UTC)
	if !kickoff.After(now) {
		kickoff = kickoff.AddDate(0, 0, 7)
	}
	return kickoff
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if services == nil {
		return nil, errors.New("services are required")
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(services.Picks, services.Scoring, services.Standings, services.Schedule, logger)

	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	}
	if cfg.MetricsEnabled && services.Metrics != nil {
		routerCfg.Metrics = services.Metrics.Handler()
	}

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
