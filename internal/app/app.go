package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/panjf2000/ants/v2"

	"github.com/cnfl/fantasy-cricket/external/notify"
	"github.com/cnfl/fantasy-cricket/internal/config"
	"github.com/cnfl/fantasy-cricket/internal/domain/history"
	"github.com/cnfl/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/cnfl/fantasy-cricket/internal/interfaces/httpapi"
	"github.com/cnfl/fantasy-cricket/internal/platform/cache"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

// NewHTTPServer wires the whole service and returns the server plus a
// cleanup func releasing the worker pool, the webhook publisher and the
// archive database.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	st := store.New(store.Seed())
	ids := idgen.NewRandomGenerator()

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// 1ns TTL: entries expire before any second read.
		cacheTTL = 1
	}
	leaderboardCache := cache.NewStore(cacheTTL)

	var notifier usecase.Notifier = usecase.NopNotifier()
	var publisher *notify.WebhookPublisher
	if cfg.WebhookEnabled {
		publisher = notify.NewWebhookPublisher(notify.WebhookConfig{
			EndpointURL:      cfg.WebhookEndpointURL,
			Token:            cfg.WebhookToken,
			Retries:          cfg.WebhookRetries,
			Timeout:          cfg.WebhookTimeout,
			BreakerThreshold: cfg.WebhookBreakerThreshold,
			BreakerCooldown:  cfg.WebhookBreakerCooldown,
		}, logger)
		notifier = publisher
	}

	var archiveDB *sqlx.DB
	var archive history.ArchiveRepository
	if cfg.ArchiveEnabled() {
		db, err := openArchiveDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open archive db: %w", err)
		}
		archiveDB = db
		archive = postgres.NewArchiveRepository(db)
	}

	pool, err := ants.NewPool(cfg.ArchiveWorkers)
	if err != nil {
		return nil, nil, fmt.Errorf("create archive worker pool: %w", err)
	}

	authSvc := usecase.NewAuthService(st, ids, logger)
	handler := httpapi.NewHandler(
		authSvc,
		usecase.NewEventService(st, ids, logger),
		usecase.NewTeamService(st, ids, logger),
		usecase.NewPlayerService(st, ids, logger),
		usecase.NewRosterService(st, ids, logger),
		usecase.NewScoringService(st, leaderboardCache),
		usecase.NewReplacementService(st, ids, logger, notifier),
		usecase.NewDashboardService(st),
		usecase.NewCommunicationService(st, ids, logger),
		usecase.NewHistoryService(st, archive, pool, ids, logger, notifier),
		usecase.NewSettingsService(st, logger),
		logger,
	)

	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() {
		pool.Release()
		if publisher != nil {
			publisher.Close()
		}
		if archiveDB != nil {
			if err := archiveDB.Close(); err != nil {
				logger.Error("close archive db", "error", err)
			}
		}
	}

	return server, cleanup, nil
}
