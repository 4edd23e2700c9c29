package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"cfb-catalog/external/cfbd"
	"cfb-catalog/internal/config"
	cacherepo "cfb-catalog/internal/infrastructure/repository/cache"
	"cfb-catalog/internal/infrastructure/repository/postgres"
	"cfb-catalog/internal/interfaces/httpapi"
	basecache "cfb-catalog/internal/platform/cache"
	idgen "cfb-catalog/internal/platform/id"
	"cfb-catalog/internal/platform/logging"
	"cfb-catalog/internal/platform/resilience"
	"cfb-catalog/internal/usecase"
)

// Search traffic is read-heavy against a catalog that only changes on
// ingest, so a short TTL keeps results fresh without hitting Postgres
// for every repeated query.
const searchCacheTTL = 30 * time.Second

// NewIngestService builds the ingest pipeline without the HTTP surface,
// for one-shot runs from cmd/ingest.
func NewIngestService(cfg config.Config, logger *logging.Logger) (*usecase.IngestService, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	schema := postgres.NewSchema(db)
	provider := newCatalogProvider(cfg, logger)

	return usecase.NewIngestService(
		provider,
		postgres.NewPlayerRepository(db, schema),
		postgres.NewTeamRepository(db, schema),
		cfg.CFBDAPIKey,
		cfg.DBURL,
		logger,
	), nil
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	schema := postgres.NewSchema(db)
	playerRepo := cacherepo.NewPlayerRepository(
		postgres.NewPlayerRepository(db, schema),
		basecache.NewStore(searchCacheTTL),
	)
	teamRepo := postgres.NewTeamRepository(db, schema)
	userRepo := postgres.NewUserRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)

	ids := idgen.NewRandomGenerator()
	zlogger := logging.Default()

	provider := newCatalogProvider(cfg, zlogger)
	searchSvc := usecase.NewSearchService(playerRepo)
	authSvc := usecase.NewAuthService(userRepo, ids)
	leagueSvc := usecase.NewLeagueService(leagueRepo, ids, logger)
	ingestSvc := usecase.NewIngestService(provider, playerRepo, teamRepo, cfg.CFBDAPIKey, cfg.DBURL, zlogger)

	handler := httpapi.NewHandler(searchSvc, authSvc, leagueSvc, ingestSvc, cfg.CFBDSeason, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL must be set")
	}

	db, err := sqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", dbNameFromURL(cfg.DBURL), err)
	}

	return db, nil
}

func newCatalogProvider(cfg config.Config, logger *logging.Logger) *cfbd.Client {
	return cfbd.NewClient(cfbd.ClientConfig{
		BaseURL:  cfg.CFBDBaseURL,
		APIKey:   cfg.CFBDAPIKey,
		MaxPages: cfg.CFBDMaxPages,
		Timeout:  cfg.CFBDTimeout,
		Logger:   logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CFBDCircuitEnabled,
			FailureThreshold: cfg.CFBDCircuitFailureCount,
			OpenTimeout:      cfg.CFBDCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CFBDCircuitHalfOpenMax,
		},
	})
}
