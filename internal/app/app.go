package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fplhq/companion/external/fplapi"
	"github.com/fplhq/companion/external/statsapi"
	"github.com/fplhq/companion/internal/config"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/interfaces/httpapi"
	"github.com/fplhq/companion/internal/platform/cache"
	"github.com/fplhq/companion/internal/platform/logging"
	"github.com/fplhq/companion/internal/platform/resilience"
	"github.com/fplhq/companion/internal/usecase"
)

// Application bundles the HTTP server with the background poller so main
// can run and stop both.
type Application struct {
	Server *http.Server
	Poller *usecase.PollerService
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store := cache.NewStore(cfg.CacheTTLDefault)
	ttls := cacheTTLs(cfg)

	fplClient := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		UserAgent:  cfg.FPLUserAgent,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.BreakerSettings{
			Enabled:     cfg.FPLCircuitEnabled,
			MaxFailures: cfg.FPLCircuitFailureCount,
			Cooldown:    cfg.FPLCircuitOpenTimeout,
			MaxProbes:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	var stats usecase.StatsGateway
	if cfg.StatsEnabled {
		stats = statsapi.NewClient(statsapi.ClientConfig{
			BaseURL: cfg.StatsBaseURL,
			Timeout: cfg.StatsTimeout,
			Logger:  logger,
		})
	}

	snapshots, err := usecase.NewSnapshotService(fplClient, store, ttls, logger)
	if err != nil {
		return nil, fmt.Errorf("build snapshot service: %w", err)
	}

	rules := scoring.Rules{
		MinDefenders:   cfg.FormationMinDefenders,
		MinMidfielders: cfg.FormationMinMidfield,
		MinForwards:    cfg.FormationMinForwards,
		MaxDefenders:   cfg.FormationMaxDefenders,
		MaxMidfielders: cfg.FormationMaxMidfield,
		MaxForwards:    cfg.FormationMaxForwards,
	}

	liveScore, err := usecase.NewLiveScoreService(snapshots, rules, logger)
	if err != nil {
		return nil, fmt.Errorf("build live score service: %w", err)
	}
	breakdown, err := usecase.NewBreakdownService(snapshots, logger)
	if err != nil {
		return nil, fmt.Errorf("build breakdown service: %w", err)
	}
	bonus, err := usecase.NewBonusService(snapshots, logger)
	if err != nil {
		return nil, fmt.Errorf("build bonus service: %w", err)
	}
	recommendations, err := usecase.NewRecommendationService(snapshots, logger)
	if err != nil {
		return nil, fmt.Errorf("build recommendation service: %w", err)
	}
	dashboard, err := usecase.NewDashboardService(snapshots, liveScore, stats, logger)
	if err != nil {
		return nil, fmt.Errorf("build dashboard service: %w", err)
	}
	poller, err := usecase.NewPollerService(snapshots, liveScore, usecase.PollerConfig{
		Interval:       cfg.PollLiveInterval,
		WatchedEntries: cfg.PollWatchedEntries,
		MaxWorkers:     cfg.PollMaxWorkers,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build poller service: %w", err)
	}

	handler := httpapi.NewHandler(snapshots, liveScore, breakdown, bonus, recommendations, dashboard, logger)
	proxy := httpapi.NewProxyHandler(fplClient, store, ttls, logger)
	router := httpapi.NewRouter(handler, proxy, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Application{Server: server, Poller: poller}, nil
}

// cacheTTLs maps the configured tiers onto the snapshot cache. With caching
// disabled every tier collapses to an immediately stale entry, which keeps
// the singleflight collapse but forgoes reuse.
func cacheTTLs(cfg config.Config) usecase.CacheTTLs {
	if !cfg.CacheEnabled {
		return usecase.CacheTTLs{
			Bootstrap:  time.Nanosecond,
			Fixtures:   time.Nanosecond,
			Live:       time.Nanosecond,
			Historical: time.Nanosecond,
			Default:    time.Nanosecond,
		}
	}

	return usecase.CacheTTLs{
		Bootstrap:  cfg.CacheTTLBootstrap,
		Fixtures:   cfg.CacheTTLFixtures,
		Live:       cfg.CacheTTLLive,
		Historical: cfg.CacheTTLPicks,
		Default:    cfg.CacheTTLDefault,
	}
}
