package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/pitchline/pitchline-api/internal/authz"
	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/config"
	httptransport "github.com/pitchline/pitchline-api/internal/http"
	"github.com/pitchline/pitchline-api/internal/http/handler"
	"github.com/pitchline/pitchline-api/internal/http/middleware"
	"github.com/pitchline/pitchline-api/internal/identity"
	"github.com/pitchline/pitchline-api/internal/repository"
	"github.com/pitchline/pitchline-api/internal/server"
	"github.com/pitchline/pitchline-api/internal/service"
	"github.com/pitchline/pitchline-api/internal/telemetry"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newPGXPool,
			newCaches,
			newInvalidator,
			newTenantRepository,
			newMembershipRepository,
			newPlayerRepository,
			newRequestRepository,
			newTrialRepository,
			newEventRepository,
			newStatsRepository,
			newIdentityProvider,
			newResolver,
			newValidator,
			newGate,
			newPlayerService,
			newScoutingService,
			newTrialService,
			newEventService,
			newDashboardService,
			handler.NewPlayerHandler,
			handler.NewScoutingHandler,
			handler.NewTrialHandler,
			handler.NewEventHandler,
			handler.NewDashboardHandler,
			newRateLimiter,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, startHTTPServer),
	)

	app.Run()
}

// caches bundles the two independently configured cache instances:
// short-TTL request payloads and longer-TTL dashboard aggregates.
type caches struct {
	requests *cache.Cache
	stats    *cache.Cache
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newCaches(cfg config.Config) *caches {
	return &caches{
		requests: cache.New(cfg.RequestCacheTTL),
		stats:    cache.New(cfg.StatsCacheTTL),
	}
}

func newInvalidator(c *caches, logger *zap.Logger) *cache.Invalidator {
	return cache.NewInvalidator(c.requests, c.stats, logger)
}

func newTenantRepository(pool *pgxpool.Pool) repository.TenantRepository {
	return repository.NewPostgresTenantRepo(pool)
}

func newMembershipRepository(pool *pgxpool.Pool) repository.MembershipRepository {
	return repository.NewPostgresMembershipRepo(pool)
}

func newPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return repository.NewPostgresPlayerRepo(pool)
}

func newRequestRepository(pool *pgxpool.Pool) repository.RequestRepository {
	return repository.NewPostgresRequestRepo(pool)
}

func newTrialRepository(pool *pgxpool.Pool) repository.TrialRepository {
	return repository.NewPostgresTrialRepo(pool)
}

func newEventRepository(pool *pgxpool.Pool) repository.EventRepository {
	return repository.NewPostgresEventRepo(pool)
}

func newStatsRepository(pool *pgxpool.Pool) repository.StatsRepository {
	return repository.NewPostgresStatsRepo(pool)
}

func newIdentityProvider(cfg config.Config) identity.Provider {
	return identity.NewJWTProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer)
}

func newResolver(tenants repository.TenantRepository, c *caches) *authz.Resolver {
	return authz.NewResolver(tenants, c.requests)
}

func newValidator(memberships repository.MembershipRepository, c *caches) *authz.Validator {
	return authz.NewValidator(memberships, c.requests)
}

func newGate(resolver *authz.Resolver, validator *authz.Validator, memberships repository.MembershipRepository, logger *zap.Logger) *authz.Gate {
	return authz.NewGate(resolver, validator, memberships, logger)
}

func newPlayerService(players repository.PlayerRepository, c *caches, invalidator *cache.Invalidator, logger *zap.Logger) *service.PlayerService {
	return service.NewPlayerService(players, c.requests, invalidator, logger)
}

func newScoutingService(requests repository.RequestRepository, c *caches, invalidator *cache.Invalidator, logger *zap.Logger) *service.ScoutingService {
	return service.NewScoutingService(requests, c.requests, invalidator, logger)
}

func newTrialService(
	trials repository.TrialRepository,
	events repository.EventRepository,
	players repository.PlayerRepository,
	c *caches,
	invalidator *cache.Invalidator,
	logger *zap.Logger,
) *service.TrialService {
	return service.NewTrialService(trials, events, players, c.requests, invalidator, logger)
}

func newEventService(events repository.EventRepository, c *caches, invalidator *cache.Invalidator, logger *zap.Logger) *service.EventService {
	return service.NewEventService(events, c.requests, invalidator, logger)
}

func newDashboardService(stats repository.StatsRepository, c *caches, logger *zap.Logger) *service.DashboardService {
	return service.NewDashboardService(stats, c.stats, logger)
}

func newRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimitRPM)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
