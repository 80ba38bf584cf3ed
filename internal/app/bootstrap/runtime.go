package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cacheadapter "github.com/openlance/openlance/internal/adapters/cache"
	eventadapter "github.com/openlance/openlance/internal/adapters/events"
	httpadapter "github.com/openlance/openlance/internal/adapters/http"
	"github.com/openlance/openlance/internal/adapters/postgres"
	"github.com/openlance/openlance/internal/adapters/security"
	"github.com/openlance/openlance/internal/application"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping service", "service_id", cfg.ServiceID, "http_port", cfg.HTTPPort)

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := pool.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	tokenIssuer, err := security.NewJWTIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init jwt issuer: %w", err)
	}

	accounts := postgres.NewAccountRepository(pool)
	profiles := postgres.NewProfileRepository(pool)
	projects := postgres.NewProjectRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	revocations := cacheadapter.NewRedisRevocationStore(redisClient)
	rateLimits := cacheadapter.NewRedisRateLimitStore(redisClient)

	svc := application.New(
		accounts,
		profiles,
		projects,
		revocations,
		security.NewBcryptHasher(cfg.BcryptCost),
		tokenIssuer,
		logger,
	)

	handler := httpadapter.NewHandler(svc)
	limiter := httpadapter.NewRateLimiter(rateLimits)
	router := httpadapter.NewRouter(handler, limiter, httpadapter.RateLimits{
		API:    httpadapter.RateLimit{Limit: cfg.APIRateLimit, Window: cfg.APIRateWindow},
		Auth:   httpadapter.RateLimit{Limit: cfg.AuthRateLimit, Window: cfg.AuthRateWindow},
		Search: httpadapter.RateLimit{Limit: cfg.SearchRateLimit, Window: cfg.SearchRateWindow},
		Upload: httpadapter.RateLimit{Limit: cfg.UploadRateLimit, Window: cfg.UploadRateWindow},
	}, cfg.AllowedOrigins)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	outbox := eventadapter.NewOutboxWorker(
		logger,
		outboxRepo,
		eventadapter.NewLoggingPublisher(logger),
		cfg.OutboxPollInterval,
		cfg.OutboxBatchSize,
	)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		outbox:     outbox,
		cleanupFn: func(ctx context.Context) {
			_ = redisClient.Close()
			_ = sqlDB.Close()
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("outbox worker started")
	err := r.outbox.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cleanupFn(shutdownCtx)
	return nil
}
