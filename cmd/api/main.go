package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/gambler-service/internal/api/http"
	"github.com/spec-kit/gambler-service/internal/api/http/handlers"
	"github.com/spec-kit/gambler-service/internal/auth"
	"github.com/spec-kit/gambler-service/internal/config"
	"github.com/spec-kit/gambler-service/internal/events"
	"github.com/spec-kit/gambler-service/internal/observability"
	"github.com/spec-kit/gambler-service/internal/persistence"
	"github.com/spec-kit/gambler-service/internal/repository"
	"github.com/spec-kit/gambler-service/internal/service"
	"github.com/spec-kit/gambler-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	secret, err := auth.NewEnvSecretProvider(cfg.Auth.SecretEnv).Secret()
	if err != nil {
		logger.Fatal("jwt secret unavailable", zap.String("env", cfg.Auth.SecretEnv), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	codecOpts := []auth.CodecOption{auth.WithLeeway(cfg.Auth.Leeway())}
	if cfg.Auth.Issuer != "" {
		codecOpts = append(codecOpts, auth.WithIssuer(cfg.Auth.Issuer))
	}
	codec := auth.NewCodec(auth.StaticSecret(secret), auth.SystemClock{}, codecOpts...)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	userRepo := repository.NewCachedUserRepository(
		repository.NewUserRepository(pg.PoolHandle()),
		redis.Client,
		cfg.Redis.ProfileCacheTTL(),
		logger,
	)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		Issuer:     auth.NewIssuer(codec),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	deps := map[string]handlers.Pinger{"postgres": pg}
	if redis.Client != nil {
		deps["redis"] = redis
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps),
		Auth:       handlers.NewAuthHandler(authService),
		Users:      handlers.NewUsersHandler(authService),
		JWTGuard:   auth.NewGuard("jwt", codec, auth.JWTGuardFromClaims, logger),
		TokenGuard: auth.NewGuard("token", codec, auth.TokenSubjectFromClaims, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
