package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"unisell/internal/adapter/api"
	"unisell/internal/adapter/api/handler"
	apimiddleware "unisell/internal/adapter/api/middleware"
	"unisell/internal/adapter/api/router"
	"unisell/internal/domain/service"
	"unisell/internal/infrastructure/datastore"
	"unisell/internal/infrastructure/firebase"
	"unisell/internal/infrastructure/metrics"
	"unisell/internal/infrastructure/ratelimit"
	"unisell/internal/infrastructure/security"
	"unisell/internal/infrastructure/session"
	"unisell/internal/infrastructure/storage"
	"unisell/internal/infrastructure/websocket"
	"unisell/internal/usecase"
	"unisell/pkg/config"
	"unisell/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := datastore.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer store.Close(context.Background())

	revoked, err := revocationList(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	fileService, err := fileUploadService(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if fileService != nil {
		defer fileService.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultPolicies(int(cfg.AuthRateLimit)))
	limiter.StartCleanupRoutine(5*time.Minute, ctx.Done())

	if cfg.JWTSecret == "your-secret-key" && cfg.IsProduction() {
		log.Fatalf("JWT_SECRET must be set in production")
	}
	tokens := session.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	universityUseCase := usecase.NewUniversityUseCase(store.Universities)
	userUseCase := usecase.NewUserUseCase(store.Users, store.Universities, store.Items, hasher)
	itemUseCase := usecase.NewItemUseCase(store.Items, store.Users)
	bidUseCase := usecase.NewBidUseCase(store.Items, store.Users, appMetrics.WrapNotifier(wsManager))
	ratingUseCase := usecase.NewRatingUseCase(store.Users)
	authUseCase := usecase.NewAuthUseCase(userUseCase, store.Users, tokens, revoked)

	handler.Setup(authUseCase, universityUseCase, userUseCase, itemUseCase, bidUseCase, ratingUseCase)
	handler.SetupHealthHandler(cfg.StoreDriver)
	handler.SetupFileHandler(fileService)
	handler.SetupWebSocketHandler(wsManager, authUseCase, cfg.CORSOrigins)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.BodyLimit("8M"))
	e.Use(appMetrics.Middleware())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, authMiddleware, rateLimitMiddleware, appMetrics)

	go func() {
		logger.Info("Starting server on port %s (store: %s)", cfg.ServerPort, cfg.StoreDriver)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed: %v", err)
	}
}

// revocationList uses Redis when REDIS_URL is set so logouts survive restarts
// and are shared across instances.
func revocationList(ctx context.Context, cfg *config.Config) (service.TokenRevocationList, error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, logged out sessions are tracked in memory")
		return session.NewMemoryRevocationList(), nil
	}
	client, err := session.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return session.NewRedisRevocationList(client), nil
}

func fileUploadService(ctx context.Context, cfg *config.Config) (service.FileUploadService, error) {
	switch cfg.StorageProvider {
	case "gcs":
		opts, err := firebase.CredentialsOption(cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
	case "s3":
		return storage.NewS3Client(storage.S3Config{
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.StorageBucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
		})
	default:
		logger.Warn("STORAGE_PROVIDER is %q, uploads are disabled", cfg.StorageProvider)
		return nil, nil
	}
}
