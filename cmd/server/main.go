package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AnshRaj112/natpac-travel-backend/internal/cache"
	"github.com/AnshRaj112/natpac-travel-backend/internal/config"
	"github.com/AnshRaj112/natpac-travel-backend/internal/database"
	"github.com/AnshRaj112/natpac-travel-backend/internal/handlers"
	"github.com/AnshRaj112/natpac-travel-backend/internal/middleware"
	"github.com/AnshRaj112/natpac-travel-backend/internal/routes"
	"github.com/AnshRaj112/natpac-travel-backend/internal/services"
	"github.com/AnshRaj112/natpac-travel-backend/internal/store"
	"github.com/AnshRaj112/natpac-travel-backend/internal/telemetry"
	"github.com/AnshRaj112/natpac-travel-backend/internal/travel"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found")
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	shutdownTracing := telemetry.Setup(ctx, "natpac-travel-backend", cfg.OTelEndpoint, cfg.OTelInsecure, logger)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	if cfg.JWTSecret == "your-jwt-secret-key" {
		logger.Warn("JWT_SECRET not set, using the development default")
	}

	// MongoDB connects lazily; a failed first attempt leaves the server in
	// fallback mode instead of exiting.
	logger.Info("connecting to MongoDB", zap.String("uri", cfg.MaskedMongoURI()))
	mongo := database.NewMongo(cfg, logger)
	if err := mongo.Ping(ctx); err != nil {
		logger.Warn("MongoDB unavailable at startup, serving in fallback mode", zap.Error(err))
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongo.Disconnect(dctx); err != nil {
			logger.Warn("MongoDB disconnect", zap.Error(err))
		}
	}()

	var (
		searchCache cache.Cache = cache.Nop{}
		statusCache cache.Cache
		window      *middleware.WindowLimiter
	)
	rdb, err := database.ConnectRedis(ctx, cfg.RedisURI, logger)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	switch {
	case err != nil && rdb != nil:
		// Configured but down: keep the client for /api/status probes only.
		logger.Warn("Redis unavailable, travel search cache disabled", zap.Error(err))
		statusCache = cache.NewRedis(rdb)
	case err != nil:
		logger.Warn("invalid REDIS_URI, travel search cache disabled", zap.Error(err))
	case rdb != nil:
		searchCache = cache.NewRedis(rdb)
		statusCache = searchCache
		window = middleware.NewWindowLimiter(rdb, middleware.RateLimitWindow, middleware.RateLimitMaxRequests, logger)
	}

	gateway := travel.New(cfg, searchCache, logger)
	if !cfg.TravelAPIConfigured() {
		logger.Warn("Amadeus credentials not set, travel searches will use sample data")
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	primary := store.NewMongoStore(mongo)

	h := handlers.New(handlers.Deps{
		Auth:     services.NewAuthService(primary, store.NewFallbackStore(), tokens, logger),
		Trips:    services.NewTripService(primary),
		Bookings: services.NewBookingService(primary),
		Travel:   gateway,
		Database: mongo,
		Cache:    statusCache,
		Logger:   logger,
	})

	authLimiter := middleware.NewAuthLimiter()
	globalLimiter := middleware.NewGlobalLimiter()
	router := routes.NewRouter(routes.Options{
		Handler:        h,
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
		AuthLimiter:    authLimiter,
		GlobalLimiter:  globalLimiter,
		WindowLimiter:  window,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, "http.server"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		authLimiter.Run(gctx)
		return nil
	})
	g.Go(func() error {
		globalLimiter.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("server listening",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Environment),
			zap.Bool("production", cfg.IsProduction()),
			zap.Strings("allowedOrigins", cfg.AllowedOrigins),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
