package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/auth"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/cache"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/config"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/database"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/handler"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/logger"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/repository"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/server"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/service"
)

const startupTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, notes, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	for _, note := range notes {
		zl.Info(note)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Initialize database
	db, err := database.NewPostgresDB(ctx, cfg.PostgresURL, cfg.PostgresSSL)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	views := newViewCache(ctx, cfg, zl)

	sessions, err := auth.NewSessionCodec(cfg.AuthSecret, cfg.SessionTTL)
	if err != nil {
		zl.Fatal("failed to create session codec", zap.Error(err))
	}

	// Repositories and services
	invoiceRepo := repository.NewPostgresInvoiceRepository(db.Pool())
	userRepo := repository.NewPostgresUserRepository(db.Pool())

	invoiceService := service.NewInvoiceService(invoiceRepo, views, zl.Named("invoice"))
	authService := service.NewAuthService(sessions, service.NewCredentialsProvider(userRepo))

	appServer := server.NewServer(cfg, zl, sessions, server.Handlers{
		Invoice: handler.NewInvoiceHandler(invoiceService, zl.Named("http")),
		Auth:    handler.NewAuthHandler(authService, sessions, cfg.CookieSecure, zl.Named("http")),
	})
	appServer.OnShutdown(db.Close)
	if closer, ok := views.(interface{ Close() error }); ok {
		appServer.OnShutdown(func() { _ = closer.Close() })
	}

	// Start server (blocking call)
	if err := appServer.Start(); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}

// newViewCache connects to Redis when configured and falls back to the
// in-process cache otherwise
func newViewCache(ctx context.Context, cfg *config.Config, zl *zap.Logger) cache.ViewCache {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(cfg.ViewCacheTTL)
	}

	redisCache := cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.ViewCacheTTL)
	if err := redisCache.Ping(ctx); err != nil {
		zl.Warn("redis unavailable, using in-process view cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = redisCache.Close()
		return cache.NewMemoryCache(cfg.ViewCacheTTL)
	}
	return redisCache
}
