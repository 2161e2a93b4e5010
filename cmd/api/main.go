package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/embedtok/embedtok/internal/api/handler"
	"github.com/embedtok/embedtok/internal/api/middleware"
	"github.com/embedtok/embedtok/internal/config"
	"github.com/embedtok/embedtok/internal/infrastructure/cache"
	"github.com/embedtok/embedtok/internal/infrastructure/tikwm"
	"github.com/embedtok/embedtok/internal/resolver"
	"github.com/embedtok/embedtok/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	embedCache := cache.NewRedisEmbedCache(redisClient)

	writeback := usecase.NewWritebackQueue(embedCache, usecase.WritebackQueueConfig{
		QueueSize:    cfg.Embed.WritebackQueueSize,
		StoreTimeout: usecase.DefaultWritebackQueueConfig().StoreTimeout,
		CacheTTL:     cfg.Embed.CacheTTL,
	})
	defer writeback.Close()

	provider := tikwm.NewClient(tikwm.ClientConfig{
		APIURL:     cfg.Upstream.APIURL,
		CDNBaseURL: cfg.Upstream.CDNBaseURL,
		Timeout:    cfg.Upstream.Timeout,
	})

	embedSvc := usecase.NewEmbedService(provider, embedCache, writeback)

	urlResolver := resolver.New(resolver.Config{
		BaseHost: cfg.Embed.ShortLinkBaseHost,
		Timeout:  cfg.Embed.ResolveTimeout,
	})

	embedHandler := handler.NewEmbedHandler(embedSvc, urlResolver, handler.EmbedHandlerConfig{
		FallbackURL:   cfg.Embed.FallbackURL,
		SourceBaseURL: cfg.Embed.SourceBaseURL,
	})

	r := setupRouter(logger, embedHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(logger *slog.Logger, embedHandler *handler.EmbedHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/owoembed", handler.Oembed)

	// Canonical post paths, their /api/ variants and short-link paths all
	// land on the embed handler.
	r.Get("/*", embedHandler.Serve)

	return r
}
