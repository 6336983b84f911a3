package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "alloydb-shop/api/docs"
	"alloydb-shop/api/internal/cache"
	"alloydb-shop/api/internal/config"
	"alloydb-shop/api/internal/handler"
	"alloydb-shop/api/internal/logger"
	"alloydb-shop/api/internal/metrics"
	"alloydb-shop/api/internal/repository"
	"alloydb-shop/api/internal/service"
	"alloydb-shop/api/internal/service/gemini"
	"alloydb-shop/api/internal/service/publisher"
	"alloydb-shop/api/internal/service/sentiment"
)

const shutdownTimeout = 10 * time.Second

type closingPublisher interface {
	sentiment.Publisher
	Close() error
}

//	@title			AlloyDB Shop API
//	@version		1.0
//	@description	CRUD over users, items, orders, order items and ratings, with order history, rating insights and negative rating alerts.

//	@BasePath	/api

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
		zlog.Sync()
		os.Exit(1)
	}
	zlog.Info("server exiting")
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		return err
	}
	zlog.Info("connected to database")

	// 3. Setup Logic
	// Logic - Sentiment
	aiClient := gemini.NewClient(gemini.Config{
		APIURL:  cfg.Gemini.APIURL,
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if cfg.Gemini.APIKey == "" {
		zlog.Warn("GEMINI_API_KEY is not set, ai features will fail")
	}

	var pub closingPublisher
	if cfg.PubSub.ProjectID != "" {
		pub, err = publisher.NewPubSub(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic)
		if err != nil {
			return err
		}
	} else {
		zlog.Warn("PUBSUB_PROJECT_ID is not set, negative ratings will only be logged")
		pub = publisher.NewLog(zlog, cfg.PubSub.Topic)
	}
	defer pub.Close()

	m := metrics.New()
	pipeline := sentiment.New(aiClient, pub, zlog, sentiment.WithRecorder(m))

	// Logic - Insights
	var complaintCache cache.Cache = cache.NewMemory()
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return err
		}
		defer redisCache.Close()
		complaintCache = redisCache
	}
	insights := service.NewInsightService(repository.NewInsightRepository(dbPool), aiClient, complaintCache, cfg.Cache.TTL)

	h := handler.NewHandler(handler.Deps{
		Users:        repository.NewUserRepository(dbPool),
		Items:        repository.NewItemRepository(dbPool),
		Orders:       repository.NewOrderRepository(dbPool),
		OrderItems:   repository.NewOrderItemRepository(dbPool),
		Ratings:      service.NewRatingService(repository.NewRatingRepository(dbPool), pipeline),
		Insights:     insights,
		Logger:       zlog,
		Metrics:      m,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	// 4. Setup Server
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Run Server with Graceful Shutdown
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("starting server", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zlog.Info("shutting down server")

		// Create a deadline to wait for.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// Let in-flight sentiment runs finish before the publisher closes.
		if err := pipeline.Wait(shutdownCtx); err != nil {
			zlog.Warn("sentiment runs still in flight at shutdown", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
