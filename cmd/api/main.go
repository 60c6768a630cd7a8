package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/srgjo27/sitterbook/internal/adapter/handler"
	"github.com/srgjo27/sitterbook/internal/adapter/messaging"
	"github.com/srgjo27/sitterbook/internal/adapter/repository/postgres"
	"github.com/srgjo27/sitterbook/internal/core/services"
	"github.com/srgjo27/sitterbook/internal/platform/cache"
	"github.com/srgjo27/sitterbook/internal/platform/config"
	"github.com/srgjo27/sitterbook/internal/platform/database"
	"github.com/srgjo27/sitterbook/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").WithError(err).Fatal("failed to load config")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to db after retries")
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher, err := messaging.NewPublisher(cfg.Messaging, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up event publisher")
	}
	defer publisher.Close()

	bookingRepo := postgres.NewBookingRepository(db)
	sitterRepo := postgres.NewSitterRepository(db)

	bookingService := services.NewBookingService(bookingRepo, sitterRepo, publisher, redisClient, log, services.Options{
		MaxCommitRetries: cfg.Booking.MaxCommitRetries,
		QuoteTTL:         cfg.Redis.QuoteTTL,
		PublishTimeout:   cfg.Booking.PublishTimeout,
		CleanupBatchSize: cfg.Worker.BatchSize,
	})

	router := handler.NewRouter(
		handler.NewBookingHandler(bookingService, log),
		handler.NewHealthHandler(db, redisClient),
		log,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		bookingService.RunBackgroundCleanup(gctx, cfg.Worker.Interval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error")
		os.Exit(1)
	}
	log.Info("server exiting")
}
