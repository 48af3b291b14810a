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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"airport-feedback/internal/config"
	"airport-feedback/internal/database"
	"airport-feedback/internal/handlers"
	"airport-feedback/internal/logger"
	"airport-feedback/internal/metrics"
	"airport-feedback/internal/notify"
	"airport-feedback/internal/repository"
	"airport-feedback/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env (ignore error in production, env vars set directly)
	_ = godotenv.Load()

	defer func() { _ = logger.Close() }()

	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger().Errorw("Invalid configuration", "error", err)
		return 1
	}
	logger.Configure(cfg.LogLevel, cfg.IsProduction())
	log := logger.GetLogger()

	// Connect to MongoDB
	client, db, err := database.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Errorw("Failed to connect to MongoDB", "error", err)
		return 1
	}
	defer func() {
		if err := database.Disconnect(client, 5*time.Second); err != nil {
			log.Warnw("Error disconnecting from MongoDB", "error", err)
		}
	}()

	feedbackRepo := repository.NewFeedbackRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
		log.Warnw("Failed to create feedback indexes", "error", err)
	}
	cancel()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(reg)

	var notifier notify.Notifier = notify.NewLogNotifier()
	if cfg.Notify.Enabled() {
		notifier = notify.NewResendNotifier(cfg.Notify.ResendAPIKey, cfg.Notify.From, cfg.Notify.To, reg)
		log.Infow("Email notifications enabled", "to", cfg.Notify.To)
	}

	feedbackService := service.NewFeedbackService(feedbackRepo, notifier, recorder)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	r := handlers.NewRouter(feedbackHandler, handlers.RouterConfig{
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("Airport feedback server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Errorw("Server failed", "error", err)
			return 1
		}
	case sig := <-stop:
		log.Infow("Shutting down server", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Shutdown error", "error", err)
		return 1
	}
	feedbackService.Wait()
	log.Info("Server stopped")
	return 0
}
