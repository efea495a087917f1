package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/api"
	"github.com/MassBabyGeek/StudyHub-backend/internal/config"
	"github.com/MassBabyGeek/StudyHub-backend/internal/database"
	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	"github.com/MassBabyGeek/StudyHub-backend/internal/handler"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	"github.com/MassBabyGeek/StudyHub-backend/internal/report"
	"github.com/MassBabyGeek/StudyHub-backend/internal/services"
	"github.com/MassBabyGeek/StudyHub-backend/internal/voting"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	pool, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.CreateSchema(context.Background(), pool); err != nil {
		logger.Error("Schema creation failed: %v", err)
		os.Exit(1)
	}
	store := database.NewStore(pool)

	// Vote guard: Redis si configuré, sinon verrou en mémoire (une seule instance)
	var guard voting.Guard = voting.NewMemoryGuard()
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisGuard, err := voting.NewRedisGuardFromURL(ctx, cfg.RedisURL, cfg.VoteLockTTL)
		cancel()
		if err != nil {
			logger.Warning("Redis unavailable, falling back to in-memory vote guard: %v", err)
		} else {
			defer redisGuard.Close()
			guard = redisGuard
			logger.Success("Connected to Redis (vote guard)")
		}
	}

	games := gamification.NewService(store, store)
	votes := voting.NewService(store, games, store, guard)

	deps := handler.Deps{
		Users:           store,
		Sessions:        store,
		Groups:          store,
		Questions:       store,
		Notifications:   store,
		Gamification:    games,
		Votes:           votes,
		SessionDuration: cfg.SessionDuration,
	}

	if media, err := services.NewCloudinaryService(cfg); err != nil {
		logger.Warning("Image uploads disabled: %v", err)
	} else {
		deps.Media = media
	}

	pdf := report.NewPDFRenderer(cfg.ReportTimeout)
	if pdf.Available() {
		deps.PDF = pdf
	} else {
		logger.Warning("Chromium not found, progress reports are served as HTML")
	}

	router := api.SetupRouter(handler.New(deps), store)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Success("Server starting on port %s (%s)", cfg.Port, cfg.URL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error: %v", err)
	}

	// notifications et attributions de points encore en cours
	votes.Wait()
	games.Wait()
	logger.Success("Server stopped")
}
