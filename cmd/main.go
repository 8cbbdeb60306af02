package main

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

	"github.com/Dosada05/matchplay/calculators"
	"github.com/Dosada05/matchplay/config"
	"github.com/Dosada05/matchplay/db"
	"github.com/Dosada05/matchplay/handlers"
	"github.com/Dosada05/matchplay/realtime"
	"github.com/Dosada05/matchplay/repositories"
	api "github.com/Dosada05/matchplay/routes"
	"github.com/Dosada05/matchplay/services"
	"github.com/Dosada05/matchplay/storage"
	"github.com/Dosada05/matchplay/strategies"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Logo storage is optional: without R2 credentials the upload endpoint
	// answers 503 instead of failing startup.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 storage not configured, logo uploads disabled")
	}

	wsHub := realtime.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	rosterRepo := repositories.NewPostgresRosterRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	waitingRepo := repositories.NewPostgresWaitingListRepository(dbConn)
	logger.Info("Repositories initialized")

	calculatorRegistry := calculators.NewRegistry()
	calculatorRegistry.Register(calculators.NewStandardCalculator())
	calculatorRegistry.Register(calculators.NewThreePointCalculator())
	calculatorRegistry.Register(calculators.NewEloCalculator(0))
	calculatorRegistry.Register(calculators.NewRankingCalculator())
	calculatorRegistry.Register(calculators.NewPercentageCalculator())
	calculatorRegistry.Register(calculators.NewCustomWeightedCalculator(map[int]float64{1: 5, 2: 3, 3: 1}))

	strategyRegistry := strategies.NewRegistry()
	strategyRegistry.Register(strategies.NewRoundRobinStrategy(matchRepo))
	strategyRegistry.Register(strategies.NewKnockoutStrategy())
	strategyRegistry.Register(strategies.NewSwissStrategy(matchRepo, standingRepo))
	strategyRegistry.Register(strategies.NewFreeForAllStrategy())
	logger.Info("Strategy and calculator registries initialized")

	tournamentService := services.NewTournamentService(
		playerRepo,
		tournamentRepo,
		rosterRepo,
		roundRepo,
		standingRepo,
		strategyRegistry,
		calculatorRegistry,
		uploader,
		logger,
	)
	roundService := services.NewRoundService(
		tournamentRepo,
		rosterRepo,
		roundRepo,
		matchRepo,
		standingRepo,
		waitingRepo,
		strategyRegistry,
		calculatorRegistry,
		wsHub,
		logger,
	)
	logger.Info("Services initialized")

	authHandler := handlers.NewAuthHandler(cfg.AdminKeyHash, cfg.JWTSecretKey)
	playerHandler := handlers.NewPlayerHandler(tournamentService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	roundHandler := handlers.NewRoundHandler(roundService)
	matchHandler := handlers.NewMatchHandler(roundService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authHandler,
		playerHandler,
		tournamentHandler,
		roundHandler,
		matchHandler,
		webSocketHandler,
		cfg.JWTSecretKey,
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
