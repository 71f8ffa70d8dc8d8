package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/growth-tracker/internal/config"
	"github.com/aliskhannn/growth-tracker/internal/delivery/rest"
	"github.com/aliskhannn/growth-tracker/internal/delivery/telegram"
	"github.com/aliskhannn/growth-tracker/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/growth-tracker/internal/infra/postgres/repository"
	"github.com/aliskhannn/growth-tracker/internal/infra/sqlite"
	sqliterepo "github.com/aliskhannn/growth-tracker/internal/infra/sqlite/repository"
	"github.com/aliskhannn/growth-tracker/internal/logger"
	"github.com/aliskhannn/growth-tracker/internal/repository"
	"github.com/aliskhannn/growth-tracker/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, zapLogger)
	stop()

	if err != nil {
		zapLogger.Error("tracker stopped with error", zap.Error(err))
	}
	_ = zapLogger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run wires the application and blocks until ctx is cancelled or the HTTP
// server fails. Every resource it opens is released before it returns.
func run(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.DB.Driver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			zapLogger.Warn("failed to close store", zap.Error(err))
		}
	}()

	// Initialize services.
	userService := service.NewUserService(store)
	progressService := service.NewProgressService(store)
	taskService := service.NewTaskService(store)
	leaderboardService := service.NewLeaderboardService(
		store.Repositories().Leaderboard,
		cfg.Leaderboard.DefaultLimit,
		cfg.Leaderboard.MaxLimit,
	)
	streakService := service.NewStreakService(store.Repositories().Streaks, cfg.Streak.SweepSchedule, zapLogger)

	hub := rest.NewHub(zapLogger)
	publisher := service.NewPublisher(zapLogger, hub)

	var handler *telegram.Handler
	if cfg.Telegram.Token != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}
		bot.Debug = cfg.Telegram.Debug
		zapLogger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

		publisher.Register(telegram.NewNotifier(bot, userService))
		handler = telegram.NewHandler(bot, zapLogger, userService, progressService, leaderboardService)
	} else {
		zapLogger.Info("telegram token not set, bot disabled")
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.HTTP.Addr, err)
	}

	server := &http.Server{
		Handler: rest.NewServer(
			zapLogger,
			userService,
			progressService,
			taskService,
			leaderboardService,
			publisher,
			hub,
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := streakService.Start(ctx); err != nil {
			zapLogger.Error("streak sweeper failed", zap.Error(err))
		}
	}()

	if handler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zapLogger.Error("telegram handler failed", zap.Error(err))
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		zapLogger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		zapLogger.Info("shutdown signal received")
	case err := <-serveErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Warn("http server shutdown", zap.Error(err))
	}

	cancel()
	wg.Wait()
	publisher.Wait()

	return runErr
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqliterepo.NewStore(db), nil

	default:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, err
		}

		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return pgrepo.NewStore(pool), nil
	}
}
