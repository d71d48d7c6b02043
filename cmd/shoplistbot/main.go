package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/m3rciful/shoplistbot/buildinfo"
	"github.com/m3rciful/shoplistbot/config"
	"github.com/m3rciful/shoplistbot/database"
	"github.com/m3rciful/shoplistbot/logger"
	"github.com/m3rciful/shoplistbot/service"
	"github.com/m3rciful/shoplistbot/store"
	"github.com/m3rciful/shoplistbot/telegram"

	"log/slog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("shoplistbot: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments rely on the environment.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	doc := store.LoadOrDefault(ctx, st)

	var svc *service.Service
	startedAt := time.Now()

	return telegram.RunTelegram(ctx, telegram.RunOptions{
		Config:      cfg,
		Middlewares: telegram.DefaultMiddlewares(cfg, nil),
		Setup: func(ctx context.Context, rt telegram.Runtime) ([]telegram.Route, error) {
			msgr := telegram.NewBotMessenger(rt.Bot, rt.Dispatcher)
			svc = service.New(doc, msgr, st)
			return telegram.Routes(svc), nil
		},
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.String("version", buildinfo.Version),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			logger.L.With("component", "app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			if svc != nil {
				svc.SaveNow(ctx)
			}
			return nil
		},
	})
}

// openStore builds the configured document store and a cleanup function.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := database.Connect(cfg.Storage.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("database initialization failed: %w", err)
		}
		if err := database.RunMigrations(cfg.Storage.Postgres); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrations failed: %w", err)
		}
		return store.NewPostgres(db), func() { _ = db.Close() }, nil
	default:
		return store.NewFile(cfg.Storage.Dir, cfg.Storage.File), func() {}, nil
	}
}
