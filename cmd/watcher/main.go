package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arenawatch/position-watcher/internal/config"
	"github.com/arenawatch/position-watcher/internal/feed"
	"github.com/arenawatch/position-watcher/internal/logger"
	"github.com/arenawatch/position-watcher/internal/notify"
	"github.com/arenawatch/position-watcher/internal/server"
	"github.com/arenawatch/position-watcher/internal/store"
	"github.com/arenawatch/position-watcher/internal/watcher"
	"github.com/joho/godotenv"
)

const _cfgFilePath = "./configs/watcher.yaml"

func main() {
	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Info)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if err := godotenv.Load(); err != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadWatcherConfig(cmp.Or(os.Getenv("WATCHER_CONFIG"), _cfgFilePath))
	if err != nil {
		zapLogger.Fatalf("%s: can't load watcher cfg", err)
	}

	seenStore, err := newStore(ctx, cfg.Store)
	if err != nil {
		zapLogger.Fatalf("%s: can't init store", err)
	}

	seen, err := seenStore.Load(ctx)
	if err != nil {
		zapLogger.Warnf("%s: can't load seen positions, starting with empty set", err)
	}
	zapLogger.Infof("loaded %d seen positions", len(seen))

	notifier, err := newNotifier(cfg.Notify, zapLogger)
	if err != nil {
		zapLogger.Fatalf("%s: can't init notifier", err)
	}

	fetcher := feed.NewFetcher(cfg.API, zapLogger)
	if err := fetcher.Ping(ctx); err != nil {
		zapLogger.Warnf("%s: upstream connectivity check failed", err)
	}

	detector := watcher.NewDetector(seenStore, notifier, seen, zapLogger)
	w := watcher.New(fetcher, detector, cfg.Watch, zapLogger)

	if cfg.Server.Port != "" {
		srv := server.NewHTTPServer(ctx, cfg.Server.Port, server.NewMux(w.Status))
		go func() {
			if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLogger.Errorf("%s: status server stopped", err)
			}
		}()
		zapLogger.Infof("status server listening on :%s", cfg.Server.Port)
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Fatalf("%s: watcher stopped", err)
	}
	zapLogger.Infof("watcher stopped")
}

func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.Postgres:
		db, err := store.NewDB(store.NewPostgresConfigFromEnv().Setup())
		if err != nil {
			return nil, fmt.Errorf("%w: can't connect to postgres", err)
		}
		return store.NewPostgresStore(ctx, db)
	default:
		return store.NewFileStore(cfg.Path), nil
	}
}

func newNotifier(cfg config.NotifyConfig, zapLogger logger.Logger) (notify.Notifier, error) {
	switch cfg.Kind {
	case config.Discord:
		return notify.NewDiscordNotifier(cfg.WebhookURL, zapLogger), nil
	case config.Log:
		return notify.NewLogNotifier(zapLogger), nil
	default:
		return nil, fmt.Errorf("unknown notifier kind %q", cfg.Kind)
	}
}
