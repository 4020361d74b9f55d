package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/mpetrov/news-backend/config"
	"github.com/mpetrov/news-backend/internal/app"
	"github.com/mpetrov/news-backend/internal/cache"
	"github.com/mpetrov/news-backend/internal/db"
)

var (
	flConfig = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug  = flag.Bool("debug", false, "enable debug mode")
	cfg      config.Config
	lg       *slog.Logger
)

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	_, err := toml.DecodeFile(*flConfig, &cfg)
	if err != nil {
		exitOnError(err)
	}
	cfg.Defaults()

	dbConnect := pg.Connect(&cfg.Database)
	if *flDebug {
		dbConnect.AddQueryHook(db.NewQueryHook(lg))
	}
	if err := dbConnect.Ping(context.Background()); err != nil {
		dbConnect.Close()
		exitOnError(err)
	}

	responseCache, err := newCache()
	if err != nil {
		dbConnect.Close()
		exitOnError(err)
	}

	service, err := app.New(&cfg, dbConnect, responseCache, lg)
	if err != nil {
		dbConnect.Close()
		exitOnError(err)
	}
	ctx := context.Background()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx, cfg.App.Port)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

// newCache connects to Redis when configured and falls back to the
// in-process cache otherwise.
func newCache() (cache.Cache, error) {
	if cfg.Cache.RedisURL == "" {
		lg.Info("no Redis URL configured, using in-memory response cache")
		return cache.NewMemory(), nil
	}

	return cache.NewRedisCache(cfg.Cache.RedisURL)
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
