package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/mpetrov/news-backend/config"
	"github.com/mpetrov/news-backend/internal/auth"
	"github.com/mpetrov/news-backend/internal/cache"
	"github.com/mpetrov/news-backend/internal/db"
	"github.com/mpetrov/news-backend/internal/images"
	"github.com/mpetrov/news-backend/internal/jobs"
	"github.com/mpetrov/news-backend/internal/newsapp"
	"github.com/mpetrov/news-backend/internal/rest"
)

type App struct {
	DB      *db.Repository
	Logger  *slog.Logger
	Echo    *echo.Echo
	Config  *config.Config
	sweeper *jobs.Sweeper
	stop    context.CancelFunc
}

func New(cfg *config.Config, dbConnect *pg.DB, responseCache cache.Cache, logger *slog.Logger) (*App, error) {
	database := db.New(dbConnect)

	store, err := images.NewStore(cfg.Images.Dir, images.Validator{
		MaxSize:      cfg.Images.MaxSize,
		AllowedTypes: cfg.Images.AllowedTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("init image store: %w", err)
	}

	manager := newsapp.NewManager(database, store, logger)
	authService := auth.NewService(database, auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL.Duration,
	})

	handler := rest.NewHandler(manager, authService, responseCache, cfg.Cache.TTL.Duration, logger)

	return &App{
		DB:     database,
		Logger: logger,
		Echo: handler.RegisterRoutes(cfg.Images.Dir, rest.RateLimit{
			Rate:  cfg.RateLimit.Rate,
			Burst: cfg.RateLimit.Burst,
		}),
		Config:  cfg,
		sweeper: jobs.NewSweeper(database, cfg.Images.Dir, cfg.Jobs.SweepMinAge.Duration, logger),
	}, nil
}

func (a *App) Run(ctx context.Context, port int) error {
	jobCtx, cancel := context.WithCancel(ctx)
	a.stop = cancel
	go a.sweeper.Run(jobCtx, a.Config.Jobs.SweepInterval.Duration)

	addr := fmt.Sprintf(":%d", port)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	if a.stop != nil {
		a.stop()
	}

	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
