package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimit configures the global limiter.
type RateLimit struct {
	Rate  float64
	Burst int
}

// RegisterRoutes builds the echo engine: global middleware, the API
// group and the public images directory.
func (h *Handler) RegisterRoutes(imagesDir string, limit RateLimit) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewBodyValidator()

	e.Use(middleware.Recover())
	e.Use(h.loggingMiddleware)
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit.Rate),
			Burst:     limit.Burst,
			ExpiresIn: 3 * time.Minute,
		},
	)))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.Static("/images", imagesDir)

	api := e.Group("/api")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	api.GET("/news", h.News, h.CacheNewsList)
	api.GET("/news/:id", h.NewsByID)
	api.POST("/news", h.CreateNews, h.RequireAuth)
	api.PUT("/news/:id", h.UpdateNews, h.RequireAuth)
	api.DELETE("/news/:id", h.DeleteNews, h.RequireAuth)

	api.GET("/profile", h.Profile, h.RequireAuth)
	api.PUT("/profile/:id", h.UpdateProfile, h.RequireAuth)

	return e
}

func (h *Handler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.Request().RemoteAddr,
		)

		return err
	}
}
