package rest

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	userIDKey = "userID"

	// newsListCachePrefix keys cached listing responses; mutations
	// invalidate everything under it.
	newsListCachePrefix = "GET:/api/news?"
)

// RequireAuth validates the Bearer token and stores the acting user's
// id in the request context before the handler runs.
func (h *Handler) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)

		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return c.JSON(http.StatusUnauthorized, statusMessageResponse{
				Status:  http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		}

		token := strings.TrimSpace(header[len(prefix):])
		userID, err := h.auth.ValidateToken(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, statusMessageResponse{
				Status:  http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func userIDFrom(c echo.Context) int {
	userID, _ := c.Get(userIDKey).(int)
	return userID
}

// CacheNewsList fronts the listing handler with the response cache,
// keyed by method and request URI.
func (h *Handler) CacheNewsList(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		key := newsListCachePrefix + c.Request().URL.RawQuery

		body, ok, err := h.cache.Get(ctx, key)
		if err != nil {
			h.log.Error("cache lookup failed", "key", key, "error", err)
		} else if ok {
			return c.JSONBlob(http.StatusOK, body)
		}

		rec := &captureWriter{ResponseWriter: c.Response().Writer}
		c.Response().Writer = rec

		if err := next(c); err != nil {
			return err
		}

		if c.Response().Status == http.StatusOK {
			if err := h.cache.Set(ctx, key, rec.body.Bytes(), h.cacheTTL); err != nil {
				h.log.Error("cache store failed", "key", key, "error", err)
			}
		}

		return nil
	}
}

type captureWriter struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
