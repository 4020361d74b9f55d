package rest

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpetrov/news-backend/internal/cache"
	"github.com/mpetrov/news-backend/internal/db"
	"github.com/mpetrov/news-backend/internal/newsapp"
)

const genericErrorMessage = "Something went wrong. Please try again."

// NewsService is the domain surface the handlers drive. Implemented by
// *newsapp.Manager.
type NewsService interface {
	News(ctx context.Context, page, pageSize int) ([]newsapp.News, newsapp.Metadata, error)
	NewsByID(ctx context.Context, newsID int) (*newsapp.News, error)
	CreateNews(ctx context.Context, userID int, in newsapp.NewsInput, image *multipart.FileHeader) (*newsapp.News, error)
	UpdateNews(ctx context.Context, newsID, userID int, in newsapp.NewsInput, image *multipart.FileHeader) (*newsapp.News, error)
	DeleteNews(ctx context.Context, newsID, userID int) error
	Profile(ctx context.Context, userID int) (*newsapp.User, error)
	UpdateProfile(ctx context.Context, sessionUserID, targetUserID int, image *multipart.FileHeader) (*newsapp.User, error)
}

// AuthService issues and validates access tokens. Implemented by
// *auth.Service.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *db.User, error)
	Login(ctx context.Context, email, password string) (string, *db.User, error)
	ValidateToken(token string) (int, error)
}

type Handler struct {
	svc      NewsService
	auth     AuthService
	cache    cache.Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewHandler(svc NewsService, auth AuthService, c cache.Cache, cacheTTL time.Duration, log *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		auth:     auth,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (h *Handler) serverError(c echo.Context, err error) error {
	h.log.Error("request failed",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, statusMessageResponse{
		Status:  http.StatusInternalServerError,
		Message: genericErrorMessage,
	})
}

// queryInt parses a query parameter, falling back to zero on anything
// non-numeric; the domain clamps zero to the default.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}

// invalidateListings drops cached news listings after a mutation.
func (h *Handler) invalidateListings(ctx context.Context) {
	if err := h.cache.DeletePrefix(ctx, newsListCachePrefix); err != nil {
		h.log.Error("failed to invalidate news listing cache", "error", err)
	}
}

// News handles GET /api/news
func (h *Handler) News(c echo.Context) error {
	page := queryInt(c, "page")
	limit := queryInt(c, "limit")

	newsList, meta, err := h.svc.News(c.Request().Context(), page, limit)
	if err != nil {
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, newsListResponse{
		Status:   http.StatusOK,
		News:     Map(newsList, NewNews),
		Metadata: NewMetadata(meta),
	})
}

// NewsByID handles GET /api/news/:id. An absent record degrades to a
// null-news success, not an error.
func (h *Handler) NewsByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid id"})
	}

	news, err := h.svc.NewsByID(c.Request().Context(), id)
	if err != nil {
		return h.serverError(c, err)
	}

	var result *News
	if news != nil {
		converted := NewNews(*news)
		result = &converted
	}

	return c.JSON(http.StatusOK, newsResponse{Status: http.StatusOK, News: result})
}

// CreateNews handles POST /api/news
func (h *Handler) CreateNews(c echo.Context) error {
	userID := userIDFrom(c)

	var form NewsForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: fieldErrors(err)})
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	news, err := h.svc.CreateNews(c.Request().Context(), userID, newsapp.NewsInput{
		Title:   form.Title,
		Content: form.Content,
	}, image)
	if err != nil {
		var imgErr *newsapp.ImageError
		if errors.As(err, &imgErr) {
			return c.JSON(http.StatusBadRequest, errorsResponse{
				Errors: map[string]string{imgErr.Field: imgErr.Reason},
			})
		}
		return h.serverError(c, err)
	}

	h.invalidateListings(c.Request().Context())

	var result *News
	if news != nil {
		converted := NewNews(*news)
		result = &converted
	}

	return c.JSON(http.StatusOK, newsResponse{
		Status:  http.StatusOK,
		Message: "News created successfully",
		News:    result,
	})
}

// UpdateNews handles PUT /api/news/:id
func (h *Handler) UpdateNews(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid id"})
	}
	userID := userIDFrom(c)

	var form NewsForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: fieldErrors(err)})
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	news, err := h.svc.UpdateNews(c.Request().Context(), id, userID, newsapp.NewsInput{
		Title:   form.Title,
		Content: form.Content,
	}, image)
	if err != nil {
		switch {
		case errors.Is(err, newsapp.ErrNewsNotFound):
			return c.JSON(http.StatusNotFound, messageResponse{Message: "News not found"})
		case errors.Is(err, newsapp.ErrNotOwner):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Unauthorized"})
		}
		var imgErr *newsapp.ImageError
		if errors.As(err, &imgErr) {
			return c.JSON(http.StatusBadRequest, errorsResponse{
				Errors: map[string]string{imgErr.Field: imgErr.Reason},
			})
		}
		return h.serverError(c, err)
	}

	h.invalidateListings(c.Request().Context())

	var result *News
	if news != nil {
		converted := NewNews(*news)
		result = &converted
	}

	return c.JSON(http.StatusOK, newsResponse{
		Status:  http.StatusOK,
		Message: "News updated successfully",
		News:    result,
	})
}

// DeleteNews handles DELETE /api/news/:id
func (h *Handler) DeleteNews(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid id"})
	}
	userID := userIDFrom(c)

	if err := h.svc.DeleteNews(c.Request().Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, newsapp.ErrNewsNotFound):
			return c.JSON(http.StatusNotFound, messageResponse{Message: "News not found"})
		case errors.Is(err, newsapp.ErrNotOwner):
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Unauthorized"})
		}
		return h.serverError(c, err)
	}

	h.invalidateListings(c.Request().Context())

	return c.JSON(http.StatusOK, messageResponse{Message: "News deleted successfully"})
}
