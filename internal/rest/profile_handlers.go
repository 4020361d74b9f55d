package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mpetrov/news-backend/internal/newsapp"
)

// Profile handles GET /api/profile
func (h *Handler) Profile(c echo.Context) error {
	user, err := h.svc.Profile(c.Request().Context(), userIDFrom(c))
	if err != nil {
		if errors.Is(err, newsapp.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "User not found"})
		}
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, profileResponse{
		Status: http.StatusOK,
		User:   NewUser(user),
	})
}

// UpdateProfile handles PUT /api/profile/:id
func (h *Handler) UpdateProfile(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid id"})
	}

	profile, err := c.FormFile("profile")
	if err != nil {
		profile = nil
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), userIDFrom(c), id, profile)
	if err != nil {
		switch {
		case errors.Is(err, newsapp.ErrNotOwner):
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Unauthorized"})
		case errors.Is(err, newsapp.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, messageResponse{Message: "User not found"})
		}
		var imgErr *newsapp.ImageError
		if errors.As(err, &imgErr) {
			return c.JSON(http.StatusBadRequest, errorsResponse{
				Errors: map[string]string{imgErr.Field: imgErr.Reason},
			})
		}
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, profileResponse{
		Status:  http.StatusOK,
		Message: "Profile updated successfully",
		User:    NewUser(user),
	})
}
