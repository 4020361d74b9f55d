package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mpetrov/news-backend/internal/auth"
)

// Register handles POST /api/auth/register
func (h *Handler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: fieldErrors(err)})
	}

	token, user, err := h.auth.Register(c.Request().Context(), form.Name, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return c.JSON(http.StatusBadRequest, errorsResponse{
				Errors: map[string]string{"email": "Email is already taken"},
			})
		}
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, authResponse{
		Status:      http.StatusOK,
		AccessToken: token,
		User:        NewUserFromDB(user),
	})
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: fieldErrors(err)})
	}

	token, user, err := h.auth.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, statusMessageResponse{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		}
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, authResponse{
		Status:      http.StatusOK,
		AccessToken: token,
		User:        NewUserFromDB(user),
	})
}
