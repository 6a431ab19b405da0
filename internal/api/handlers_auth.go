package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showdeck/showdeck/internal/auth"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

// Register creates a new account.
// POST /api/v1/auth/register
func (s *Server) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	user, err := s.authService.CreateUser(c.Request().Context(), req.Username, req.Password, auth.RoleUser)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordRequired):
			return echo.NewHTTPError(http.StatusBadRequest, "password is required")
		case errors.Is(err, auth.ErrDuplicateUsername):
			return echo.NewHTTPError(http.StatusConflict, "username already exists")
		}
		s.logger.Error().Err(err).Msg("Failed to create user")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create user")
	}

	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues a session token.
// POST /api/v1/auth/login
func (s *Server) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, user, err := s.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrUserDisabled) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		s.logger.Error().Err(err).Msg("Failed to authenticate user")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to authenticate")
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}
