package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/showdeck/showdeck/internal/auth"
)

const userClaimsKey = "userClaims"

// requestID tags every request with a UUID for log correlation.
func requestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization token")
			}

			claims, err := s.authService.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(userClaimsKey, claims)
			return next(c)
		}
	}
}

// optionalAuth resolves the user when a valid token is present but lets
// anonymous requests through. Catalog pages render for everyone; only the
// per-user enrichment differs.
func (s *Server) optionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractBearerToken(c); token != "" {
				if claims, err := s.authService.ValidateToken(token); err == nil {
					c.Set(userClaimsKey, claims)
				}
			}
			return next(c)
		}
	}
}

// currentUserID returns the authenticated user's ID, or 0 for anonymous.
func currentUserID(c echo.Context) int64 {
	if claims, ok := c.Get(userClaimsKey).(*auth.Claims); ok {
		return claims.UserID
	}
	return 0
}

func extractBearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
