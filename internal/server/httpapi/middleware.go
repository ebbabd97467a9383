package httpapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/server/models"
)

const contextKeyUser = "user"

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	splits := strings.SplitN(header, " ", 2)
	if len(splits) != 2 || !strings.EqualFold(splits[0], "bearer") {
		return "", false
	}
	return strings.TrimSpace(splits[1]), true
}

// requireUser resolves the bearer token to an active user and stores it
// in the request context.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return s.writeError(c, apperr.Unauthorized("Could not validate credentials"))
		}
		user, err := s.auth.GetUserFromToken(c.Request().Context(), token)
		if err != nil {
			return s.writeError(c, err)
		}
		if err := s.auth.RequireActive(user); err != nil {
			return s.writeError(c, err)
		}
		c.Set(contextKeyUser, user)
		return next(c)
	}
}

// requirePermission gates a route on a permission, on top of requireUser.
func (s *Server) requirePermission(permissionID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return s.requireUser(func(c echo.Context) error {
			user := currentUser(c)
			if err := s.auth.RequirePermission(c.Request().Context(), user, permissionID); err != nil {
				return s.writeError(c, err)
			}
			return next(c)
		})
	}
}

func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(contextKeyUser).(*models.User)
	return user
}
