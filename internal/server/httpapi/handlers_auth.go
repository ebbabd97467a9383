package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/server/models"
	"bookcatalog/internal/server/services"
)

// authenticatedUser is the public view of a user record.
type authenticatedUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Disabled bool   `json:"disabled"`
}

func userView(u *models.User) authenticatedUser {
	return authenticatedUser{ID: u.ID, Username: u.Username, Disabled: u.Disabled}
}

// handleLogin implements POST /token (form-encoded username/password).
func (s *Server) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return s.writeError(c, apperr.InvalidInput("username and password are required"))
	}

	token, err := s.auth.Login(c.Request().Context(), username, password)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, token)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister implements POST /users/register.
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.InvalidInput("invalid request body"))
	}

	user, err := s.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, userView(user))
}

// handleMe implements GET /users/me.
func (s *Server) handleMe(c echo.Context) error {
	return c.JSON(http.StatusOK, userView(currentUser(c)))
}

type updateMeRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// handleUpdateMe implements PATCH /users/me.
func (s *Server) handleUpdateMe(c echo.Context) error {
	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.InvalidInput("invalid request body"))
	}

	updated, err := s.auth.UpdateCurrentUser(c.Request().Context(), currentUser(c), services.UpdateUserInput{
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, userView(updated))
}
