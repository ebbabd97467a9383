// Package httpapi exposes the service over HTTP: an echo server with
// request-ID, CORS and request-logging middleware, the bearer-token
// authorization chain, and JSON handlers for the auth and catalog routes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bookcatalog/internal/logging"
	"bookcatalog/internal/server/constants"
	"bookcatalog/internal/server/models"
	"bookcatalog/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// AuthProvider is the part of AuthService the HTTP layer consumes.
type AuthProvider interface {
	Login(ctx context.Context, username, password string) (*services.Token, error)
	Register(ctx context.Context, username, password string) (*models.User, error)
	GetUserFromToken(ctx context.Context, token string) (*models.User, error)
	RequireActive(user *models.User) error
	UpdateCurrentUser(ctx context.Context, user *models.User, input services.UpdateUserInput) (*models.User, error)
	RequirePermission(ctx context.Context, user *models.User, permissionID string) error
}

// BookProvider is the part of BookService the HTTP layer consumes.
type BookProvider interface {
	List(ctx context.Context, authorID int64) ([]models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Add(ctx context.Context, input services.BookInput) (*models.Book, error)
	Update(ctx context.Context, id int64, input services.BookInput) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
}

// AuthorProvider is the part of AuthorService the HTTP layer consumes.
type AuthorProvider interface {
	List(ctx context.Context) ([]models.Author, error)
}

// Server is the HTTP front of the application.
type Server struct {
	echo    *echo.Echo
	addr    string
	logger  logging.Logger
	auth    AuthProvider
	books   BookProvider
	authors AuthorProvider
}

// NewServer wires middleware and routes onto a fresh echo instance.
func NewServer(addr string, logger logging.Logger, auth AuthProvider, books BookProvider, authors AuthorProvider, corsOrigins []string) *Server {
	s := &Server{
		echo:    echo.New(),
		addr:    addr,
		logger:  logger.With("module", "httpapi"),
		auth:    auth,
		books:   books,
		authors: authors,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.httpErrorHandler

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())
	if len(corsOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		}))
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealthz)

	s.echo.POST("/token", s.handleLogin)
	s.echo.POST("/users/register", s.handleRegister)
	s.echo.GET("/users/me", s.handleMe, s.requireUser)
	s.echo.PATCH("/users/me", s.handleUpdateMe, s.requireUser)

	s.echo.GET("/books", s.handleListBooks)
	s.echo.GET("/books/:id", s.handleGetBook)
	s.echo.POST("/books", s.handleAddBook, s.requirePermission(constants.PermissionBookCreate))
	s.echo.PUT("/books/:id", s.handleUpdateBook, s.requirePermission(constants.PermissionBookUpdate))
	s.echo.DELETE("/books/:id", s.handleDeleteBook, s.requirePermission(constants.PermissionBookDelete))

	s.echo.GET("/authors", s.handleListAuthors)
}

// Run starts the server and blocks until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server started", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
