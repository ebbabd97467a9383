package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/server/models"
	"bookcatalog/internal/server/services"
)

type authorView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookView struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Year   int               `json:"year"`
	Status models.BookStatus `json:"status"`
	Author authorView        `json:"author"`
}

func newBookView(b *models.Book) bookView {
	v := bookView{ID: b.ID, Title: b.Title, Year: b.Year, Status: b.Status}
	if b.Author != nil {
		v.Author = authorView{ID: b.Author.ID, Name: b.Author.Name}
	} else {
		v.Author = authorView{ID: b.AuthorID}
	}
	return v
}

type bookRequest struct {
	Title      string            `json:"title"`
	Year       int               `json:"year"`
	Status     models.BookStatus `json:"status"`
	AuthorID   int64             `json:"author_id"`
	AuthorName string            `json:"author_name"`
}

func (r bookRequest) toInput() services.BookInput {
	return services.BookInput{
		Title:      r.Title,
		Year:       r.Year,
		Status:     r.Status,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
	}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidInput("id must be a positive integer")
	}
	return id, nil
}

// handleListBooks implements GET /books with the optional ?author_id= filter.
func (s *Server) handleListBooks(c echo.Context) error {
	var authorID int64
	if raw := c.QueryParam("author_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return s.writeError(c, apperr.InvalidInput("author_id must be a positive integer"))
		}
		authorID = parsed
	}

	result, err := s.books.List(c.Request().Context(), authorID)
	if err != nil {
		return s.writeError(c, err)
	}
	views := make([]bookView, 0, len(result))
	for i := range result {
		views = append(views, newBookView(&result[i]))
	}
	return c.JSON(http.StatusOK, views)
}

func (s *Server) handleGetBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	book, err := s.books.Get(c.Request().Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, newBookView(book))
}

func (s *Server) handleAddBook(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.InvalidInput("invalid request body"))
	}
	book, err := s.books.Add(c.Request().Context(), req.toInput())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, newBookView(book))
}

func (s *Server) handleUpdateBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.InvalidInput("invalid request body"))
	}
	book, err := s.books.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, newBookView(book))
}

func (s *Server) handleDeleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	if err := s.books.Delete(c.Request().Context(), id); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleListAuthors implements GET /authors.
func (s *Server) handleListAuthors(c echo.Context) error {
	result, err := s.authors.List(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	views := make([]authorView, 0, len(result))
	for _, a := range result {
		views = append(views, authorView{ID: a.ID, Name: a.Name})
	}
	return c.JSON(http.StatusOK, views)
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
