package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookcatalog/internal/apperr"
)

// errorBody is the JSON error shape returned on every failure.
type errorBody struct {
	Detail string         `json:"detail"`
	Status int            `json:"status"`
	Code   apperr.Code    `json:"code"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// writeError renders err in the error shape. Typed errors keep their code,
// message and meta; anything else is reported as an internal error without
// leaking detail.
func (s *Server) writeError(c echo.Context, err error) error {
	body := errorBody{
		Detail: "Internal server error",
		Status: http.StatusInternalServerError,
		Code:   apperr.CodeInternalError,
	}
	if e, ok := apperr.As(err); ok {
		body.Detail = e.Message
		body.Status = e.Code.HTTPStatus()
		body.Code = e.Code
		body.Meta = e.Meta
	} else {
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err.Error())
	}
	if body.Status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return c.JSON(body.Status, body)
}

// httpErrorHandler converts errors echo raises itself (unknown routes,
// malformed bodies) into the same error shape.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok {
		code := apperr.CodeInternalError
		switch he.Code {
		case http.StatusBadRequest:
			code = apperr.CodeInvalidInput
		case http.StatusUnauthorized:
			code = apperr.CodeUnauthorized
		case http.StatusForbidden:
			code = apperr.CodeForbidden
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			code = apperr.CodeNotFound
		}
		detail, _ := he.Message.(string)
		if detail == "" {
			detail = http.StatusText(he.Code)
		}
		if he.Code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		_ = c.JSON(he.Code, errorBody{Detail: detail, Status: he.Code, Code: code})
		return
	}
	_ = s.writeError(c, err)
}
