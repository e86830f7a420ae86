package picstash

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Domain errors. Components return these wrapped with context; the HTTP
// error handler maps them to status codes at the edge.
var (
	// ErrNotFound is returned when no blob exists for a requested id.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an original blob is written twice
	// for the same id. Ids are unique, so this should be unreachable.
	ErrAlreadyExists = errors.New("already exists")
	// ErrDecode is returned when uploaded bytes are not a recognizable image.
	ErrDecode = errors.New("not a recognizable image")
	// ErrMalformedRequest is returned for an upload whose multipart body
	// does not contain exactly the parts "tags" and "image".
	ErrMalformedRequest = errors.New("malformed request")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok {
		if he.Code >= 500 {
			c.Logger().Errorf("server error: %v", err)
		}
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	code := statusFor(err)
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	_ = c.String(code, http.StatusText(code))
}
