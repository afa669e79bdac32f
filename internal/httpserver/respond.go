package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/logging"
	"github.com/mkotelnikov/webstore/internal/service"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func respondData(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{Success: true, Message: message, Data: data})
}

func respondMessage(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Success: true, Message: message})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Success: false, Message: message})
}

func respondFieldErrors(c echo.Context, fields []FieldError) error {
	return c.JSON(http.StatusBadRequest, Response{Success: false, Errors: fields})
}

// mapError translates service sentinels into HTTP answers. Unknown errors
// become an opaque 500; the detail only goes to the log.
func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidTransition):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return respondError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrAccountDisabled):
		return respondError(c, http.StatusForbidden, "account is disabled, please contact support")
	case errors.Is(err, service.ErrForbidden):
		return respondError(c, http.StatusForbidden, "not authorized")
	case errors.Is(err, service.ErrNotFound):
		return respondError(c, http.StatusNotFound, err.Error())
	default:
		logging.FromContext(c.Request().Context()).Error("internal_error",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// HTTPErrorHandler wraps middleware and router errors (echo.HTTPError)
// into the same envelope the handlers use.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	} else {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
	}

	_ = respondError(c, code, message)
}
