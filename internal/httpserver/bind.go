package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// bindAndValidate binds the JSON body into out and runs the struct tags
// through the validator. On failure it writes the 400 itself and returns
// false, so handlers read as: if !bindAndValidate { return nil }.
func bindAndValidate(c echo.Context, out any) bool {
	if err := c.Bind(out); err != nil {
		_ = respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(out); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			fields := make([]FieldError, 0, len(vErrs))
			for _, fe := range vErrs {
				fields = append(fields, FieldError{
					Field: fe.Field(),
					Rule:  fe.Tag(),
					Param: fe.Param(),
				})
			}
			_ = respondFieldErrors(c, fields)
			return false
		}
		_ = respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func paramUint(c echo.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		_ = respondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func queryIntDefault(c echo.Context, name string, def int) int {
	s := c.QueryParam(name)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
