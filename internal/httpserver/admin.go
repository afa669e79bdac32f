package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/service"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) Dashboard(c echo.Context) error {
	stats, err := h.Svc.Dashboard(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", stats)
}

func (h *AdminHTTP) Analytics(c echo.Context) error {
	report, err := h.Svc.Analytics(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", report)
}

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", users)
}

type userStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *AdminHTTP) SetUserStatus(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return nil
	}
	var req userStatusRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	user, err := h.Svc.SetUserActive(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "user status updated", user)
}
