package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/middleware"
	"github.com/mkotelnikov/webstore/internal/service"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Profile(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	user, err := h.Svc.Profile(c.Request().Context(), actor.ID)
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "", user)
}

type updateProfileRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=2"`
	Phone   *string `json:"phone"   validate:"omitempty,min=3"`
	Address *string `json:"address" validate:"omitempty,min=3"`
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	var req updateProfileRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	user, err := h.Svc.UpdateProfile(c.Request().Context(), actor.ID, service.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return mapError(c, err)
	}
	return respondData(c, http.StatusOK, "profile updated successfully", user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	var req changePasswordRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	if err := h.Svc.ChangePassword(c.Request().Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return mapError(c, err)
	}
	return respondMessage(c, http.StatusOK, "password changed successfully")
}
