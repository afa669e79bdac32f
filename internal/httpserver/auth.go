package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/auth"
	"github.com/mkotelnikov/webstore/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"required"`
	Address  string `json:"address"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// sessionPayload carries the token in the body as well as the cookie, for
// clients that cannot hold cookies.
type sessionPayload struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	session, err := h.Svc.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return mapError(c, err)
	}

	c.SetCookie(auth.CreateCookie(session.Token, session.ExpiresAt))
	return respondData(c, http.StatusCreated, "user registered successfully", sessionPayload{
		User:  session.User,
		Token: session.Token,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	session, err := h.Svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(c, err)
	}

	c.SetCookie(auth.CreateCookie(session.Token, session.ExpiresAt))
	return respondData(c, http.StatusOK, "login successful", sessionPayload{
		User:  session.User,
		Token: session.Token,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearCookie())
	return respondMessage(c, http.StatusOK, "logout successful")
}
