package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/webstore/internal/auth"
)

const actorKey = "actor"

type AuthMiddleware struct {
	Tokens *auth.Manager
}

func NewAuthMiddleware(tokens *auth.Manager) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

// tokenFrom prefers the session cookie and falls back to a bearer header
// for non-cookie clients.
func tokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := tokenFrom(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}
		actor, err := m.Tokens.Parse(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		c.Set(actorKey, *actor)
		return next(c)
	}
}

func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		actor, _ := ActorFrom(c)
		if !actor.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "access denied, admin only")
		}
		return next(c)
	})
}

// OptionalAuth attaches an actor when a valid token is present and lets
// the request through as anonymous otherwise.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := tokenFrom(c); token != "" {
			if actor, err := m.Tokens.Parse(token); err == nil {
				c.Set(actorKey, *actor)
			}
		}
		return next(c)
	}
}

func ActorFrom(c echo.Context) (auth.Actor, bool) {
	actor, ok := c.Get(actorKey).(auth.Actor)
	return actor, ok
}

// SetActor exists for handler tests that skip the middleware chain.
func SetActor(c echo.Context, actor auth.Actor) {
	c.Set(actorKey, actor)
}
