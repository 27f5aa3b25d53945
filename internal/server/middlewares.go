package server

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/dreamspell/dreamspell/internal/config"
)

// SessionMiddleware gates the admin routes on a valid session cookie and
// puts the user id on the downstream context.
func (s *Server) SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(config.COOKIE_NAME_SESSION)
		if err != nil {
			return c.JSON(401, Res{Error: "login required"})
		}

		userID, err := s.server.VerifySession(cookie.Value)
		if err != nil {
			return c.JSON(401, Res{Error: "invalid session"})
		}

		ctx := context.WithValue(c.Request().Context(), config.CTX_KEY_USER_ID, userID)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
