package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dreamspell/dreamspell/internal/config"
)

type LoginRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	token, err := s.server.Login(ctx.Request().Context(), req.Name, req.Password)
	if err != nil {
		return s.errorRes(ctx, err)
	}

	ctx.SetCookie(&http.Cookie{
		Name:     config.COOKIE_NAME_SESSION,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.JSON(200, Res{Message: "logged in"})
}

func (s *Server) Logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     config.COOKIE_NAME_SESSION,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.JSON(200, Res{Message: "logged out"})
}
