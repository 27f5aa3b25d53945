package server

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/dreamspell/dreamspell/internal/usecase"
)

type Res struct {
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// errorRes maps core errors onto statuses: NotFound 404, BadRequest 400,
// Unauthorized 401, everything else 500 with the detail kept out of the
// response body.
func (s *Server) errorRes(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return ctx.JSON(404, Res{Error: err.Error()})
	case errors.Is(err, usecase.ErrBadRequest):
		return ctx.JSON(400, Res{Error: err.Error()})
	case errors.Is(err, usecase.ErrUnauthorized):
		return ctx.JSON(401, Res{Error: err.Error()})
	}

	s.logger.ErrorContext(ctx.Request().Context(), "internal error", "err", err.Error())
	return ctx.JSON(500, Res{Error: "internal server error"})
}
