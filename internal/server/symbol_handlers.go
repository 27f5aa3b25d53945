package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dreamspell/dreamspell/internal/usecase"
)

type Symbol struct {
	ID          uint   `json:"id"`
	Num         int    `json:"num"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	Preview     string `json:"preview,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func toSymbolRes(s usecase.Symbol) Symbol {
	return Symbol{
		ID:          s.ID,
		Num:         s.Num,
		Name:        s.Name,
		Image:       s.Image,
		Preview:     s.Preview,
		Description: s.Description,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// The three symbol kinds share one handler set; each route closes over its
// kind.

func (s *Server) ListSymbols(k usecase.Kind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		list, err := s.server.ListSymbols(ctx.Request().Context(), k)
		if err != nil {
			return s.errorRes(ctx, err)
		}

		symbols := make([]Symbol, 0, len(list))
		for _, sym := range list {
			symbols = append(symbols, toSymbolRes(sym))
		}
		return ctx.JSON(200, Res{Data: symbols})
	}
}

type GetSymbolRequest struct {
	ID uint `param:"id" validate:"required,gte=1"`
}

func (s *Server) GetSymbol(k usecase.Kind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req GetSymbolRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.JSON(400, Res{Error: err.Error()})
		}
		if err := s.validator.Struct(req); err != nil {
			return ctx.JSON(422, Res{Error: err.Error()})
		}

		sym, err := s.server.GetSymbol(ctx.Request().Context(), k, req.ID)
		if err != nil {
			return s.errorRes(ctx, err)
		}
		return ctx.JSON(200, Res{Data: toSymbolRes(sym)})
	}
}

func (s *Server) CreateSymbol(k usecase.Kind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		rc := ctx.Request().Context()

		in, err := s.server.IngestSymbol(rc, ctx.Request(), k)
		if err != nil {
			return s.errorRes(ctx, err)
		}
		if err := s.validator.Var(in.Name, "required"); err != nil {
			return ctx.JSON(422, Res{Error: "name is required"})
		}

		created, err := s.server.CreateSymbol(rc, k, in)
		if err != nil {
			return s.errorRes(ctx, err)
		}
		return ctx.JSON(201, Res{Data: toSymbolRes(created)})
	}
}

func (s *Server) UpdateSymbol(k usecase.Kind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req GetSymbolRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.JSON(400, Res{Error: err.Error()})
		}
		if err := s.validator.Struct(req); err != nil {
			return ctx.JSON(422, Res{Error: err.Error()})
		}

		rc := ctx.Request().Context()
		in, err := s.server.IngestSymbol(rc, ctx.Request(), k)
		if err != nil {
			return s.errorRes(ctx, err)
		}

		updated, err := s.server.UpdateSymbol(rc, k, req.ID, in)
		if err != nil {
			return s.errorRes(ctx, err)
		}
		return ctx.JSON(200, Res{Data: toSymbolRes(updated)})
	}
}

func (s *Server) DeleteSymbol(k usecase.Kind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req GetSymbolRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.JSON(400, Res{Error: err.Error()})
		}
		if err := s.validator.Struct(req); err != nil {
			return ctx.JSON(422, Res{Error: err.Error()})
		}

		deleted, err := s.server.DeleteSymbol(ctx.Request().Context(), k, req.ID)
		if err != nil {
			return s.errorRes(ctx, err)
		}
		return ctx.JSON(200, Res{Data: toSymbolRes(deleted)})
	}
}
