package server

import "github.com/labstack/echo/v4"

func (s *Server) healthHandler(ctx echo.Context) error {
	return ctx.JSON(200, s.server.Health())
}

// SweepAssets kicks an orphan-asset sweep, on the worker queue when one is
// configured.
func (s *Server) SweepAssets(ctx echo.Context) error {
	if err := s.server.EnqueueAssetSweep(ctx.Request().Context()); err != nil {
		return s.errorRes(ctx, err)
	}
	return ctx.JSON(202, Res{Message: "sweep scheduled"})
}
