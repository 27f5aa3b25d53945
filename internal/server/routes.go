package server

import (
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/dreamspell/dreamspell/internal/config"
	"github.com/dreamspell/dreamspell/internal/filestorage"
	"github.com/dreamspell/dreamspell/internal/usecase"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(NewEchoLogger(s.logger))
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/api/health", s.healthHandler)

	// uploaded assets, by generated name
	assetDir := os.Getenv(config.ENV_KEY_ASSET_DIR)
	if assetDir == "" {
		assetDir = filestorage.DefaultAssetDir
	}
	e.Static("/static", assetDir)

	// login attempts are throttled per IP
	loginLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(1),
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
	})

	var authGroup = e.Group("/api/v1/auth")
	authGroup.POST("/login", s.Login, loginLimiter)
	authGroup.POST("/logout", s.Logout)

	for _, mount := range []struct {
		path string
		kind usecase.Kind
	}{
		{"/api/v1/glyphs", usecase.KindGlyph},
		{"/api/v1/tones", usecase.KindTone},
		{"/api/v1/kins", usecase.KindKin},
	} {
		g := e.Group(mount.path, s.SessionMiddleware)
		g.GET("", s.ListSymbols(mount.kind))
		g.POST("", s.CreateSymbol(mount.kind))
		g.GET("/:id", s.GetSymbol(mount.kind))
		// POST instead of PUT: multipart forms
		g.POST("/:id", s.UpdateSymbol(mount.kind))
		g.DELETE("/:id", s.DeleteSymbol(mount.kind))
	}

	e.POST("/api/v1/assets/sweep", s.SweepAssets, s.SessionMiddleware)

	return e
}
