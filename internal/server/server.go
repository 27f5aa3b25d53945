package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"

	"github.com/dreamspell/dreamspell/internal/config"
	"github.com/dreamspell/dreamspell/internal/usecase"
)

// Service is what the HTTP layer needs from the application core.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection.
	Close() error

	ListSymbols(ctx context.Context, k usecase.Kind) ([]usecase.Symbol, error)
	GetSymbol(ctx context.Context, k usecase.Kind, id uint) (usecase.Symbol, error)
	IngestSymbol(ctx context.Context, r *http.Request, k usecase.Kind) (usecase.NewSymbol, error)
	CreateSymbol(ctx context.Context, k usecase.Kind, s usecase.NewSymbol) (usecase.Symbol, error)
	UpdateSymbol(ctx context.Context, k usecase.Kind, id uint, s usecase.NewSymbol) (usecase.Symbol, error)
	DeleteSymbol(ctx context.Context, k usecase.Kind, id uint) (usecase.Symbol, error)

	Login(ctx context.Context, name, password string) (string, error)
	VerifySession(token string) (uint, error)
	EnqueueAssetSweep(ctx context.Context) error
}

type Server struct {
	port int

	server    Service
	validator *validator.Validate
	logger    *slog.Logger
}

func NewServer(sv Service, logger *slog.Logger) *http.Server {
	port, _ := strconv.Atoi(os.Getenv(config.ENV_KEY_PORT))
	if port == 0 {
		port = 8080
	}

	s := &Server{
		port:      port,
		server:    sv,
		validator: validator.New(),
		logger:    logger,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
