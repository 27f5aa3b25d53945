package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// Error taxonomy shared with the server layer. Anything the repository or
// storage providers return that is not classified here surfaces as a 500.
var (
	ErrNotFound     = errors.New("record not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)

// Repository is implemented by internal/database.
type Repository interface {
	Health() map[string]string
	Close() error

	ListSymbols(ctx context.Context, k Kind) ([]Symbol, error)
	GetSymbol(ctx context.Context, k Kind, id uint) (Symbol, error)
	CreateSymbol(ctx context.Context, k Kind, s NewSymbol) (Symbol, error)
	UpdateSymbol(ctx context.Context, k Kind, id uint, s NewSymbol) (Symbol, error)
	DeleteSymbol(ctx context.Context, k Kind, id uint) (Symbol, error)
	ListReferencedImages(ctx context.Context, k Kind) ([]string, error)

	GetUserByName(ctx context.Context, name string) (User, error)
}

// FileStorageProvider is implemented by internal/filestorage.
// Delete must treat an empty or already-removed name as a no-op; callers
// delete speculatively. List skips files newer than olderThan so a freshly
// saved upload is never reported before its record commits.
type FileStorageProvider interface {
	NameWithPrefix(original string) string
	Save(ctx context.Context, name string, r io.Reader) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, olderThan time.Duration) ([]string, error)
}

// QueueClient enqueues background tasks. May be nil; see EnqueueAssetSweep.
type QueueClient interface {
	EnqueueSweep(ctx context.Context) error
}

func New(repo Repository, fsp FileStorageProvider, qc QueueClient, sessionSecret []byte, logger *slog.Logger) Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return Usecase{
		repo:                repo,
		fileStorageProvider: fsp,
		queueClient:         qc,
		sessionSecret:       sessionSecret,
		logger:              logger,
	}
}

type Usecase struct {
	repo                Repository
	fileStorageProvider FileStorageProvider
	queueClient         QueueClient
	sessionSecret       []byte
	logger              *slog.Logger
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}

func (u Usecase) Close() error {
	return u.repo.Close()
}
