package filestorage

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/dreamspell/dreamspell/internal/config"
	"github.com/dreamspell/dreamspell/internal/usecase"
)

// DefaultAssetDir is where the local provider keeps uploads when ASSET_DIR
// is unset; the server serves it under /static.
const DefaultAssetDir = "static"

// NewFromEnv selects the storage provider: "minio", "s3", or local disk by
// default.
func NewFromEnv(ctx context.Context) (usecase.FileStorageProvider, error) {
	switch os.Getenv(config.ENV_KEY_FILE_STORAGE_PROVIDER) {
	case "minio":
		return NewMinIOStorage(
			os.Getenv(config.ENV_KEY_MINIO_BUCKET),
			os.Getenv(config.ENV_KEY_MINIO_PATH),
			os.Getenv(config.ENV_KEY_MINIO_ENDPOINT),
			os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY),
			os.Getenv(config.ENV_KEY_MINIO_SECRET_KEY),
		)
	case "s3":
		return NewS3Storage(ctx,
			os.Getenv(config.ENV_KEY_S3_BUCKET),
			os.Getenv(config.ENV_KEY_S3_PATH),
		)
	default:
		dir := os.Getenv(config.ENV_KEY_ASSET_DIR)
		if dir == "" {
			dir = DefaultAssetDir
		}
		return NewLocalStorage(dir)
	}
}
