package filestorage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStorage stores assets as objects under a common path in one bucket.
type MinIOStorage struct {
	client *minio.Client
	bucket string
	path   string
	prefix func() string
}

func NewMinIOStorage(bucket, basePath, endpoint, accessKeyID, secretAccessKey string) (*MinIOStorage, error) {
	m, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, err
	}
	return &MinIOStorage{
		client: m,
		bucket: bucket,
		path:   basePath,
		prefix: uuid.NewString,
	}, nil
}

func (f *MinIOStorage) NameWithPrefix(original string) string {
	return f.prefix() + "_" + path.Base(original)
}

func (f *MinIOStorage) Save(ctx context.Context, name string, r io.Reader) error {
	if name == "" {
		return errors.New("empty asset name")
	}
	_, err := f.client.PutObject(ctx, f.bucket, f.key(name), r, -1, minio.PutObjectOptions{})
	return err
}

// Delete is idempotent: object stores treat removing a missing key as
// success, and the empty name short-circuits.
func (f *MinIOStorage) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return f.client.RemoveObject(ctx, f.bucket, f.key(name), minio.RemoveObjectOptions{})
}

func (f *MinIOStorage) List(ctx context.Context, olderThan time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-olderThan)
	var names []string

	for obj := range f.client.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{
		Prefix:    f.path + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		names = append(names, strings.TrimPrefix(obj.Key, f.path+"/"))
	}
	return names, nil
}

func (f *MinIOStorage) key(name string) string {
	return path.Join(f.path, name)
}
