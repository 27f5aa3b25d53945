package filestorage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Storage stores assets as objects under a common path in one bucket,
// authenticated through the default AWS credential chain.
type S3Storage struct {
	client *s3.Client
	bucket string
	path   string
	prefix func() string
}

func NewS3Storage(ctx context.Context, bucket, basePath string) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		path:   basePath,
		prefix: uuid.NewString,
	}, nil
}

func (f *S3Storage) NameWithPrefix(original string) string {
	return f.prefix() + "_" + path.Base(original)
}

func (f *S3Storage) Save(ctx context.Context, name string, r io.Reader) error {
	if name == "" {
		return errors.New("empty asset name")
	}
	key := f.key(name)
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &f.bucket,
		Key:    &key,
		Body:   r,
	})
	return err
}

func (f *S3Storage) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	key := f.key(name)
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &f.bucket,
		Key:    &key,
	})
	return err
}

func (f *S3Storage) List(ctx context.Context, olderThan time.Duration) ([]string, error) {
	var (
		cutoff = time.Now().Add(-olderThan)
		prefix = f.path + "/"
		names  []string
	)

	paginator := s3.NewListObjectsV2Paginator(f.client, &s3.ListObjectsV2Input{
		Bucket: &f.bucket,
		Prefix: &prefix,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || obj.LastModified == nil || obj.LastModified.After(cutoff) {
				continue
			}
			names = append(names, strings.TrimPrefix(*obj.Key, prefix))
		}
	}
	return names, nil
}

func (f *S3Storage) key(name string) string {
	return path.Join(f.path, name)
}
