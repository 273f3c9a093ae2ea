// Package storage implements the ImageStore domain service on top of
// gocloud.dev blob buckets, so local disk and cloud object stores are
// interchangeable through configuration.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Drivers registered for blob.OpenBucket URL schemes.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// blobStore writes product images into a blob bucket and returns public URLs.
type blobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// NewBlobStore opens the configured bucket and registers its shutdown with fx.
func NewBlobStore(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (service.ImageStore, error) {
	if cfg.Images == nil || cfg.Images.BucketURL == "" {
		return nil, errors.New("image bucket url must be provided")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.Images.BucketURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.Images.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Save streams the image into the bucket under a collision-free key and
// returns the URL it will be served from.
func (s *blobStore) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := uuid.New().String() + extension(filename)

	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", errors.WithStack(err)
	}
	if err := w.Close(); err != nil {
		return "", errors.WithStack(err)
	}

	s.logger.Debug("[ImageStore] Stored image",
		slog.String("key", key),
		slog.String("content_type", contentType),
	)

	return s.publicBaseURL + "/" + key, nil
}

// extension returns the lowercase file extension including the dot, or "".
func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx:])
}
