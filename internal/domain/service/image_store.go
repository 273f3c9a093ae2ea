package service

import (
	"context"
	"io"
)

// ImageStore abstracts where product images end up (local disk, cloud bucket).
type ImageStore interface {
	// Save streams the image body into the store and returns the public
	// URL it can be served from.
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
