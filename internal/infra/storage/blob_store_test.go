package storage

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestBlobStore_Save(t *testing.T) {
	cfg := &config.Config{
		Images: &config.ImagesConfig{
			BucketURL:     "mem://",
			PublicBaseURL: "http://localhost:8080/images/",
		},
	}

	lc := fxtest.NewLifecycle(t)
	store, err := NewBlobStore(lc, cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "photo.JPG", "image/jpeg", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/images/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	require.NoError(t, lc.Stop(context.Background()))
}

func TestBlobStore_MissingBucketURL(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	store, err := NewBlobStore(lc, &config.Config{}, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", extension("product.png"))
	assert.Equal(t, ".jpg", extension("a.b.JPG"))
	assert.Equal(t, "", extension("noext"))
	assert.Equal(t, "", extension("trailingdot."))
}
