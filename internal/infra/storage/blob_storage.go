// Package storage provides the blob-backed implementation of the image
// storage domain service.
package storage

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"coderr/config"
	"coderr/internal/domain/lifecycle"
	"coderr/internal/domain/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Local filesystem bucket driver, selected via the file:// bucket URL.
	_ "gocloud.dev/blob/fileblob"
)

// Clients send images as base64, optionally wrapped in a data URL.
const dataURLMarker = ";base64,"

// blobImageStorage stores uploaded images in a gocloud blob bucket.
type blobImageStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params defines the required parameters for the image storage.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewBlobImageStorage opens the configured bucket and binds its lifetime to
// the application lifecycle.
func NewBlobImageStorage(params Params) (service.ImageStorage, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket url must be provided")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobImageStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(params.Config.Storage.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Store decodes the base64 payload, sniffs the content type, and writes the
// image under a generated filename. The empty string and the literal "null"
// both clear the image and return an empty reference.
func (s *blobImageStorage) Store(ctx context.Context, base64Payload string, prefix string) (string, error) {
	payload := strings.TrimSpace(base64Payload)
	if payload == "" || payload == "null" {
		return "", nil
	}

	// Strip a "data:<mime>;base64," wrapper when present.
	if idx := strings.Index(payload, dataURLMarker); idx >= 0 {
		payload = payload[idx+len(dataURLMarker):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode image payload")
	}

	detected := mimetype.Detect(data)
	ext := detected.Extension()
	if ext == "" {
		ext = ".jpg"
	}

	key := prefix + "/" + uuid.New().String() + ext

	writeOpts := &blob.WriterOptions{ContentType: detected.String()}
	if err := s.bucket.WriteAll(ctx, key, data, writeOpts); err != nil {
		return "", errors.Wrap(err, "failed to write image to bucket")
	}

	s.logger.Debug("Stored image", "key", key, "contentType", detected.String(), "bytes", len(data))

	return key, nil
}

// URL builds a retrievable URL for a stored reference.
func (s *blobImageStorage) URL(ref string) string {
	if ref == "" {
		return ""
	}

	return s.publicBaseURL + "/" + ref
}
