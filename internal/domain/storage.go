package domain

import (
	"context"
	"io"
)

// ImageStore uploads images and returns their public URL
type ImageStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
	Enabled() bool
}
