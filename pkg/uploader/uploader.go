// Package uploader abstracts the external image host. Handlers receive
// multipart files and pass them here; the rest of the system only ever sees
// the returned public URL.
package uploader

import (
	"context"
	"io"
)

type Uploader interface {
	// Upload stores the content and returns a publicly reachable URL.
	Upload(ctx context.Context, body io.Reader, contentType string) (string, error)
}
