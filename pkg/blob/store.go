package blob

import "context"

// Store persists an opaque byte blob and hands back a reference the
// transcription capability accepts: either a fetchable URL or a
// self-contained data URI.
type Store interface {
	Put(ctx context.Context, data []byte, mimeType string) (string, error)
}
