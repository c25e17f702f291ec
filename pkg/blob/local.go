package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var extByMime = map[string]string{
	"audio/webm": ".webm",
	"audio/ogg":  ".ogg",
	"audio/wav":  ".wav",
	"audio/mpeg": ".mp3",
	"audio/mp4":  ".m4a",
}

// LocalStore writes blobs under a directory served by the HTTP layer
// (the /uploads static route) and returns the public URL.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: baseURL,
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, data []byte, mimeType string) (string, error) {
	ext, ok := extByMime[mimeType]
	if !ok {
		ext = ".bin"
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, name), nil
}
