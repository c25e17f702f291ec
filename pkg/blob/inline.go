package blob

import (
	"context"
	"encoding/base64"
	"fmt"
)

// InlineStore keeps no bytes at all: the reference is a data URI carrying
// the payload itself. Useful when no shared storage is reachable, at the
// cost of request size.
type InlineStore struct{}

func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

func (s *InlineStore) Put(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
