package transcribe

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// Provider turns a stored audio blob into text. The reference is either a
// fetchable URL or a self-contained data URI; both shapes must be accepted.
type Provider interface {
	Transcribe(ctx context.Context, audioRef string) (string, error)
}

// DecodeDataURI splits a data URI into its mime type and raw payload.
// Expected shape: data:<mimetype>;base64,<encoded>.
func DecodeDataURI(ref string) (mimeType string, data []byte, err error) {
	if !strings.HasPrefix(ref, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(ref, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}
	mimeType = rest[:sep]
	data, err = base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	return mimeType, data, nil
}

// IsDataURI reports whether the reference is inline-encoded.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}
