// Package storage turns raw image bytes into a reference string that is kept
// verbatim on the product.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"auction-backend/auctionerrors"
)

// MaxImageSize bounds a single uploaded image.
const MaxImageSize = 10 * 1024 * 1024

// FileStore accepts raw bytes and returns a reference to them.
type FileStore interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// DecodeBase64Image accepts plain base64 or a data URI and returns the raw bytes.
func DecodeBase64Image(encoded string) ([]byte, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 || !strings.Contains(payload[:comma], ";base64") {
			return nil, fmt.Errorf("%w: malformed data URI", auctionerrors.ErrInvalidProduct)
		}
		payload = payload[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: image is not valid base64: %v", auctionerrors.ErrInvalidProduct, err)
	}
	return data, CheckImage(data)
}

// CheckImage rejects empty, oversized and non-image payloads.
func CheckImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: image is empty", auctionerrors.ErrInvalidProduct)
	}
	if len(data) > MaxImageSize {
		return fmt.Errorf("%w: image exceeds %d bytes", auctionerrors.ErrInvalidProduct, MaxImageSize)
	}
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: unsupported content type %s", auctionerrors.ErrInvalidProduct, ct)
	}
	return nil
}
