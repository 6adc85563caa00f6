// Package encoding converts uploaded image bytes into the inline base64
// payload the recognition oracle expects.
package encoding

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Encode reads the image and returns its standard base64 body. The upload
// boundary has already enforced the image MIME type and size ceiling.
func Encode(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadImage, err)
	}
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeBytes encodes an in-memory image.
func EncodeBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// StripDataURI removes a data:<mime>;base64, transport prefix if present,
// leaving the bare base64 body.
func StripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
