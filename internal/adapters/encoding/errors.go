package encoding

import "errors"

// Sentinel kinds for encoding errors.
var (
	ErrReadImage  = errors.New("failed to read image")
	ErrEmptyImage = errors.New("image produced no data")
)
