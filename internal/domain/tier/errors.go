package tier

import "errors"

// Sentinel kinds for tier table errors.
var (
	ErrBadThreshold = errors.New("threshold is not a non-negative integer")
	ErrEmptyLabel   = errors.New("tier label must not be empty")
)
