package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrEmptyTable = errors.New("tier table must not be empty")
)
