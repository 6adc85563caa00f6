package service

import "errors"

// Error definitions for the service package.
var (
	// ErrNotStarted is returned when a batch arrives before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrInvalidCategory is returned for a category outside coins/activity.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrNoImages is returned when a batch carries no images.
	ErrNoImages = errors.New("no images in batch")

	// ErrBatchTooLarge is returned when a batch exceeds the image cap.
	ErrBatchTooLarge = errors.New("batch too large")
)
