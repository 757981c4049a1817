package imaging

import "errors"

// Sentinel errors returned by the engine. Call sites wrap them with the
// offending name or coordinate; test for them with errors.Is.
var (
	// ErrNotFound is returned when a named image is not in the store.
	ErrNotFound = errors.New("image not found")

	// ErrOutOfRange is returned for pixel coordinates outside a buffer.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidArgument is returned for malformed construction or
	// operation parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSeedPlacementFailed is returned when mosaic seed placement runs
	// out of attempts before every seed could be placed.
	ErrSeedPlacementFailed = errors.New("seed placement failed")
)
