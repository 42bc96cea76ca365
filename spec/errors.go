package spec

import "errors"

// Shared error taxonomy for the deck/image pipeline. Tool functions wrap these
// with %w plus path/context so callers can match with errors.Is while still
// getting a single human-readable message.
var (
	// ErrFileNotFound - A required input (SVG source, directory, ...) is missing.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedVectorFeature - The SVG parser rejected a construct in the input markup.
	ErrUnsupportedVectorFeature = errors.New("unsupported vector feature")

	// ErrSaveFailed - The presentation document could not be written to disk.
	ErrSaveFailed = errors.New("save failed")

	// ErrInvalidSlideIndex - Requested slide index is < 1. Rejected before any mutation.
	ErrInvalidSlideIndex = errors.New("invalid slide index")
)
