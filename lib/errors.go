package lib

import "errors"

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Catalog errors
var (
	// ErrCollectionNotFound is returned before any remote write is
	// attempted when a product references a collection name with no match.
	ErrCollectionNotFound = errors.New("collection not found")
)
