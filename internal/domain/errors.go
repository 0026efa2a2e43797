package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrStoreOffline indicates the catalog API could not be reached
	ErrStoreOffline = errors.New("store is unreachable")

	// ErrUnexpectedStatus indicates the catalog API answered with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrDecode indicates the response body was not a valid search response
	ErrDecode = errors.New("failed to decode search response")

	// ErrUnknownCategory indicates a category name or index that does not exist
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNoStoreURL indicates a result without a store link
	ErrNoStoreURL = errors.New("result has no store URL")
)
