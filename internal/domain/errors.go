package domain

import "errors"

var (
	// ErrProductNotFound is returned when both resolution stages are exhausted
	// without locating the source product.
	ErrProductNotFound = errors.New("product not found on marketplace")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidListingURL is returned when a listing URL does not carry a
	// recognizable shop code and item code.
	ErrInvalidListingURL = errors.New("not a recognizable marketplace item URL")

	// ErrMarketAPIFailure is returned when a marketplace search request fails.
	// Use cases absorb it and degrade to zero items; it never crosses the
	// delivery boundary.
	ErrMarketAPIFailure = errors.New("marketplace API request failed")
)
