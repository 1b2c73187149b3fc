package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and publishers
// return these (optionally wrapped) and callers test them with errors.Is:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: entity with the same key already stored
// - ErrUnavailable: backing service temporarily unavailable
// - ErrInvalidInput: request cannot be processed as given
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidInput = errors.New("invalid input")
)
