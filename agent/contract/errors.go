package contract

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrCatalogLoad   = errors.New("catalog load failed")
	ErrUnknownIntent = errors.New("unknown intent")
	ErrMissingArgs   = errors.New("intent args are missing")
)
