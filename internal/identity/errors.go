package identity

import "errors"

var (
	// ErrDuplicateRegistration means two domains claimed the same entity type,
	// which only happens when generators run out of dependency order.
	ErrDuplicateRegistration = errors.New("entity type already registered")
	ErrUnknownEntityType     = errors.New("unknown entity type")
	ErrDuplicateKey          = errors.New("duplicate key")
	ErrInvalidFallback       = errors.New("invalid fallback range")
	ErrInvalidKeyColumn      = errors.New("invalid key column")
)
