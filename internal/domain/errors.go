package domain

import "errors"

// Error taxonomy for the core. Operations wrap these sentinels with context
// via fmt.Errorf("%w: ...") and callers match with errors.Is; the HTTP layer
// translates them to not-found / bad-request / conflict.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
