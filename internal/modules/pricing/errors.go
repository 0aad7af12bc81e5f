package pricing

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrOverlap    = errors.New("pricing rule overlaps an existing rule")
	ErrNotFound   = errors.New("pricing rule not found")
)
