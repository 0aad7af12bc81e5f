package schedule

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("field not found")
	ErrDuplicateSchedule = errors.New("schedule already generated")
	ErrNothingToGenerate = errors.New("nothing to generate")
)
