package employee

import "errors"

var (
	ErrProfileNotFound = errors.New("Employee profile not found")
)
