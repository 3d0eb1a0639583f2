package resignation

import "errors"

var (
	ErrRequestNotFound       = errors.New("Resignation request not found")
	ErrDuplicateActiveRequest = errors.New("An active resignation request already exists for this employee")
	ErrStageAlreadyDecided   = errors.New("This stage has already been decided")
)
