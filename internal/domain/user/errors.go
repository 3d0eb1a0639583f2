package user

import "errors"

var (
	ErrUserNotFound            = errors.New("User not found")
	ErrManagerAccessRequired   = errors.New("Manager access required")
	ErrHRAccessRequired        = errors.New("HR access required")
	ErrApproverAccessRequired  = errors.New("Approver access required")
	ErrStageNotAllowedForActor = errors.New("Actor may not decide this stage")
)
