package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid identity or password")
	ErrInvalidToken       = errors.New("Invalid or expired token")
)
