package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrNoPassword         = errors.New("User has no password set")
	ErrTokenExpired       = errors.New("Token expired")
	ErrInvalidToken       = errors.New("Invalid token")
)
