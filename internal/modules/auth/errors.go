package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInvalidToken       = errors.New("invalid or expired verification token")
)
