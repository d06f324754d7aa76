package services

import "errors"

// Error variables
var (
	ErrValidation         = errors.New("missing required fields")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrNotFound           = errors.New("not found")
	ErrInvalidToken       = errors.New("the link is invalid or has expired")
	ErrUnauthorized       = errors.New("unauthorized")
)
