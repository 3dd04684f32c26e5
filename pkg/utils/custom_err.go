package utils

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrInvalidCode          = errors.New("invalid or expired verification code")
	ErrNoCredits            = errors.New("no message credits remaining")
	ErrInvalidPlan          = errors.New("unknown plan")
	ErrInvalidPhone         = errors.New("invalid phone number")
	ErrInvalidTime          = errors.New("invalid preferred time")
	ErrDatabaseError        = errors.New("database error")
)
