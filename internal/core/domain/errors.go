package domain

import "errors"

// Auth errors
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Authorization / lookup errors
var (
	ErrForbidden       = errors.New("admin access required")
	ErrUserNotFound    = errors.New("user not found")
	ErrPackageNotFound = errors.New("package not found")
)

// Workflow errors
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// Entitlement errors
var (
	ErrNoCreditAllowed = errors.New("package does not include B2B meetings")
	ErrCreditExhausted = errors.New("B2B meeting limit reached")
)
