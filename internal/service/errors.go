package service

import "errors"

// Sentinel errors returned by SiteService operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("account is blocked")
	ErrUserExists         = errors.New("username or email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotAuthenticated   = errors.New("not signed in")
	ErrForbidden          = errors.New("administrator role required")
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
)
