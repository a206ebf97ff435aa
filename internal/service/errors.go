package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
)

// ===== Activity Errors =====
var (
	ErrActivityNotFound     = errors.New("activity not found")
	ErrInvalidActivityID    = errors.New("invalid activity id")
	ErrActivityNameRequired = errors.New("activity name is required")
	ErrActivityNameTooLong  = errors.New("activity name exceeds maximum length")
	ErrCityRequired         = errors.New("city is required")
	ErrCityTooLong          = errors.New("city exceeds maximum length")
	ErrNegativePrice        = errors.New("price must not be negative")
)

// ===== Favorite Errors =====
var (
	ErrAlreadyFavorited   = errors.New("activity already in favorites")
	ErrFavoriteNotFound   = errors.New("activity not in favorites")
	ErrReorderSetMismatch = errors.New("reorder list must contain exactly the favorited activities")
)
