package handler

import (
	"errors"
	"log/slog"

	"github.com/escapade/api/internal/database"
	"github.com/escapade/api/internal/model"
	"github.com/escapade/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
//
// Store outages are the only class logged here; every other mapping is a
// client error the caller already sees in full.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrActivityNotFound):
		return model.NewNotFoundError("activity")
	case errors.Is(err, service.ErrFavoriteNotFound):
		return model.NewNotFoundError("favorite")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyFavorited):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})

	case errors.Is(err, service.ErrActivityNameRequired),
		errors.Is(err, service.ErrActivityNameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})

	case errors.Is(err, service.ErrCityRequired),
		errors.Is(err, service.ErrCityTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "city", Message: err.Error()}})

	case errors.Is(err, service.ErrNegativePrice):
		return model.NewValidationError([]model.FieldError{{Field: "price", Message: err.Error()}})

	case errors.Is(err, service.ErrReorderSetMismatch):
		return model.NewValidationError([]model.FieldError{{Field: "activity_ids", Message: err.Error()}})

	// ===== Malformed Input → 400 =====
	case errors.Is(err, service.ErrInvalidActivityID):
		return model.NewBadRequestError(err.Error())

	// ===== Store Unavailable → 503 =====
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		slog.Error("store unavailable", slog.Any("error", err))
		return model.NewUnavailableError("the service is temporarily unavailable")

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
