// Package handler provides HTTP request handlers for the Escapade API.
//
// The handler package contains all HTTP endpoint implementations organized by
// domain. Each handler struct encapsulates the dependencies needed to serve
// requests for a specific feature area (activities, favorites, auth).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the service it fronts
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource
//   - WriteCollection: Paginated list of resources
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Authentication
//
// Favorites and profile handlers require authentication via JWT tokens. The
// auth middleware extracts the user ID and makes it available via
// middleware.GetUserID(ctx).
//
// # Example Usage
//
//	handler := NewActivityHandler(catalogService)
//	mux.HandleFunc("GET /v1/activities", handler.List)
//	mux.HandleFunc("GET /v1/activities/{activityId}", handler.Get)
package handler
