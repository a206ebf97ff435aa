// Package middleware provides HTTP middleware for the Escapade API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation and user extraction
//   - RateLimit: Request rate limiting per user/IP
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Authentication
//
// The auth middleware validates Bearer tokens and puts the caller's
// identity into the request context:
//
//	mux.Handle("GET /v1/favorites", middleware.Chain(handler, middleware.Auth(validator)))
//
// After authentication, handlers can access user info:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Rate Limiting
//
// Rate limiting protects credential endpoints against brute force:
//
//	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{Rate: 5})
//	mux.Handle("POST /v1/auth/login", middleware.Chain(login, middleware.RateLimit(limiter)))
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetUserEmail(ctx): Returns authenticated user email
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
