// Package config manages application configuration for the Escapade API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single source
// of truth.
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - RateLimitConfig: credential endpoint throttling
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT         - HTTP server port (default: 8080)
//	SERVER_ENV          - development, production, or test
//	DB_HOST, DB_PORT    - SurrealDB endpoint
//	DB_NAMESPACE, DB_DATABASE
//	DB_USER, DB_PASSWORD
//	JWT_PRIVATE_KEY_PATH, JWT_PUBLIC_KEY_PATH
//	JWT_EXPIRATION_MINS - access token lifetime (default: 60)
//
// Sensible defaults are provided for development; Validate reports every
// problem at once rather than the first one it finds.
package config
