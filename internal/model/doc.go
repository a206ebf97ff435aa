// Package model defines domain entities and data structures for the Escapade API.
//
// The model package contains all struct definitions for domain objects, request
// types, and error definitions. Models are used across all layers of the
// application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Activity: a cataloged outing (name, city, price) offered for favoriting
//   - Favorite: a (user, activity) pairing carrying a per-user display order
//   - User: application user with authentication credentials
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Activity struct {
//	    ID   string `json:"id"`
//	    Name string `json:"name"`
//	    City string `json:"city"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string `json:"type"`
//	    Title   string `json:"title"`
//	    Status  int    `json:"status"`
//	    Detail  string `json:"detail"`
//	}
package model
