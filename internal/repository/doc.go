// Package repository implements data access for the Escapade API.
//
// Each repository wraps the database.Database interface and translates between
// SurrealDB records and domain models. Repositories own the query text and the
// result parsing; they return database sentinel errors (database.ErrNotFound,
// database.ErrDuplicate) that services translate into domain errors.
//
// Catalog queries that page results compute the page items and the total from
// one shared WHERE clause, so the reported total always matches the filter the
// items came from.
package repository
