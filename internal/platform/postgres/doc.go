// Package postgres provides PostgreSQL implementations of the store
// interfaces, built on database/sql with the pgx stdlib driver. Errors from
// the driver are mapped onto the store error taxonomy so callers never
// depend on PostgreSQL specifics.
package postgres
