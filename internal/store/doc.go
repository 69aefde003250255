// Package store defines the persistence interfaces for learning items and
// study sessions, the shared error taxonomy for store implementations, and
// the transaction helper that service-layer orchestration builds on.
//
// Concrete implementations live under internal/platform (e.g. postgres).
package store
