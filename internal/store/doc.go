// Package store defines the persistence interfaces the services depend on,
// together with shared error values and the transaction helper. Concrete
// implementations live in internal/platform/postgres.
package store
