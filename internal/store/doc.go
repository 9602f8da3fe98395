// Package store declares the persistence contracts for users and job
// applications. Implementations live under internal/platform; callers depend
// only on these interfaces and on the sentinel errors in errors.go.
package store
