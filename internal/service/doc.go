// Package service holds the application use cases: registering and
// authenticating users, and the job operations that enforce per-user data
// isolation.
//
// Every job operation takes the caller's user ID as its first argument after
// the context. That ID comes from the verified token, never from request
// input. A job owned by anyone else is reported exactly like a missing job,
// with ErrJobNotFound.
package service
