package auth

import "errors"

var (
	// ErrInvalidToken covers every token that is malformed, unsigned, signed
	// with the wrong key or algorithm, or missing required claims.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's exp is not after the current time.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates no bearer token was presented.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials is returned when an email/password pair does not
	// match a stored account.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
