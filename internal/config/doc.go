// Package config loads the server configuration from environment variables
// (prefixed JOBS_) and an optional config.yaml, and validates it before any
// component is constructed.
package config
