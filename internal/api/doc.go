// Package api exposes the auth and job endpoints over HTTP. Handlers decode
// and validate typed request bodies, call the services, and map service
// errors to status codes and safe messages.
package api
