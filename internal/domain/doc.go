// Package domain contains the core entities of the jobs API (users and the
// job applications they track) together with their validation rules. It has
// no knowledge of storage or transport.
package domain
