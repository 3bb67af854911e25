// Package common defines shared constants and sentinel errors used across
// client and server layers of credgate. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorValidation         = errors.New("validation error")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorStorage            = errors.New("storage error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInternal           = errors.New("internal error")
)
