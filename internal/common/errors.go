// Package common defines shared sentinel errors used across the
// secret-protection core. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// Service-level error for every proof failure. Deliberately carries no
	// detail so callers cannot tell "no such user" from "wrong secret".
	ErrorUnauthorized = errors.New("unauthorized")

	// Caller-input errors.
	ErrorInvalidInput      = errors.New("invalid input")
	ErrorInvalidCodeFormat = errors.New("invalid code format")

	// Configuration defects. These indicate a misconfigured deployment
	// and must fail loudly at first use.
	ErrInvalidKeyLength = errors.New("encryption key must be exactly 32 bytes")

	// Data-quality error during decryption. Recovered locally as a
	// per-field failure so one corrupt field never blocks a record.
	ErrDecryptionFailed = errors.New("decryption failed")
)
