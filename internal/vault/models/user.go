// Package models holds the persistence-facing data structures of the
// secret-protection core.
package models

import "time"

// User is the owner of secrets. PasswordHash is the standing bcrypt hash
// used by the password step-up path; Code is the current access code used
// by the code step-up path. Both are optional: a user may have neither.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	Code            string
	CodeGeneratedAt *time.Time
	CreatedAt       time.Time
}
