package models

import "time"

// SessionKind distinguishes the two proof methods that can issue an
// elevated session. Validation semantics are identical for both; only the
// lifetime and cookie name differ.
type SessionKind string

const (
	SessionKindCode     SessionKind = "code"
	SessionKindPassword SessionKind = "password"
)

// ElevatedSession proves that its bearer recently re-confirmed identity.
// The token is an opaque random value (32 bytes, hex-encoded) looked up
// on each gated action. A session stops being operative when ExpiresAt
// passes or IsValid is cleared; rows are physically removed later by the
// periodic cleanup sweep.
type ElevatedSession struct {
	ID        string
	UserID    string
	Token     string
	Kind      SessionKind
	IsValid   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session's expiry has passed at the given
// instant.
func (s *ElevatedSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
