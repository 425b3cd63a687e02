package services

import (
	"net/http"
	"time"

	"github.com/glopmts/my-accounts-sub000/internal/vault/models"
)

// Cookie names for the two proof flavors. Distinct names keep the flows
// from colliding in meaning; validation semantics are otherwise identical.
const (
	CodeSessionCookie     = "code_session"
	PasswordSessionCookie = "password_session"
)

// CookieName returns the cookie name for a session kind.
func CookieName(kind models.SessionKind) string {
	if kind == models.SessionKindPassword {
		return PasswordSessionCookie
	}
	return CodeSessionCookie
}

// SessionCookie builds the HTTP cookie carrying an elevated-session token:
// httpOnly, sameSite=strict, path=/, expiring together with the session.
// secure should be true in production.
func SessionCookie(session *models.ElevatedSession, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName(session.Kind),
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie builds the cookie that removes the session cookie of
// the given kind from the client.
func ClearSessionCookie(kind models.SessionKind, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName(kind),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
