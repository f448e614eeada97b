package domain

import "time"

// SessionStatus describes the client's authentication state.
type SessionStatus string

const (
	// StatusUnauthenticated means no usable token is installed.
	StatusUnauthenticated SessionStatus = "unauthenticated"
	// StatusAuthenticated means a token with a future expiry is installed.
	StatusAuthenticated SessionStatus = "authenticated"
	// StatusExpired means the installed token's expiry has elapsed.
	StatusExpired SessionStatus = "expired"
)

// Claims holds the token payload fields the client interprets.
// The token is opaque beyond these; signature verification is the server's job.
type Claims struct {
	SubjectID string
	Email     string
	ExpiresAt int64 // epoch seconds
}

// Session is the client's local record of authentication state.
// It is owned by a single writer (the session manager); everything else
// reads it through that owner.
type Session struct {
	Token  string
	Claims Claims
	Status SessionStatus
}

// Unauthenticated returns the zero-value session with an explicit status.
func Unauthenticated() Session {
	return Session{Status: StatusUnauthenticated}
}

// IsValid reports whether the session can authenticate a request at the
// supplied moment. An expiry exactly at the supplied moment is invalid.
func (s Session) IsValid(at time.Time) bool {
	if s.Status != StatusAuthenticated {
		return false
	}
	return s.Claims.ExpiresAt > at.Unix()
}
