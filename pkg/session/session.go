package session

import (
	"net/http"
	"os"
)

// Session carries the passenger's identity for booking-adjacent API calls.
// Read-only search works without one; the token is passed through untouched,
// never inspected or refreshed here.
type Session struct {
	Token string
}

// FromEnv builds a session from the BUSMATE_TOKEN environment variable.
// Returns an anonymous session when the variable is unset.
func FromEnv() *Session {
	return &Session{Token: os.Getenv("BUSMATE_TOKEN")}
}

// Authorize attaches the bearer token to an outgoing request, if present.
func (s *Session) Authorize(req *http.Request) {
	if s == nil || s.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
}

// Anonymous reports whether the session has no credential attached.
func (s *Session) Anonymous() bool {
	return s == nil || s.Token == ""
}
