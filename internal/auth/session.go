package auth

import "time"

// Session is the authenticated caller's identity, as issued by the hosted
// auth service. Writes that require a session check Valid before touching
// the data store.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time
}

func (s *Session) Valid() bool {
	if s == nil || s.AccessToken == "" || s.UserID == "" {
		return false
	}
	return time.Now().Before(s.ExpiresAt)
}
