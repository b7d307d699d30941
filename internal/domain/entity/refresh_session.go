package entity

import "time"

// RefreshSession is one signed-in device or browser. The opaque refresh token
// itself is never stored, only its digest.
type RefreshSession struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ExpiredAt reports whether the session is no longer usable at now.
// A session whose expiry equals now is already expired.
func (s *RefreshSession) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
