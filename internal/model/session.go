package model

import "time"

// Session is the durable record of a login; the copy the auth middleware
// trusts lives in redis and expires on its own.
type Session struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint64 `gorm:"not null;index"`
	UserAgent string `gorm:"size:255"`
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
