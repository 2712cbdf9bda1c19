package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a database-backed login session. The opaque token travels in
// the session cookie; the row is the source of truth for validity.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
