package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account created by the identity provider on first login.
// Profile fields (name, avatar) are the only parts domain actions mutate.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	AvatarKey string    `gorm:"size:512" json:"-"` // object key in avatar storage, not a URL
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
