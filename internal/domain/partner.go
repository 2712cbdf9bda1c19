package domain

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a directed access grant: the viewer may read the owner's
// exercises, plans, workouts and stats. The edge is unique per
// (owner, viewer) pair and one-directional; self-grants are rejected
// before this row is ever created.
type Partner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partner_edge" json:"ownerId"`
	ViewerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partner_edge" json:"viewerId"`
	CreatedAt time.Time `json:"createdAt"`
}
