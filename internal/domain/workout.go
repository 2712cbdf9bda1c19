package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutStatus tracks the lifecycle of a logged session.
type WorkoutStatus string

const (
	StatusInProgress WorkoutStatus = "IN_PROGRESS"
	StatusCompleted  WorkoutStatus = "COMPLETED"
	StatusCancelled  WorkoutStatus = "CANCELLED"
)

// ValidStatus reports whether s is a known workout status.
func ValidStatus(s WorkoutStatus) bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// WorkoutSession is one logged training session. Sessions created from a
// plan copy the plan's name at creation time; no link back to the plan is
// persisted afterwards.
type WorkoutSession struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"ownerId"`
	Name      string        `gorm:"size:255" json:"name,omitempty"`
	Notes     string        `gorm:"type:text" json:"notes,omitempty"`
	Date      time.Time     `gorm:"not null;index" json:"date"`
	Status    WorkoutStatus `gorm:"size:16;not null" json:"status"`
	Duration  int           `json:"duration"` // minutes
	Sets      []Set         `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"sets"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Set is one logged set within a session. SetNumber is sequential per
// (workout, exercise): always max existing + 1, never reused after deletes.
type Set struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkoutID  uuid.UUID `gorm:"type:uuid;not null;index" json:"workoutId"`
	ExerciseID uuid.UUID `gorm:"type:uuid;not null;index" json:"exerciseId"`
	SetNumber  int       `gorm:"not null" json:"setNumber"`
	Reps       int       `gorm:"not null" json:"reps"`
	Weight     float64   `gorm:"type:decimal(6,2);not null" json:"weight"`
	RPE        *int      `json:"rpe,omitempty"`
	Notes      string    `gorm:"size:512" json:"notes,omitempty"`
	Warmup     bool      `gorm:"not null;default:false" json:"warmup"`
	CreatedAt  time.Time `json:"createdAt"`
}
