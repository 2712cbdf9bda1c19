package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseCategory groups exercises by the primary muscle group or modality.
type ExerciseCategory string

const (
	CategoryChest     ExerciseCategory = "CHEST"
	CategoryBack      ExerciseCategory = "BACK"
	CategoryShoulders ExerciseCategory = "SHOULDERS"
	CategoryBiceps    ExerciseCategory = "BICEPS"
	CategoryTriceps   ExerciseCategory = "TRICEPS"
	CategoryLegs      ExerciseCategory = "LEGS"
	CategoryCore      ExerciseCategory = "CORE"
	CategoryCardio    ExerciseCategory = "CARDIO"
	CategoryFullBody  ExerciseCategory = "FULL_BODY"
	CategoryOther     ExerciseCategory = "OTHER"
)

// ValidCategory reports whether c is one of the fixed category values.
func ValidCategory(c ExerciseCategory) bool {
	switch c {
	case CategoryChest, CategoryBack, CategoryShoulders, CategoryBiceps,
		CategoryTriceps, CategoryLegs, CategoryCore, CategoryCardio,
		CategoryFullBody, CategoryOther:
		return true
	}
	return false
}

// Exercise is a named movement in the shared library. Every authenticated
// user can read it; only the owner may update or delete it.
type Exercise struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"ownerId"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Category    ExerciseCategory `gorm:"size:32;not null" json:"category"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}
