package domain

import (
	"time"

	"github.com/google/uuid"
)

// Weekday tags a plan with a day of the week for schedule-view grouping.
// A nil *Weekday on a plan means "no day / rest pool".
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// ValidWeekday reports whether d is one of MONDAY..SUNDAY.
func ValidWeekday(d Weekday) bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// DayRank returns the display sort rank for a plan's day: Monday=1 through
// Sunday=7, with unset days sorting last as 8.
func DayRank(d *Weekday) int {
	if d == nil {
		return 8
	}
	switch *d {
	case Monday:
		return 1
	case Tuesday:
		return 2
	case Wednesday:
		return 3
	case Thursday:
		return 4
	case Friday:
		return 5
	case Saturday:
		return 6
	case Sunday:
		return 7
	}
	return 8
}

// WorkoutPlan is a reusable, ordered exercise template owned by one user.
type WorkoutPlan struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID             `gorm:"type:uuid;not null;index" json:"ownerId"`
	Name      string                `gorm:"size:255;not null" json:"name"`
	Day       *Weekday              `gorm:"size:16" json:"day,omitempty"`
	Exercises []WorkoutPlanExercise `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"exercises"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// WorkoutPlanExercise is one ordered slot in a plan. Positions are dense and
// zero-based with no duplicate exercise references; the service layer
// enforces this, not the store.
type WorkoutPlanExercise struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID     uuid.UUID `gorm:"type:uuid;not null;index" json:"planId"`
	ExerciseID uuid.UUID `gorm:"type:uuid;not null" json:"exerciseId"`
	Position   int       `gorm:"not null" json:"position"`
}
