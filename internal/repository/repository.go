package repository

import (
	"context"

	"github.com/google/uuid"

	"gym-tracker/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate record")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// SearchByEmail returns up to limit users whose email contains the query
	// case-insensitively, excluding the given user.
	SearchByEmail(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ExerciseRepository defines the interface for interacting with the shared
// exercise library. Reads are unscoped; writes carry the owner ID so the
// compound (id, owner) filter doubles as the ownership check.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// PlanRepository defines the interface for workout plan data. All lookups
// are scoped by owner; "not found" and "not yours" are one signal.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.WorkoutPlan, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.WorkoutPlan, error)
	// Update persists plan metadata and, when exercises is non-nil, replaces
	// the full exercise list in the same transaction.
	Update(ctx context.Context, plan *domain.WorkoutPlan, exercises []domain.WorkoutPlanExercise) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// WorkoutRepository defines the interface for workout session and set data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.WorkoutSession) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.WorkoutSession, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, workout *domain.WorkoutSession) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	CreateSet(ctx context.Context, set *domain.Set) error
	GetSet(ctx context.Context, setID, workoutID uuid.UUID) (*domain.Set, error)
	// MaxSetNumber returns the highest set number logged for the
	// (workout, exercise) pair, or 0 when none exist.
	MaxSetNumber(ctx context.Context, workoutID, exerciseID uuid.UUID) (int, error)
	UpdateSet(ctx context.Context, set *domain.Set) error
	DeleteSet(ctx context.Context, setID, workoutID uuid.UUID) error
}

// PartnerRepository defines the interface for partner edge data.
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) error
	// Exists reports whether the directed edge (owner, viewer) is present.
	Exists(ctx context.Context, ownerID, viewerID uuid.UUID) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Partner, error)
	ListByViewer(ctx context.Context, viewerID uuid.UUID) ([]domain.Partner, error)
	Delete(ctx context.Context, ownerID, viewerID uuid.UUID) error
}

// SessionRepository defines the interface for login session data.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
