package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout session not found")
	ErrSetNotFound     = errors.New("set not found")
)

// defaultWorkoutListLimit bounds unqualified history listings.
const defaultWorkoutListLimit = 50

// SetInput carries the fields of one logged set.
type SetInput struct {
	ExerciseID uuid.UUID
	Reps       int
	Weight     float64
	RPE        *int
	Notes      string
	Warmup     bool
}

// StartedWorkout is the result of starting a session from a plan: the new
// session plus the plan's exercise list for the client to pre-populate
// empty slots. No sets exist until the user logs one.
type StartedWorkout struct {
	Workout     *domain.WorkoutSession
	ExerciseIDs []uuid.UUID
}

// WorkoutService manages logged training sessions and their sets.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, name, notes string, date time.Time) (*domain.WorkoutSession, error)
	GetWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID) (*domain.WorkoutSession, error)
	ListWorkouts(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, limit int) ([]domain.WorkoutSession, error)
	UpdateWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID, name, notes string, status domain.WorkoutStatus, duration int) (*domain.WorkoutSession, error)
	DeleteWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID) error

	// DuplicateWorkout copies all sets of a prior session into a new one
	// dated today with status reset to IN_PROGRESS. The source is untouched.
	DuplicateWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID) (*domain.WorkoutSession, error)

	// StartFromPlan creates a fresh IN_PROGRESS session named after the plan
	// and returns the plan's exercise IDs; it persists no sets and no link
	// back to the plan.
	StartFromPlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID) (*StartedWorkout, error)

	// QuickAddSet logs a set numbered max existing + 1 for the
	// (workout, exercise) pair; freed numbers are never reused.
	QuickAddSet(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID, input SetInput) (*domain.Set, error)
	UpdateSet(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID, setID uuid.UUID, input SetInput) (*domain.Set, error)
	DeleteSet(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID, setID uuid.UUID) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
	planRepo    repository.PlanRepository
	access      AccessService
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, planRepo repository.PlanRepository, access AccessService) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		planRepo:    planRepo,
		access:      access,
	}
}

func (s *workoutService) CreateWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, name, notes string, date time.Time) (*domain.WorkoutSession, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = today()
	}
	workout := &domain.WorkoutSession{
		OwnerID: ownerID,
		Name:    name,
		Notes:   notes,
		Date:    date,
		Status:  domain.StatusInProgress,
	}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID) (*domain.WorkoutSession, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	return s.getOwned(ctx, workoutID, ownerID)
}

func (s *workoutService) ListWorkouts(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, limit int) ([]domain.WorkoutSession, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultWorkoutListLimit {
		limit = defaultWorkoutListLimit
	}
	return s.workoutRepo.ListByOwner(ctx, ownerID, limit)
}

func (s *workoutService) UpdateWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID, name, notes string, status domain.WorkoutStatus, duration int) (*domain.WorkoutSession, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if status != "" && !domain.ValidStatus(status) {
		return nil, ErrValidationFailed
	}
	workout, err := s.getOwned(ctx, workoutID, ownerID)
	if err != nil {
		return nil, err
	}
	workout.Name = name
	workout.Notes = notes
	if status != "" {
		workout.Status = status
	}
	if duration >= 0 {
		workout.Duration = duration
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) DeleteWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID) error {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return err
	}
	err = s.workoutRepo.Delete(ctx, workoutID, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

func (s *workoutService) DuplicateWorkout(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID) (*domain.WorkoutSession, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	source, err := s.getOwned(ctx, workoutID, ownerID)
	if err != nil {
		return nil, err
	}

	duplicate := &domain.WorkoutSession{
		OwnerID: ownerID,
		Name:    source.Name,
		Notes:   source.Notes,
		Date:    today(),
		Status:  domain.StatusInProgress,
		Sets:    make([]domain.Set, 0, len(source.Sets)),
	}
	for _, set := range source.Sets {
		duplicate.Sets = append(duplicate.Sets, domain.Set{
			ExerciseID: set.ExerciseID,
			SetNumber:  set.SetNumber,
			Reps:       set.Reps,
			Weight:     set.Weight,
			RPE:        set.RPE,
			Notes:      set.Notes,
			Warmup:     set.Warmup,
		})
	}
	if err := s.workoutRepo.Create(ctx, duplicate); err != nil {
		return nil, err
	}
	return duplicate, nil
}

func (s *workoutService) StartFromPlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID) (*StartedWorkout, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, planID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	workout := &domain.WorkoutSession{
		OwnerID: ownerID,
		Name:    plan.Name,
		Date:    today(),
		Status:  domain.StatusInProgress,
	}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}

	exerciseIDs := make([]uuid.UUID, 0, len(plan.Exercises))
	for _, slot := range plan.Exercises {
		exerciseIDs = append(exerciseIDs, slot.ExerciseID)
	}
	return &StartedWorkout{Workout: workout, ExerciseIDs: exerciseIDs}, nil
}

func (s *workoutService) QuickAddSet(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID uuid.UUID, input SetInput) (*domain.Set, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if input.ExerciseID == uuid.Nil || input.Reps <= 0 || input.Weight < 0 {
		return nil, ErrValidationFailed
	}
	// Ownership check before touching set rows.
	if _, err := s.getOwned(ctx, workoutID, ownerID); err != nil {
		return nil, err
	}

	max, err := s.workoutRepo.MaxSetNumber(ctx, workoutID, input.ExerciseID)
	if err != nil {
		return nil, err
	}
	set := &domain.Set{
		WorkoutID:  workoutID,
		ExerciseID: input.ExerciseID,
		SetNumber:  max + 1,
		Reps:       input.Reps,
		Weight:     input.Weight,
		RPE:        input.RPE,
		Notes:      input.Notes,
		Warmup:     input.Warmup,
	}
	if err := s.workoutRepo.CreateSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *workoutService) UpdateSet(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID, setID uuid.UUID, input SetInput) (*domain.Set, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if input.Reps <= 0 || input.Weight < 0 {
		return nil, ErrValidationFailed
	}
	if _, err := s.getOwned(ctx, workoutID, ownerID); err != nil {
		return nil, err
	}

	set, err := s.workoutRepo.GetSet(ctx, setID, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	set.Reps = input.Reps
	set.Weight = input.Weight
	set.RPE = input.RPE
	set.Notes = input.Notes
	set.Warmup = input.Warmup
	if err := s.workoutRepo.UpdateSet(ctx, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	return set, nil
}

// DeleteSet removes a set without renumbering the remaining ones; the next
// quick-add continues from the running max.
func (s *workoutService) DeleteSet(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, workoutID, setID uuid.UUID) error {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return err
	}
	if _, err := s.getOwned(ctx, workoutID, ownerID); err != nil {
		return err
	}
	err = s.workoutRepo.DeleteSet(ctx, setID, workoutID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSetNotFound
	}
	return err
}

func (s *workoutService) getOwned(ctx context.Context, workoutID, ownerID uuid.UUID) (*domain.WorkoutSession, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// today returns the current date at midnight UTC.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
