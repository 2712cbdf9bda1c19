package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound          = errors.New("workout plan not found")
	ErrDuplicatePlanExercise = errors.New("plan contains duplicate exercise references")
)

// PlanService manages reusable weekly workout plans. Every method takes the
// authenticated caller plus an optional target user; cross-user access goes
// through the access gate before any data is touched.
type PlanService interface {
	CreatePlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, name string, day *domain.Weekday, exerciseIDs []uuid.UUID) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID) (*domain.WorkoutPlan, error)
	// ListPlans returns plans sorted for the schedule view: by assigned day
	// (Monday first, unset last), ties broken by most recently updated.
	ListPlans(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID) ([]domain.WorkoutPlan, error)
	// UpdatePlan replaces plan metadata and, when exerciseIDs is non-nil,
	// the full exercise list, atomically.
	UpdatePlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID, name string, day *domain.Weekday, exerciseIDs []uuid.UUID) (*domain.WorkoutPlan, error)
	// AssignDay moves a plan to a different day bucket (nil = rest pool).
	AssignDay(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID, day *domain.Weekday) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID) error
}

// planService implements the PlanService interface.
type planService struct {
	planRepo     repository.PlanRepository
	exerciseRepo repository.ExerciseRepository
	access       AccessService
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, exerciseRepo repository.ExerciseRepository, access AccessService) PlanService {
	return &planService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		access:       access,
	}
}

func (s *planService) CreatePlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, name string, day *domain.Weekday, exerciseIDs []uuid.UUID) (*domain.WorkoutPlan, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidationFailed
	}
	if day != nil && !domain.ValidWeekday(*day) {
		return nil, ErrValidationFailed
	}
	slots, err := s.buildSlots(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		OwnerID:   ownerID,
		Name:      name,
		Day:       day,
		Exercises: slots,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID) (*domain.WorkoutPlan, error) {
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
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID) ([]domain.WorkoutPlan, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	plans, err := s.planRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	SortPlansForDisplay(plans)
	return plans, nil
}

// SortPlansForDisplay orders plans by day rank (Monday=1 .. Sunday=7,
// unset=8), ties broken by most-recently-updated first. The ordering lives
// here rather than in the store so it stays identical across drivers.
func SortPlansForDisplay(plans []domain.WorkoutPlan) {
	sort.SliceStable(plans, func(i, j int) bool {
		ri, rj := domain.DayRank(plans[i].Day), domain.DayRank(plans[j].Day)
		if ri != rj {
			return ri < rj
		}
		return plans[i].UpdatedAt.After(plans[j].UpdatedAt)
	})
}

func (s *planService) UpdatePlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID, name string, day *domain.Weekday, exerciseIDs []uuid.UUID) (*domain.WorkoutPlan, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidationFailed
	}
	if day != nil && !domain.ValidWeekday(*day) {
		return nil, ErrValidationFailed
	}

	var slots []domain.WorkoutPlanExercise
	if exerciseIDs != nil {
		slots, err = s.buildSlots(ctx, exerciseIDs)
		if err != nil {
			return nil, err
		}
	}

	plan := &domain.WorkoutPlan{
		ID:      planID,
		OwnerID: ownerID,
		Name:    name,
		Day:     day,
	}
	if err := s.planRepo.Update(ctx, plan, slots); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID, ownerID)
}

func (s *planService) AssignDay(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID, day *domain.Weekday) (*domain.WorkoutPlan, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if day != nil && !domain.ValidWeekday(*day) {
		return nil, ErrValidationFailed
	}
	existing, err := s.planRepo.GetByID(ctx, planID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	existing.Day = day
	if err := s.planRepo.Update(ctx, existing, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID, ownerID)
}

func (s *planService) DeletePlan(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID, planID uuid.UUID) error {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return err
	}
	err = s.planRepo.Delete(ctx, planID, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// buildSlots validates the exercise list and turns it into dense, zero-based
// plan slots. Duplicate exercise references are rejected here because the
// store does not enforce it.
func (s *planService) buildSlots(ctx context.Context, exerciseIDs []uuid.UUID) ([]domain.WorkoutPlanExercise, error) {
	seen := make(map[uuid.UUID]struct{}, len(exerciseIDs))
	slots := make([]domain.WorkoutPlanExercise, 0, len(exerciseIDs))
	for i, id := range exerciseIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicatePlanExercise
		}
		seen[id] = struct{}{}
		if _, err := s.exerciseRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
		slots = append(slots, domain.WorkoutPlanExercise{
			ExerciseID: id,
			Position:   i,
		})
	}
	return slots, nil
}
