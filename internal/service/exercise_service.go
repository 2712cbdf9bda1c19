package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("validation failed")
)

// ExerciseService manages the shared exercise library: every authenticated
// user reads the whole library, only the creating user writes.
type ExerciseService interface {
	CreateExercise(ctx context.Context, callerID uuid.UUID, name string, category domain.ExerciseCategory, description string) (*domain.Exercise, error)
	GetExercise(ctx context.Context, exerciseID uuid.UUID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, callerID, exerciseID uuid.UUID, name string, category domain.ExerciseCategory, description string) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, callerID, exerciseID uuid.UUID) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) CreateExercise(ctx context.Context, callerID uuid.UUID, name string, category domain.ExerciseCategory, description string) (*domain.Exercise, error) {
	if name == "" || !domain.ValidCategory(category) {
		return nil, ErrValidationFailed
	}
	exercise := &domain.Exercise{
		OwnerID:     callerID,
		Name:        name,
		Category:    category,
		Description: description,
	}
	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) GetExercise(ctx context.Context, exerciseID uuid.UUID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// UpdateExercise writes through the compound (id, owner) filter, so a caller
// editing someone else's exercise gets not-found rather than a separate
// permission error.
func (s *exerciseService) UpdateExercise(ctx context.Context, callerID, exerciseID uuid.UUID, name string, category domain.ExerciseCategory, description string) (*domain.Exercise, error) {
	if name == "" || !domain.ValidCategory(category) {
		return nil, ErrValidationFailed
	}
	exercise := &domain.Exercise{
		ID:          exerciseID,
		OwnerID:     callerID,
		Name:        name,
		Category:    category,
		Description: description,
	}
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

func (s *exerciseService) DeleteExercise(ctx context.Context, callerID, exerciseID uuid.UUID) error {
	err := s.exerciseRepo.Delete(ctx, exerciseID, callerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}
