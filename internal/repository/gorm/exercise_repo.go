package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// gormExerciseRepository implements repository.ExerciseRepository.
type gormExerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a new Exercise repository backed by GORM.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &gormExerciseRepository{db: db}
}

func (r *gormExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	return translateError(r.db.WithContext(ctx).Create(exercise).Error)
}

// GetByID is unscoped: the exercise library is shared read.
func (r *gormExerciseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.db.WithContext(ctx).Order("name").Find(&exercises).Error
	if err != nil {
		return nil, translateError(err)
	}
	return exercises, nil
}

// Update writes through the compound (id, owner_id) filter so a non-owner
// update lands on zero rows and reports not found.
func (r *gormExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	result := r.db.WithContext(ctx).Model(&domain.Exercise{}).
		Where("id = ? AND owner_id = ?", exercise.ID, exercise.OwnerID).
		Updates(map[string]interface{}{
			"name":        exercise.Name,
			"category":    exercise.Category,
			"description": exercise.Description,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormExerciseRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Exercise{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
