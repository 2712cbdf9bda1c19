package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// gormWorkoutRepository implements repository.WorkoutRepository.
type gormWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new WorkoutSession repository backed by GORM.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &gormWorkoutRepository{db: db}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, workout *domain.WorkoutSession) error {
	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}
	for i := range workout.Sets {
		if workout.Sets[i].ID == uuid.Nil {
			workout.Sets[i].ID = uuid.New()
		}
		workout.Sets[i].WorkoutID = workout.ID
	}
	return translateError(r.db.WithContext(ctx).Create(workout).Error)
}

func (r *gormWorkoutRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.WorkoutSession, error) {
	var workout domain.WorkoutSession
	err := r.db.WithContext(ctx).
		Preload("Sets", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_id, set_number")
		}).
		First(&workout, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.WorkoutSession, error) {
	var workouts []domain.WorkoutSession
	q := r.db.WithContext(ctx).
		Preload("Sets").
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&workouts).Error; err != nil {
		return nil, translateError(err)
	}
	return workouts, nil
}

func (r *gormWorkoutRepository) Update(ctx context.Context, workout *domain.WorkoutSession) error {
	result := r.db.WithContext(ctx).Model(&domain.WorkoutSession{}).
		Where("id = ? AND owner_id = ?", workout.ID, workout.OwnerID).
		Updates(map[string]interface{}{
			"name":     workout.Name,
			"notes":    workout.Notes,
			"date":     workout.Date,
			"status":   workout.Status,
			"duration": workout.Duration,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormWorkoutRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", id, ownerID).
			Delete(&domain.WorkoutSession{})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return translateError(tx.Where("workout_id = ?", id).
			Delete(&domain.Set{}).Error)
	})
}

func (r *gormWorkoutRepository) CreateSet(ctx context.Context, set *domain.Set) error {
	if set.ID == uuid.Nil {
		set.ID = uuid.New()
	}
	return translateError(r.db.WithContext(ctx).Create(set).Error)
}

func (r *gormWorkoutRepository) GetSet(ctx context.Context, setID, workoutID uuid.UUID) (*domain.Set, error) {
	var set domain.Set
	err := r.db.WithContext(ctx).
		First(&set, "id = ? AND workout_id = ?", setID, workoutID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &set, nil
}

// MaxSetNumber returns the running max for the (workout, exercise) pair.
// Deleted numbers are never reissued because only the max matters.
func (r *gormWorkoutRepository) MaxSetNumber(ctx context.Context, workoutID, exerciseID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&domain.Set{}).
		Where("workout_id = ? AND exercise_id = ?", workoutID, exerciseID).
		Select("COALESCE(MAX(set_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, translateError(err)
	}
	return max, nil
}

func (r *gormWorkoutRepository) UpdateSet(ctx context.Context, set *domain.Set) error {
	result := r.db.WithContext(ctx).Model(&domain.Set{}).
		Where("id = ? AND workout_id = ?", set.ID, set.WorkoutID).
		Updates(map[string]interface{}{
			"reps":   set.Reps,
			"weight": set.Weight,
			"rpe":    set.RPE,
			"notes":  set.Notes,
			"warmup": set.Warmup,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormWorkoutRepository) DeleteSet(ctx context.Context, setID, workoutID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND workout_id = ?", setID, workoutID).
		Delete(&domain.Set{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
