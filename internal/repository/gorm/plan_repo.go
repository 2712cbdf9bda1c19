package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// gormPlanRepository implements repository.PlanRepository.
type gormPlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new WorkoutPlan repository backed by GORM.
func NewPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &gormPlanRepository{db: db}
}

func (r *gormPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	for i := range plan.Exercises {
		if plan.Exercises[i].ID == uuid.Nil {
			plan.Exercises[i].ID = uuid.New()
		}
		plan.Exercises[i].PlanID = plan.ID
	}
	return translateError(r.db.WithContext(ctx).Create(plan).Error)
}

func (r *gormPlanRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&plan, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &plan, nil
}

func (r *gormPlanRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.WorkoutPlan, error) {
	var plans []domain.WorkoutPlan
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("owner_id = ?", ownerID).
		Find(&plans).Error
	if err != nil {
		return nil, translateError(err)
	}
	return plans, nil
}

// Update persists plan metadata and, when exercises is non-nil, replaces the
// full exercise list. Both writes happen in one transaction so a partially
// replaced list is never observable.
func (r *gormPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan, exercises []domain.WorkoutPlanExercise) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.WorkoutPlan{}).
			Where("id = ? AND owner_id = ?", plan.ID, plan.OwnerID).
			Updates(map[string]interface{}{
				"name": plan.Name,
				"day":  plan.Day,
			})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}

		if exercises == nil {
			return nil
		}

		if err := tx.Where("plan_id = ?", plan.ID).
			Delete(&domain.WorkoutPlanExercise{}).Error; err != nil {
			return translateError(err)
		}
		for i := range exercises {
			if exercises[i].ID == uuid.Nil {
				exercises[i].ID = uuid.New()
			}
			exercises[i].PlanID = plan.ID
		}
		if len(exercises) > 0 {
			if err := tx.Create(&exercises).Error; err != nil {
				return translateError(err)
			}
		}
		return nil
	})
}

func (r *gormPlanRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", id, ownerID).
			Delete(&domain.WorkoutPlan{})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		// sqlite builds may run without foreign_keys, so the cascade is
		// done explicitly as well.
		return translateError(tx.Where("plan_id = ?", id).
			Delete(&domain.WorkoutPlanExercise{}).Error)
	})
}
