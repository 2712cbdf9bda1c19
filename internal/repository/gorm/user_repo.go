package gorm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// gormUserRepository implements repository.UserRepository.
type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new User repository backed by GORM.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "lower(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *gormUserRepository) SearchByEmail(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]domain.User, error) {
	var users []domain.User
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("lower(email) LIKE ? AND id <> ?", pattern, excludeID).
		Order("email").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":       user.Name,
			"avatar_key": user.AvatarKey,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
