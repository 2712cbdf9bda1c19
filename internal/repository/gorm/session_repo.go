package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// gormSessionRepository implements repository.SessionRepository.
type gormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new login session repository backed by GORM.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return translateError(r.db.WithContext(ctx).Create(session).Error)
}

func (r *gormSessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

func (r *gormSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.Session{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormSessionRepository) DeleteExpired(ctx context.Context) error {
	return translateError(r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&domain.Session{}).Error)
}
