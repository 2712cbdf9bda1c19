package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// gormPartnerRepository implements repository.PartnerRepository.
type gormPartnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository creates a new Partner repository backed by GORM.
func NewPartnerRepository(db *gorm.DB) repository.PartnerRepository {
	return &gormPartnerRepository{db: db}
}

func (r *gormPartnerRepository) Create(ctx context.Context, partner *domain.Partner) error {
	if partner.ID == uuid.Nil {
		partner.ID = uuid.New()
	}
	return translateError(r.db.WithContext(ctx).Create(partner).Error)
}

func (r *gormPartnerRepository) Exists(ctx context.Context, ownerID, viewerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Partner{}).
		Where("owner_id = ? AND viewer_id = ?", ownerID, viewerID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *gormPartnerRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Partner, error) {
	var partners []domain.Partner
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&partners).Error
	if err != nil {
		return nil, translateError(err)
	}
	return partners, nil
}

func (r *gormPartnerRepository) ListByViewer(ctx context.Context, viewerID uuid.UUID) ([]domain.Partner, error) {
	var partners []domain.Partner
	err := r.db.WithContext(ctx).
		Where("viewer_id = ?", viewerID).
		Order("created_at").
		Find(&partners).Error
	if err != nil {
		return nil, translateError(err)
	}
	return partners, nil
}

func (r *gormPartnerRepository) Delete(ctx context.Context, ownerID, viewerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND viewer_id = ?", ownerID, viewerID).
		Delete(&domain.Partner{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
