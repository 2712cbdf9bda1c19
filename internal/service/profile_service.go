package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
	"gym-tracker/internal/storage"
)

// AvatarUpload is a presigned upload slot for a new avatar.
type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ProfileService covers the profile fields a user may edit: display name
// and avatar. Everything else on the account belongs to the identity
// provider.
type ProfileService interface {
	GetProfile(ctx context.Context, callerID uuid.UUID) (*domain.User, error)
	UpdateName(ctx context.Context, callerID uuid.UUID, name string) (*domain.User, error)
	// RequestAvatarUpload returns a presigned PUT URL; the client uploads
	// directly and then confirms with ConfirmAvatar.
	RequestAvatarUpload(ctx context.Context, callerID uuid.UUID, contentType string) (*AvatarUpload, error)
	ConfirmAvatar(ctx context.Context, callerID uuid.UUID, objectKey string) (*domain.User, error)
	// AvatarURL resolves a user's stored avatar key to a presigned GET URL,
	// or "" when no avatar is set.
	AvatarURL(ctx context.Context, user *domain.User) (string, error)
}

// profileService implements the ProfileService interface.
type profileService struct {
	userRepo repository.UserRepository
	avatars  storage.AvatarStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository, avatars storage.AvatarStorage) ProfileService {
	return &profileService{
		userRepo: userRepo,
		avatars:  avatars,
	}
}

func (s *profileService) GetProfile(ctx context.Context, callerID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) UpdateName(ctx context.Context, callerID uuid.UUID, name string) (*domain.User, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	user, err := s.GetProfile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *profileService) RequestAvatarUpload(ctx context.Context, callerID uuid.UUID, contentType string) (*AvatarUpload, error) {
	if contentType == "" {
		contentType = "image/png"
	}
	key := fmt.Sprintf("avatars/%s/%s", callerID, uuid.NewString())
	uploadURL, err := s.avatars.PresignUpload(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &AvatarUpload{UploadURL: uploadURL, ObjectKey: key}, nil
}

func (s *profileService) ConfirmAvatar(ctx context.Context, callerID uuid.UUID, objectKey string) (*domain.User, error) {
	if objectKey == "" {
		return nil, ErrValidationFailed
	}
	user, err := s.GetProfile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user.AvatarKey != "" && user.AvatarKey != objectKey {
		// Replaced avatars are cleaned up best effort.
		_ = s.avatars.DeleteObject(ctx, user.AvatarKey)
	}
	user.AvatarKey = objectKey
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *profileService) AvatarURL(ctx context.Context, user *domain.User) (string, error) {
	if user.AvatarKey == "" {
		return "", nil
	}
	return s.avatars.PresignDownload(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
}
