package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"gym-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	// ErrAccessDenied is returned when a caller asks to act as another user
	// without a partner grant from that user.
	ErrAccessDenied = errors.New("access denied: no partner grant from target user")
)

// AccessService answers "may the caller act as user X?" and is consulted by
// every domain action that accepts an optional target user.
type AccessService interface {
	// CheckAccess returns true when caller and target are the same user, or
	// when the target has granted the caller viewer access. A false result
	// is not an error; callers convert it into an authorization failure.
	CheckAccess(ctx context.Context, callerID, targetID uuid.UUID) (bool, error)

	// ResolveOwner applies the effective-user substitution: a nil or
	// caller-equal target resolves to the caller; otherwise the partner
	// grant is checked and the target becomes the effective owner. Denial
	// surfaces as ErrAccessDenied, never as an empty result.
	ResolveOwner(ctx context.Context, callerID uuid.UUID, targetID *uuid.UUID) (uuid.UUID, error)
}

// accessService implements the AccessService interface.
type accessService struct {
	partnerRepo repository.PartnerRepository
}

// NewAccessService creates a new instance of accessService.
func NewAccessService(partnerRepo repository.PartnerRepository) AccessService {
	return &accessService{partnerRepo: partnerRepo}
}

func (s *accessService) CheckAccess(ctx context.Context, callerID, targetID uuid.UUID) (bool, error) {
	if callerID == uuid.Nil {
		return false, nil
	}
	// Self-access is always allowed.
	if callerID == targetID {
		return true, nil
	}
	// Otherwise the target must have granted the caller viewer access:
	// edge direction is owner=target, viewer=caller.
	return s.partnerRepo.Exists(ctx, targetID, callerID)
}

func (s *accessService) ResolveOwner(ctx context.Context, callerID uuid.UUID, targetID *uuid.UUID) (uuid.UUID, error) {
	if callerID == uuid.Nil {
		return uuid.Nil, ErrAccessDenied
	}
	if targetID == nil || *targetID == callerID || *targetID == uuid.Nil {
		return callerID, nil
	}
	ok, err := s.CheckAccess(ctx, callerID, *targetID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, ErrAccessDenied
	}
	return *targetID, nil
}
