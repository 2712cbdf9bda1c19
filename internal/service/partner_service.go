package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	ErrPartnerUserNotFound = errors.New("no user found with this email")
	ErrSelfPartner         = errors.New("cannot invite yourself as a partner")
	ErrPartnerExists       = errors.New("this user is already a partner")
	ErrPartnerNotFound     = errors.New("partner grant not found")
)

// minSearchQueryLen is the shortest email query searchUsers acts on;
// anything shorter returns an empty list without touching the store.
const minSearchQueryLen = 3

// maxSearchResults caps user search output.
const maxSearchResults = 5

// PartnerList is the two disjoint views of the partner relation from one
// user's perspective.
type PartnerList struct {
	// MyPartners are users the caller has granted viewer access to.
	MyPartners []domain.User
	// ManagedAccounts are users who granted the caller viewer access.
	ManagedAccounts []domain.User
}

// PartnerService manages directed access grants between users.
type PartnerService interface {
	SearchUsers(ctx context.Context, callerID uuid.UUID, query string) ([]domain.User, error)
	// InvitePartner grants the user resolved by email viewer access to the
	// CALLER's data (owner=caller, viewer=resolved user).
	InvitePartner(ctx context.Context, callerID uuid.UUID, email string) (*domain.Partner, error)
	// RemovePartner revokes the grant the caller gave viewerUserID. The
	// parameter is the viewer's user ID, not a partner-row ID.
	RemovePartner(ctx context.Context, callerID, viewerUserID uuid.UUID) error
	GetPartners(ctx context.Context, callerID uuid.UUID) (*PartnerList, error)
}

// partnerService implements the PartnerService interface.
type partnerService struct {
	partnerRepo repository.PartnerRepository
	userRepo    repository.UserRepository
}

// NewPartnerService creates a new instance of partnerService.
func NewPartnerService(partnerRepo repository.PartnerRepository, userRepo repository.UserRepository) PartnerService {
	return &partnerService{
		partnerRepo: partnerRepo,
		userRepo:    userRepo,
	}
}

func (s *partnerService) SearchUsers(ctx context.Context, callerID uuid.UUID, query string) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchQueryLen {
		return []domain.User{}, nil
	}
	return s.userRepo.SearchByEmail(ctx, query, callerID, maxSearchResults)
}

func (s *partnerService) InvitePartner(ctx context.Context, callerID uuid.UUID, email string) (*domain.Partner, error) {
	// 1. Resolve the email to a user.
	target, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPartnerUserNotFound
		}
		return nil, err
	}

	// 2. Self-grants are rejected regardless of edge state.
	if target.ID == callerID {
		return nil, ErrSelfPartner
	}

	// 3. The edge is unique per (owner, viewer) pair.
	exists, err := s.partnerRepo.Exists(ctx, callerID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPartnerExists
	}

	// 4. Inviting a partner grants THEM access to the caller's data.
	partner := &domain.Partner{
		OwnerID:  callerID,
		ViewerID: target.ID,
	}
	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPartnerExists
		}
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) RemovePartner(ctx context.Context, callerID, viewerUserID uuid.UUID) error {
	err := s.partnerRepo.Delete(ctx, callerID, viewerUserID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPartnerNotFound
	}
	return err
}

func (s *partnerService) GetPartners(ctx context.Context, callerID uuid.UUID) (*PartnerList, error) {
	granted, err := s.partnerRepo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	received, err := s.partnerRepo.ListByViewer(ctx, callerID)
	if err != nil {
		return nil, err
	}

	list := &PartnerList{
		MyPartners:      make([]domain.User, 0, len(granted)),
		ManagedAccounts: make([]domain.User, 0, len(received)),
	}
	for _, edge := range granted {
		user, err := s.userRepo.GetByID(ctx, edge.ViewerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // stale edge, user gone
			}
			return nil, err
		}
		list.MyPartners = append(list.MyPartners, *user)
	}
	for _, edge := range received {
		user, err := s.userRepo.GetByID(ctx, edge.OwnerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		list.ManagedAccounts = append(list.ManagedAccounts, *user)
	}
	return list, nil
}
