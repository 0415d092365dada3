package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusgate/internal/auth"
	apperrors "campusgate/internal/errors"
	"campusgate/internal/model"
	"campusgate/internal/repository"
	"campusgate/internal/roles"
)

// ApprovalService drives the account approval state machine: pending
// accounts are approved or rejected by the role one step above them in
// the approval chain, within matching department/section scope.
//
// The actor is always re-loaded from the store; token claims are never
// the authorization source for these transitions.
type ApprovalService interface {
	Approve(ctx context.Context, actorID, targetID uuid.UUID) (*model.Account, error)
	Reject(ctx context.Context, actorID, targetID uuid.UUID) error
	// Pending lists the pending registrations the actor's role is
	// responsible for, narrowed to the actor's department where the
	// chain is department-scoped.
	Pending(ctx context.Context, actorID uuid.UUID) ([]model.Account, error)
}

type approvalService struct {
	accounts    repository.AccountRepository
	revocations auth.RevocationStoreInterface
}

// NewApprovalService creates a new approval service.
func NewApprovalService(accounts repository.AccountRepository, revocations auth.RevocationStoreInterface) ApprovalService {
	return &approvalService{accounts: accounts, revocations: revocations}
}

// Approve transitions a pending account to approved. The transition is
// a compare-and-swap in the store: of two concurrent approve/reject
// calls on the same account, exactly one succeeds and the other gets
// ErrInvalidState.
func (s *approvalService) Approve(ctx context.Context, actorID, targetID uuid.UUID) (*model.Account, error) {
	_, target, err := s.authorize(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	ok, err := s.accounts.ApproveIfPending(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("approve account: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidState
	}

	target.ApprovalStatus = model.StatusApproved
	return target, nil
}

// Reject permanently removes a pending account. Any session material
// already issued for the identity is revoked for the longest possible
// token lifetime.
func (s *approvalService) Reject(ctx context.Context, actorID, targetID uuid.UUID) error {
	if _, _, err := s.authorize(ctx, actorID, targetID); err != nil {
		return err
	}

	ok, err := s.accounts.DeleteIfPending(ctx, targetID)
	if err != nil {
		return fmt.Errorf("reject account: %w", err)
	}
	if !ok {
		return apperrors.ErrInvalidState
	}

	return s.revocations.RevokeSubject(ctx, targetID.String(), auth.TokenValidity)
}

// Pending lists pending registrations awaiting the actor.
func (s *approvalService) Pending(ctx context.Context, actorID uuid.UUID) ([]model.Account, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	filter := repository.AccountFilter{Status: model.StatusPending}
	switch actor.Role {
	case roles.Admin:
		filter.Role = roles.HOD
	case roles.HOD:
		filter.Role = roles.Staff
		filter.DepartmentID = actor.DepartmentID
	case roles.Staff:
		filter.Role = roles.Student
		filter.DepartmentID = actor.DepartmentID
	default:
		return nil, apperrors.ErrForbidden
	}

	return s.accounts.List(ctx, filter)
}

// authorize loads actor and target and verifies the approval-chain and
// scope rules. NotFound for an unknown target, Forbidden for a
// role/scope mismatch, InvalidState for a non-pending target.
func (s *approvalService) authorize(ctx context.Context, actorID, targetID uuid.UUID) (actor, target *model.Account, err error) {
	actor, err = s.loadActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	target, err = s.accounts.FindByID(ctx, targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("find target account: %w", err)
	}

	if !roles.CanApprove(actor.Role, actor.Scope(), target.Role, target.Scope()) {
		return nil, nil, apperrors.ErrForbidden
	}
	if target.ApprovalStatus != model.StatusPending {
		return nil, nil, apperrors.ErrInvalidState
	}
	return actor, target, nil
}

// loadActor re-derives the actor's current state from the store. A
// vanished or no-longer-approved actor is Forbidden regardless of what
// its token still claims.
func (s *approvalService) loadActor(ctx context.Context, actorID uuid.UUID) (*model.Account, error) {
	actor, err := s.accounts.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("find actor account: %w", err)
	}
	if actor.ApprovalStatus != model.StatusApproved {
		return nil, apperrors.ErrForbidden
	}
	return actor, nil
}
