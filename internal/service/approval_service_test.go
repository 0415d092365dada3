package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"campusgate/internal/auth"
	apperrors "campusgate/internal/errors"
	"campusgate/internal/model"
	"campusgate/internal/repository"
	"campusgate/internal/roles"
)

func approvedAccount(role roles.Role, dept, section *uuid.UUID) *model.Account {
	return &model.Account{
		ID:             uuid.New(),
		Role:           role,
		ApprovalStatus: model.StatusApproved,
		DepartmentID:   dept,
		SectionID:      section,
	}
}

func pendingAccount(role roles.Role, dept, section *uuid.UUID) *model.Account {
	account := approvedAccount(role, dept, section)
	account.ApprovalStatus = model.StatusPending
	return account
}

func TestApprovalService_Approve(t *testing.T) {
	cse := uuid.New()
	ece := uuid.New()
	sectionA := uuid.New()

	tests := []struct {
		name       string
		actor      *model.Account
		target     *model.Account
		casResult  bool
		wantErr    error
		skipCAS    bool
		targetMiss bool
	}{
		{
			name:   "hod approves pending staff of same department",
			actor:  approvedAccount(roles.HOD, &cse, nil),
			target: pendingAccount(roles.Staff, &cse, nil),

			casResult: true,
		},
		{
			name:      "staff approves pending student of same department and section",
			actor:     approvedAccount(roles.Staff, &cse, &sectionA),
			target:    pendingAccount(roles.Student, &cse, &sectionA),
			casResult: true,
		},
		{
			name:      "admin approves pending hod",
			actor:     approvedAccount(roles.Admin, nil, nil),
			target:    pendingAccount(roles.HOD, &ece, nil),
			casResult: true,
		},
		{
			name:    "hod of CSE cannot approve staff of ECE",
			actor:   approvedAccount(roles.HOD, &cse, nil),
			target:  pendingAccount(roles.Staff, &ece, nil),
			wantErr: apperrors.ErrForbidden,
			skipCAS: true,
		},
		{
			name:    "staff cannot approve staff",
			actor:   approvedAccount(roles.Staff, &cse, nil),
			target:  pendingAccount(roles.Staff, &cse, nil),
			wantErr: apperrors.ErrForbidden,
			skipCAS: true,
		},
		{
			name:    "already approved target is invalid state",
			actor:   approvedAccount(roles.HOD, &cse, nil),
			target:  approvedAccount(roles.Staff, &cse, nil),
			wantErr: apperrors.ErrInvalidState,
			skipCAS: true,
		},
		{
			name:      "losing the store race is invalid state",
			actor:     approvedAccount(roles.HOD, &cse, nil),
			target:    pendingAccount(roles.Staff, &cse, nil),
			casResult: false,
			wantErr:   apperrors.ErrInvalidState,
		},
		{
			name:       "unknown target is not found",
			actor:      approvedAccount(roles.HOD, &cse, nil),
			target:     pendingAccount(roles.Staff, &cse, nil),
			targetMiss: true,
			wantErr:    apperrors.ErrNotFound,
			skipCAS:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(MockAccountRepository)
			revocations := new(MockRevocationStore)
			svc := NewApprovalService(accounts, revocations)

			accounts.On("FindByID", mock.Anything, tt.actor.ID).Return(tt.actor, nil)
			if tt.targetMiss {
				accounts.On("FindByID", mock.Anything, tt.target.ID).Return(nil, gorm.ErrRecordNotFound)
			} else {
				accounts.On("FindByID", mock.Anything, tt.target.ID).Return(tt.target, nil)
			}
			if !tt.skipCAS {
				accounts.On("ApproveIfPending", mock.Anything, tt.target.ID).Return(tt.casResult, nil)
			}

			account, err := svc.Approve(context.Background(), tt.actor.ID, tt.target.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusApproved, account.ApprovalStatus)
			}
			accounts.AssertExpectations(t)
		})
	}
}

func TestApprovalService_ApproveTwiceFailsSecondTime(t *testing.T) {
	cse := uuid.New()
	actor := approvedAccount(roles.HOD, &cse, nil)
	target := pendingAccount(roles.Staff, &cse, nil)

	accounts := new(MockAccountRepository)
	revocations := new(MockRevocationStore)
	svc := NewApprovalService(accounts, revocations)

	accounts.On("FindByID", mock.Anything, actor.ID).Return(actor, nil)
	accounts.On("FindByID", mock.Anything, target.ID).Return(target, nil).Once()
	accounts.On("ApproveIfPending", mock.Anything, target.ID).Return(true, nil).Once()

	_, err := svc.Approve(context.Background(), actor.ID, target.ID)
	assert.NoError(t, err)

	// The second read observes the approved state.
	approved := approvedAccount(roles.Staff, &cse, nil)
	approved.ID = target.ID
	accounts.On("FindByID", mock.Anything, target.ID).Return(approved, nil)

	_, err = svc.Approve(context.Background(), actor.ID, target.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestApprovalService_UnapprovedActorIsForbidden(t *testing.T) {
	cse := uuid.New()
	actor := pendingAccount(roles.HOD, &cse, nil)
	target := pendingAccount(roles.Staff, &cse, nil)

	accounts := new(MockAccountRepository)
	revocations := new(MockRevocationStore)
	svc := NewApprovalService(accounts, revocations)

	accounts.On("FindByID", mock.Anything, actor.ID).Return(actor, nil)

	_, err := svc.Approve(context.Background(), actor.ID, target.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestApprovalService_RejectDeletesAndRevokes(t *testing.T) {
	cse := uuid.New()
	actor := approvedAccount(roles.HOD, &cse, nil)
	target := pendingAccount(roles.Staff, &cse, nil)

	accounts := new(MockAccountRepository)
	revocations := new(MockRevocationStore)
	svc := NewApprovalService(accounts, revocations)

	accounts.On("FindByID", mock.Anything, actor.ID).Return(actor, nil)
	accounts.On("FindByID", mock.Anything, target.ID).Return(target, nil)
	accounts.On("DeleteIfPending", mock.Anything, target.ID).Return(true, nil)
	revocations.On("RevokeSubject", mock.Anything, target.ID.String(), auth.TokenValidity).Return(nil)

	err := svc.Reject(context.Background(), actor.ID, target.ID)
	assert.NoError(t, err)
	accounts.AssertExpectations(t)
	revocations.AssertExpectations(t)
}

func TestApprovalService_Pending(t *testing.T) {
	cse := uuid.New()

	tests := []struct {
		name       string
		actor      *model.Account
		wantFilter repository.AccountFilter
		wantErr    error
	}{
		{
			name:  "admin sees pending hods",
			actor: approvedAccount(roles.Admin, nil, nil),
			wantFilter: repository.AccountFilter{
				Role: roles.HOD, Status: model.StatusPending,
			},
		},
		{
			name:  "hod sees pending staff of department",
			actor: approvedAccount(roles.HOD, &cse, nil),
			wantFilter: repository.AccountFilter{
				Role: roles.Staff, Status: model.StatusPending, DepartmentID: &cse,
			},
		},
		{
			name:  "staff sees pending students of department",
			actor: approvedAccount(roles.Staff, &cse, nil),
			wantFilter: repository.AccountFilter{
				Role: roles.Student, Status: model.StatusPending, DepartmentID: &cse,
			},
		},
		{
			name:    "student has no approval queue",
			actor:   approvedAccount(roles.Student, &cse, nil),
			wantErr: apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(MockAccountRepository)
			svc := NewApprovalService(accounts, new(MockRevocationStore))

			accounts.On("FindByID", mock.Anything, tt.actor.ID).Return(tt.actor, nil)
			if tt.wantErr == nil {
				accounts.On("List", mock.Anything, tt.wantFilter).Return([]model.Account{}, nil)
			}

			_, err := svc.Pending(context.Background(), tt.actor.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				accounts.AssertExpectations(t)
			}
		})
	}
}

// casAccountRepo is a functional in-memory repository exercising the
// compare-and-swap contract under real concurrency.
type casAccountRepo struct {
	repository.AccountRepository

	mu      sync.Mutex
	account *model.Account
	actor   *model.Account
	deleted bool
}

func (r *casAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == r.actor.ID {
		return r.actor, nil
	}
	if r.deleted || id != r.account.ID {
		return nil, gorm.ErrRecordNotFound
	}
	snapshot := *r.account
	return &snapshot, nil
}

func (r *casAccountRepo) ApproveIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted || r.account.ApprovalStatus != model.StatusPending {
		return false, nil
	}
	r.account.ApprovalStatus = model.StatusApproved
	return true, nil
}

func (r *casAccountRepo) DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted || r.account.ApprovalStatus != model.StatusPending {
		return false, nil
	}
	r.deleted = true
	return true, nil
}

func TestApprovalService_ConcurrentApproveRejectHasOneWinner(t *testing.T) {
	cse := uuid.New()
	actor := approvedAccount(roles.HOD, &cse, nil)
	target := pendingAccount(roles.Staff, &cse, nil)

	for i := 0; i < 50; i++ {
		fresh := *target
		repo := &casAccountRepo{account: &fresh, actor: actor}

		revocations := new(MockRevocationStore)
		revocations.On("RevokeSubject", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		svc := NewApprovalService(repo, revocations)

		var wg sync.WaitGroup
		var approveErr, rejectErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, approveErr = svc.Approve(context.Background(), actor.ID, target.ID)
		}()
		go func() {
			defer wg.Done()
			rejectErr = svc.Reject(context.Background(), actor.ID, target.ID)
		}()
		wg.Wait()

		// Exactly one of the two transitions wins; the account ends up
		// either approved or deleted, never both.
		wins := 0
		if approveErr == nil {
			wins++
			assert.Equal(t, model.StatusApproved, repo.account.ApprovalStatus)
			assert.False(t, repo.deleted)
		}
		if rejectErr == nil {
			wins++
			assert.True(t, repo.deleted)
		}
		assert.Equal(t, 1, wins, "exactly one concurrent transition must succeed")

		// The loser observes either the swapped status or, when the
		// reject already deleted the row, a vanished account.
		for _, err := range []error{approveErr, rejectErr} {
			if err != nil {
				failed := errors.Is(err, apperrors.ErrInvalidState) || errors.Is(err, apperrors.ErrNotFound)
				assert.True(t, failed, "unexpected loser error: %v", err)
			}
		}
	}
}
