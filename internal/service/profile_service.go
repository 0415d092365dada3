package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/model"
	"campusgate/internal/repository"
	"campusgate/internal/roles"
)

// ProfileInput carries the mutable student profile fields. Role,
// email, registration number and organizational scope are immutable
// after creation.
type ProfileInput struct {
	Name             string
	Gender           string
	DOB              string
	Mobile           string
	Address          string
	PhotoLink        string
	CGPA             decimal.Decimal
	Arrears          int
	HistoryOfArrears bool
	PlacementWilling bool
	Skills           string
}

// ProfileService serves the per-role dashboard views over approved
// accounts: a student's own record, and the staff/HOD listings and
// mutations within their department scope.
type ProfileService interface {
	Me(ctx context.Context, accountID uuid.UUID) (*model.Account, error)
	UpdateMe(ctx context.Context, accountID uuid.UUID, in ProfileInput) (*model.Account, error)
	// Students lists approved students of the actor's department.
	Students(ctx context.Context, actorID uuid.UUID) ([]model.Account, error)
	// ApprovedStaff lists approved staff of the actor's department.
	ApprovedStaff(ctx context.Context, actorID uuid.UUID) ([]model.Account, error)
	// UpdateStudent lets staff edit an approved student within scope.
	UpdateStudent(ctx context.Context, actorID, studentID uuid.UUID, in ProfileInput) (*model.Account, error)
	// RemoveStudent lets staff delete an approved student within scope.
	RemoveStudent(ctx context.Context, actorID, studentID uuid.UUID) error
	// RemoveStaff lets a HOD delete an approved staff member of their department.
	RemoveStaff(ctx context.Context, actorID, staffID uuid.UUID) error
}

type profileService struct {
	accounts repository.AccountRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(accounts repository.AccountRepository) ProfileService {
	return &profileService{accounts: accounts}
}

// Me returns the actor's own account.
func (s *profileService) Me(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

// UpdateMe applies profile edits to the actor's own account.
func (s *profileService) UpdateMe(ctx context.Context, accountID uuid.UUID, in ProfileInput) (*model.Account, error) {
	account, err := s.Me(ctx, accountID)
	if err != nil {
		return nil, err
	}
	applyProfile(account, in)
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return account, nil
}

// Students lists approved students of the actor's department.
func (s *profileService) Students(ctx context.Context, actorID uuid.UUID) ([]model.Account, error) {
	actor, err := s.departmentActor(ctx, actorID, roles.Staff, roles.HOD)
	if err != nil {
		return nil, err
	}
	return s.accounts.List(ctx, repository.AccountFilter{
		Role:         roles.Student,
		Status:       model.StatusApproved,
		DepartmentID: actor.DepartmentID,
	})
}

// ApprovedStaff lists approved staff of the actor's department.
func (s *profileService) ApprovedStaff(ctx context.Context, actorID uuid.UUID) ([]model.Account, error) {
	actor, err := s.departmentActor(ctx, actorID, roles.HOD)
	if err != nil {
		return nil, err
	}
	return s.accounts.List(ctx, repository.AccountFilter{
		Role:         roles.Staff,
		Status:       model.StatusApproved,
		DepartmentID: actor.DepartmentID,
	})
}

// UpdateStudent applies profile edits to a student in the actor's scope.
func (s *profileService) UpdateStudent(ctx context.Context, actorID, studentID uuid.UUID, in ProfileInput) (*model.Account, error) {
	student, err := s.studentInScope(ctx, actorID, studentID)
	if err != nil {
		return nil, err
	}
	applyProfile(student, in)
	if err := s.accounts.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	return student, nil
}

// RemoveStudent deletes an approved student in the actor's scope.
func (s *profileService) RemoveStudent(ctx context.Context, actorID, studentID uuid.UUID) error {
	student, err := s.studentInScope(ctx, actorID, studentID)
	if err != nil {
		return err
	}
	return s.accounts.Delete(ctx, student.ID)
}

// RemoveStaff deletes an approved staff member of the HOD's department.
func (s *profileService) RemoveStaff(ctx context.Context, actorID, staffID uuid.UUID) error {
	actor, err := s.departmentActor(ctx, actorID, roles.HOD)
	if err != nil {
		return err
	}
	staff, err := s.accounts.FindByID(ctx, staffID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("find staff: %w", err)
	}
	if staff.Role != roles.Staff || !sameDepartment(actor, staff) {
		return apperrors.ErrForbidden
	}
	return s.accounts.Delete(ctx, staff.ID)
}

// studentInScope loads a student and verifies the staff actor's
// department (and section, when the student has one) covers it.
func (s *profileService) studentInScope(ctx context.Context, actorID, studentID uuid.UUID) (*model.Account, error) {
	actor, err := s.departmentActor(ctx, actorID, roles.Staff)
	if err != nil {
		return nil, err
	}
	student, err := s.accounts.FindByID(ctx, studentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student.Role != roles.Student || !sameDepartment(actor, student) {
		return nil, apperrors.ErrForbidden
	}
	if student.SectionID != nil {
		if actor.SectionID == nil || *actor.SectionID != *student.SectionID {
			return nil, apperrors.ErrForbidden
		}
	}
	return student, nil
}

// departmentActor re-loads the actor and checks it is approved, holds
// one of the allowed roles and belongs to a department.
func (s *profileService) departmentActor(ctx context.Context, actorID uuid.UUID, allowed ...roles.Role) (*model.Account, error) {
	actor, err := s.accounts.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("find actor: %w", err)
	}
	if actor.ApprovalStatus != model.StatusApproved {
		return nil, apperrors.ErrForbidden
	}
	for _, role := range allowed {
		if actor.Role == role {
			if actor.DepartmentID == nil {
				return nil, apperrors.ErrForbidden
			}
			return actor, nil
		}
	}
	return nil, apperrors.ErrForbidden
}

func sameDepartment(a, b *model.Account) bool {
	return a.DepartmentID != nil && b.DepartmentID != nil && *a.DepartmentID == *b.DepartmentID
}

func applyProfile(account *model.Account, in ProfileInput) {
	if in.Name != "" {
		account.Name = in.Name
	}
	account.Gender = in.Gender
	account.DOB = in.DOB
	account.Mobile = in.Mobile
	account.Address = in.Address
	if in.PhotoLink != "" {
		account.PhotoLink = in.PhotoLink
	}
	account.CGPA = in.CGPA
	account.Arrears = in.Arrears
	account.HistoryOfArrears = in.HistoryOfArrears
	account.PlacementWilling = in.PlacementWilling
	account.Skills = in.Skills
}
