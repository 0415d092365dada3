package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/model"
	"campusgate/internal/repository"
	"campusgate/internal/roles"
)

// StaffStats are the counters shown on the staff dashboard.
type StaffStats struct {
	Students        int64 `json:"students"`
	PendingStudents int64 `json:"pendingStudents"`
}

// HodStats are the counters shown on the HOD dashboard.
type HodStats struct {
	Staff        int64 `json:"staff"`
	PendingStaff int64 `json:"pendingStaff"`
	Students     int64 `json:"students"`
}

// DepartmentOverview is one row of the principal's overview.
type DepartmentOverview struct {
	Department string `json:"department"`
	Students   int64  `json:"students"`
	Staff      int64  `json:"staff"`
	HODs       int64  `json:"hods"`
}

// OverviewService aggregates per-department counts for the staff, HOD
// and principal dashboards. Read-only; everything it reports is
// observable through the listing endpoints as well.
type OverviewService interface {
	StaffStats(ctx context.Context, actorID uuid.UUID) (*StaffStats, error)
	HodStats(ctx context.Context, actorID uuid.UUID) (*HodStats, error)
	Overview(ctx context.Context) ([]DepartmentOverview, error)
}

type overviewService struct {
	accounts    repository.AccountRepository
	departments repository.DepartmentRepository
}

// NewOverviewService creates a new overview service.
func NewOverviewService(accounts repository.AccountRepository, departments repository.DepartmentRepository) OverviewService {
	return &overviewService{accounts: accounts, departments: departments}
}

// StaffStats returns student counts for the staff member's department.
func (s *overviewService) StaffStats(ctx context.Context, actorID uuid.UUID) (*StaffStats, error) {
	actor, err := s.actor(ctx, actorID, roles.Staff)
	if err != nil {
		return nil, err
	}

	students, err := s.accounts.Count(ctx, repository.AccountFilter{
		Role: roles.Student, Status: model.StatusApproved, DepartmentID: actor.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	pending, err := s.accounts.Count(ctx, repository.AccountFilter{
		Role: roles.Student, Status: model.StatusPending, DepartmentID: actor.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("count pending students: %w", err)
	}

	return &StaffStats{Students: students, PendingStudents: pending}, nil
}

// HodStats returns staff and student counts for the HOD's department.
func (s *overviewService) HodStats(ctx context.Context, actorID uuid.UUID) (*HodStats, error) {
	actor, err := s.actor(ctx, actorID, roles.HOD)
	if err != nil {
		return nil, err
	}

	staff, err := s.accounts.Count(ctx, repository.AccountFilter{
		Role: roles.Staff, Status: model.StatusApproved, DepartmentID: actor.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("count staff: %w", err)
	}
	pending, err := s.accounts.Count(ctx, repository.AccountFilter{
		Role: roles.Staff, Status: model.StatusPending, DepartmentID: actor.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("count pending staff: %w", err)
	}
	students, err := s.accounts.Count(ctx, repository.AccountFilter{
		Role: roles.Student, Status: model.StatusApproved, DepartmentID: actor.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}

	return &HodStats{Staff: staff, PendingStaff: pending, Students: students}, nil
}

// Overview returns per-department approved headcounts for the
// principal dashboard.
func (s *overviewService) Overview(ctx context.Context) ([]DepartmentOverview, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}

	out := make([]DepartmentOverview, 0, len(departments))
	for i := range departments {
		dept := departments[i]
		row := DepartmentOverview{Department: dept.Name}

		if row.Students, err = s.accounts.Count(ctx, repository.AccountFilter{
			Role: roles.Student, Status: model.StatusApproved, DepartmentID: &dept.ID,
		}); err != nil {
			return nil, fmt.Errorf("count students: %w", err)
		}
		if row.Staff, err = s.accounts.Count(ctx, repository.AccountFilter{
			Role: roles.Staff, Status: model.StatusApproved, DepartmentID: &dept.ID,
		}); err != nil {
			return nil, fmt.Errorf("count staff: %w", err)
		}
		if row.HODs, err = s.accounts.Count(ctx, repository.AccountFilter{
			Role: roles.HOD, Status: model.StatusApproved, DepartmentID: &dept.ID,
		}); err != nil {
			return nil, fmt.Errorf("count hods: %w", err)
		}

		out = append(out, row)
	}
	return out, nil
}

func (s *overviewService) actor(ctx context.Context, actorID uuid.UUID, required roles.Role) (*model.Account, error) {
	actor, err := s.accounts.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("find actor: %w", err)
	}
	if actor.Role != required || actor.ApprovalStatus != model.StatusApproved || actor.DepartmentID == nil {
		return nil, apperrors.ErrForbidden
	}
	return actor, nil
}
