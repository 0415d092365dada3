package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/model"
	"campusgate/internal/repository"
)

// DirectoryService manages the department/section taxonomy accounts
// register under. Departments are Admin-managed; sections belong to
// exactly one department.
type DirectoryService interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
	CreateDepartment(ctx context.Context, name string) (*model.Department, error)
	// DeleteDepartment blocks while sections or accounts still
	// reference the department.
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	ListSections(ctx context.Context, departmentID uuid.UUID) ([]model.Section, error)
	CreateSection(ctx context.Context, departmentID uuid.UUID, name string) (*model.Section, error)
	// DeleteSection blocks while accounts still reference the section.
	DeleteSection(ctx context.Context, id uuid.UUID) error
}

type directoryService struct {
	departments repository.DepartmentRepository
	sections    repository.SectionRepository
	accounts    repository.AccountRepository
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(
	departments repository.DepartmentRepository,
	sections repository.SectionRepository,
	accounts repository.AccountRepository,
) DirectoryService {
	return &directoryService{
		departments: departments,
		sections:    sections,
		accounts:    accounts,
	}
}

// ListDepartments returns all departments.
func (s *directoryService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return s.departments.List(ctx)
}

// CreateDepartment creates a department with a unique name.
func (s *directoryService) CreateDepartment(ctx context.Context, name string) (*model.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: department name is required", apperrors.ErrValidation)
	}
	if existing, err := s.departments.FindByName(ctx, name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: department %q already exists", apperrors.ErrValidation, name)
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check department: %w", err)
	}

	department := &model.Department{Name: name}
	if err := s.departments.Create(ctx, department); err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return department, nil
}

// DeleteDepartment removes a department. Deletion is blocked, not
// cascaded, while sections or accounts still reference it: cascading
// would silently strip the approval scope off every account underneath.
func (s *directoryService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.departments.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("find department: %w", err)
	}

	sections, err := s.sections.CountByDepartment(ctx, id)
	if err != nil {
		return fmt.Errorf("count sections: %w", err)
	}
	accounts, err := s.accounts.Count(ctx, repository.AccountFilter{DepartmentID: &id})
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if sections > 0 || accounts > 0 {
		return apperrors.ErrDepartmentInUse
	}

	return s.departments.Delete(ctx, id)
}

// ListSections returns a department's sections.
func (s *directoryService) ListSections(ctx context.Context, departmentID uuid.UUID) ([]model.Section, error) {
	if _, err := s.departments.FindByID(ctx, departmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find department: %w", err)
	}
	return s.sections.ListByDepartment(ctx, departmentID)
}

// CreateSection creates a section under a department.
func (s *directoryService) CreateSection(ctx context.Context, departmentID uuid.UUID, name string) (*model.Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: section name is required", apperrors.ErrValidation)
	}
	if _, err := s.departments.FindByID(ctx, departmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find department: %w", err)
	}
	if existing, err := s.sections.FindByName(ctx, departmentID, name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: section %q already exists", apperrors.ErrValidation, name)
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check section: %w", err)
	}

	section := &model.Section{Name: name, DepartmentID: departmentID}
	if err := s.sections.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return section, nil
}

// DeleteSection removes a section unless accounts still reference it.
func (s *directoryService) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if _, err := s.sections.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("find section: %w", err)
	}

	accounts, err := s.accounts.Count(ctx, repository.AccountFilter{SectionID: &id})
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if accounts > 0 {
		return apperrors.ErrSectionInUse
	}

	return s.sections.Delete(ctx, id)
}
