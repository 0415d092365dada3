package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusgate/internal/model"
)

// SectionRepository defines section persistence operations.
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Section, error)
	FindByName(ctx context.Context, departmentID uuid.UUID, name string) (*model.Section, error)
	ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]model.Section, error)
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
}

type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository creates a new section repository.
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

// Create creates a new section.
func (r *sectionRepository) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

// Delete removes a section.
func (r *sectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Section{}).Error
}

// FindByID finds a section by ID.
func (r *sectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Section, error) {
	var section model.Section
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// FindByName finds a section by name within a department.
func (r *sectionRepository) FindByName(ctx context.Context, departmentID uuid.UUID, name string) (*model.Section, error) {
	var section model.Section
	if err := r.db.WithContext(ctx).
		Where("department_id = ? AND name = ?", departmentID, name).
		First(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// ListByDepartment returns a department's sections ordered by name.
func (r *sectionRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]model.Section, error) {
	var sections []model.Section
	if err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("name").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// CountByDepartment returns the number of sections in a department.
func (r *sectionRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Section{}).
		Where("department_id = ?", departmentID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
