package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section is a subdivision of exactly one Department. A department may
// have zero, one or many sections; when it has at most one, clients
// must not force registrants to choose.
type Section struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_section_dept_name"`
	DepartmentID uuid.UUID `json:"departmentId" gorm:"type:char(36);not null;uniqueIndex:idx_section_dept_name;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
