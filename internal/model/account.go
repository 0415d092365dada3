package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"campusgate/internal/roles"
)

// ApprovalStatus is the lifecycle state of an account's registration
// request. There is no persisted "rejected" state: a rejected account
// is removed from the store.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
)

// Account represents a registered identity with a role, approval
// status and organizational scope.
type Account struct {
	ID             uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name           string         `json:"name" gorm:"size:255;not null"`
	Email          string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role           roles.Role     `json:"role" gorm:"size:20;not null;index"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus" gorm:"size:20;not null;default:'pending';index"`

	// Organizational scope. Absent for Admin and Principal.
	DepartmentID *uuid.UUID `json:"departmentId,omitempty" gorm:"type:char(36);index"`
	SectionID    *uuid.UUID `json:"sectionId,omitempty" gorm:"type:char(36);index"`

	// RegNo is the student registration number, usable as a login
	// identifier. Unset for non-student roles.
	RegNo     *string `json:"regNo,omitempty" gorm:"size:32;uniqueIndex"`
	PhotoLink string  `json:"photoLink,omitempty" gorm:"size:512"`

	// Student profile, editable from the student and staff dashboards.
	Gender           string          `json:"gender,omitempty" gorm:"size:16"`
	DOB              string          `json:"dob,omitempty" gorm:"size:10"`
	Mobile           string          `json:"mobile,omitempty" gorm:"size:20"`
	Address          string          `json:"address,omitempty" gorm:"size:512"`
	CGPA             decimal.Decimal `json:"cgpa" gorm:"type:decimal(4,2);default:0"`
	Arrears          int             `json:"arrears"`
	HistoryOfArrears bool            `json:"historyArrears"`
	PlacementWilling bool            `json:"placement"`
	Skills           string          `json:"skills,omitempty" gorm:"size:512"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Section    *Section    `json:"section,omitempty" gorm:"foreignKey:SectionID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Scope returns the account's (department, section) approval scope.
func (a *Account) Scope() roles.Scope {
	return roles.Scope{DepartmentID: a.DepartmentID, SectionID: a.SectionID}
}
