package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusgate/internal/model"
	"campusgate/internal/roles"
)

// AccountFilter narrows account listings and counts. Zero-valued
// fields are ignored.
type AccountFilter struct {
	Role         roles.Role
	Status       model.ApprovalStatus
	DepartmentID *uuid.UUID
	SectionID    *uuid.UUID
}

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByRegNo(ctx context.Context, regNo string) (*model.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]model.Account, error)
	Count(ctx context.Context, filter AccountFilter) (int64, error)
	// ApproveIfPending flips approval_status pending -> approved in a
	// single guarded statement. Returns false when the account was not
	// pending, including when a concurrent call won the race.
	ApproveIfPending(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteIfPending removes a pending account in a single guarded
	// statement, with the same race semantics as ApproveIfPending.
	DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Delete removes an account.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Account{}).Error
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail finds an account by email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByRegNo finds a student account by registration number.
func (r *accountRepository) FindByRegNo(ctx context.Context, regNo string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("reg_no = ?", regNo).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// List returns accounts matching the filter.
func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.filtered(ctx, filter).Order("created_at").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Count returns the number of accounts matching the filter.
func (r *accountRepository) Count(ctx context.Context, filter AccountFilter) (int64, error) {
	var n int64
	if err := r.filtered(ctx, filter).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ApproveIfPending transitions pending -> approved via compare-and-swap
// on approval_status so that concurrent approve/reject calls on the
// same account yield exactly one winner.
func (r *accountRepository) ApproveIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND approval_status = ?", id, model.StatusPending).
		Update("approval_status", model.StatusApproved)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteIfPending removes a pending account, guarded by the same
// compare-and-swap condition as ApproveIfPending.
func (r *accountRepository) DeleteIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND approval_status = ?", id, model.StatusPending).
		Delete(&model.Account{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *accountRepository) filtered(ctx context.Context, filter AccountFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Account{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		q = q.Where("approval_status = ?", filter.Status)
	}
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.SectionID != nil {
		q = q.Where("section_id = ?", *filter.SectionID)
	}
	return q
}
