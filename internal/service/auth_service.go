package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusgate/internal/auth"
	apperrors "campusgate/internal/errors"
	"campusgate/internal/model"
	"campusgate/internal/repository"
	"campusgate/internal/roles"
)

const bcryptCost = 10

// RegisterInput is a registration request after client-side checks.
// Department and Section carry names as shown in the registration
// form's dropdowns; resolution to IDs happens here.
type RegisterInput struct {
	Role            roles.Role
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Department      string
	Section         string
	RegNo           string
	PhotoLink       string
}

// AuthService handles registration and session issuance.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.Account, error)
	// Provision creates a pre-approved Admin or Principal account.
	// Not reachable through the HTTP API; used by the seed command.
	Provision(ctx context.Context, role roles.Role, name, email, password string) (*model.Account, error)
	// Login accepts an email or a student registration number as the
	// identifier. Only approved accounts can log in.
	Login(ctx context.Context, identifier, password string) (token string, account *model.Account, err error)
	// Logout revokes the presented token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
}

type authService struct {
	accounts    repository.AccountRepository
	departments repository.DepartmentRepository
	sections    repository.SectionRepository
	jwtService  *auth.JWTService
	revocations auth.RevocationStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	accounts repository.AccountRepository,
	departments repository.DepartmentRepository,
	sections repository.SectionRepository,
	jwtService *auth.JWTService,
	revocations auth.RevocationStoreInterface,
) AuthService {
	return &authService{
		accounts:    accounts,
		departments: departments,
		sections:    sections,
		jwtService:  jwtService,
		revocations: revocations,
	}
}

// Register creates a new account. Self-registering roles start pending;
// the approval chain (roles.ApproverFor) decides who unlocks them.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	if !in.Role.Valid() || !roles.SelfRegisters(in.Role) {
		return nil, fmt.Errorf("%w: role cannot self-register", apperrors.ErrValidation)
	}
	// Enforced server-side as well; the form is only the first line of defense.
	if in.Password != in.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", apperrors.ErrValidation)
	}
	if in.Role == roles.Student && in.RegNo == "" {
		return nil, fmt.Errorf("%w: registration number is required for students", apperrors.ErrValidation)
	}

	if existing, err := s.accounts.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	department, err := s.departments.FindByName(ctx, in.Department)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: department %q", apperrors.ErrNotFound, in.Department)
		}
		return nil, fmt.Errorf("find department: %w", err)
	}

	// Section is never required: a department may have zero or one
	// sections, in which case the form leaves it unset.
	var sectionID *uuid.UUID
	if in.Section != "" {
		section, err := s.sections.FindByName(ctx, department.ID, in.Section)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("%w: section %q", apperrors.ErrNotFound, in.Section)
			}
			return nil, fmt.Errorf("find section: %w", err)
		}
		sectionID = &section.ID
	}

	var regNo *string
	if in.Role == roles.Student {
		if existing, err := s.accounts.FindByRegNo(ctx, in.RegNo); err == nil && existing != nil {
			return nil, apperrors.ErrRegNoTaken
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check regNo: %w", err)
		}
		regNo = &in.RegNo
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	status := model.StatusPending
	if _, gated := roles.ApproverFor(in.Role); !gated {
		status = model.StatusApproved
	}

	account := &model.Account{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   string(hashedPassword),
		Role:           in.Role,
		ApprovalStatus: status,
		DepartmentID:   &department.ID,
		SectionID:      sectionID,
		RegNo:          regNo,
		PhotoLink:      in.PhotoLink,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

// Provision creates an Admin or Principal account, approved immediately
// since no approval chain exists above them.
func (s *authService) Provision(ctx context.Context, role roles.Role, name, email, password string) (*model.Account, error) {
	if role != roles.Admin && role != roles.Principal {
		return nil, fmt.Errorf("%w: role %s is not provisioned", apperrors.ErrValidation, role)
	}
	if existing, err := s.accounts.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Role:           role,
		ApprovalStatus: model.StatusApproved,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

// Login authenticates by email or registration number and issues a
// session token. Every failure mode returns the same error so callers
// cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, *model.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, identifier)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return "", nil, fmt.Errorf("find account: %w", err)
		}
		account, err = s.accounts.FindByRegNo(ctx, identifier)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return "", nil, fmt.Errorf("find account: %w", err)
			}
			return "", nil, apperrors.ErrInvalidCredentials
		}
	}

	if account.ApprovalStatus != model.StatusApproved {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(account)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, account, nil
}

// Logout revokes the presented token's JTI until the token would have
// expired on its own.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.Parse(token)
	if err != nil {
		return apperrors.ErrInvalidCredentials
	}
	ttl := auth.TokenValidity
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return s.revocations.RevokeToken(ctx, claims.ID, ttl)
}
