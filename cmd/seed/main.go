package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusgate/internal/config"
	"campusgate/internal/db"
	"campusgate/internal/model"
	"campusgate/internal/repository"
	"campusgate/internal/roles"
)

// departmentSeed describes the initial taxonomy. CIVIL deliberately
// gets no sections and MECH a single one, so the "no forced section
// choice" registration rule is exercised by development data.
var departmentSeed = map[string][]string{
	"CSE":   {"A", "B"},
	"ECE":   {"A", "B"},
	"MECH":  {"A"},
	"CIVIL": {},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Department{}, &model.Section{}, &model.Account{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	accountRepo := repository.NewAccountRepository(gormDB)
	departmentRepo := repository.NewDepartmentRepository(gormDB)
	sectionRepo := repository.NewSectionRepository(gormDB)

	created, existing, err := seedTaxonomy(ctx, departmentRepo, sectionRepo)
	if err != nil {
		log.Fatalf("Failed to seed departments: %v", err)
	}
	log.Printf("Taxonomy: %d created, %d already present", created, existing)

	// Admin and Principal sit above the approval chain and are the only
	// accounts not created through registration.
	provisioned := []struct {
		role     roles.Role
		name     string
		email    string
		password string
	}{
		{roles.Admin, "Administrator", cfg.AdminEmail, cfg.AdminPassword},
		{roles.Principal, "Principal", cfg.PrincipalEmail, cfg.PrincipalPassword},
	}
	for _, p := range provisioned {
		fresh, err := seedAccount(ctx, accountRepo, p.role, p.name, p.email, p.password)
		if err != nil {
			log.Fatalf("Failed to seed %s account: %v", p.role, err)
		}
		if fresh {
			log.Printf("Created %s account %s", p.role, p.email)
		} else {
			log.Printf("%s account %s already present", p.role, p.email)
		}
	}

	log.Println("Seed completed successfully!")
}

// seedTaxonomy creates missing departments and sections, leaving
// existing ones untouched.
func seedTaxonomy(ctx context.Context, departments repository.DepartmentRepository, sections repository.SectionRepository) (created, existing int, err error) {
	for name, sectionNames := range departmentSeed {
		department, err := departments.FindByName(ctx, name)
		if err == gorm.ErrRecordNotFound {
			department = &model.Department{Name: name}
			if err := departments.Create(ctx, department); err != nil {
				return created, existing, fmt.Errorf("create department %s: %w", name, err)
			}
			created++
		} else if err != nil {
			return created, existing, fmt.Errorf("find department %s: %w", name, err)
		} else {
			existing++
		}

		for _, sectionName := range sectionNames {
			_, err := sections.FindByName(ctx, department.ID, sectionName)
			if err == gorm.ErrRecordNotFound {
				section := &model.Section{Name: sectionName, DepartmentID: department.ID}
				if err := sections.Create(ctx, section); err != nil {
					return created, existing, fmt.Errorf("create section %s/%s: %w", name, sectionName, err)
				}
				created++
			} else if err != nil {
				return created, existing, fmt.Errorf("find section %s/%s: %w", name, sectionName, err)
			} else {
				existing++
			}
		}
	}
	return created, existing, nil
}

// seedAccount creates a pre-approved account unless one already exists
// for the email.
func seedAccount(ctx context.Context, accounts repository.AccountRepository, role roles.Role, name, email, password string) (bool, error) {
	_, err := accounts.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, fmt.Errorf("find account %s: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		ApprovalStatus: model.StatusApproved,
	}
	if err := accounts.Create(ctx, account); err != nil {
		return false, fmt.Errorf("create account %s: %w", email, err)
	}
	return true, nil
}
