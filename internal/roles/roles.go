package roles

import "github.com/google/uuid"

// Role is the closed set of portal roles. Role is fixed at account
// creation and carried verbatim in session token claims.
type Role string

const (
	Student   Role = "Student"
	Staff     Role = "Staff"
	HOD       Role = "HOD"
	Principal Role = "Principal"
	Admin     Role = "Admin"
)

// All lists every role, in approval-chain order (lowest first).
var All = []Role{Student, Staff, HOD, Principal, Admin}

// approvers is the fixed approval chain: each self-registering role is
// approved by the role one step above it. Admin and Principal sit at
// the top and have no approver.
var approvers = map[Role]Role{
	Student: Staff,
	Staff:   HOD,
	HOD:     Admin,
}

// dashboards maps each role to its single protected dashboard root.
var dashboards = map[Role]string{
	Student:   "/student/dashboard",
	Staff:     "/staff/dashboard",
	HOD:       "/hod/dashboard",
	Principal: "/principal/dashboard",
	Admin:     "/admin/dashboard",
}

// Parse converts a raw string into a Role.
func Parse(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case Student, Staff, HOD, Principal, Admin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ApproverFor returns the role that approves registrations of r.
// ok is false for roles with no approval gate (Admin, Principal);
// accounts of such roles are approved immediately at creation.
func ApproverFor(r Role) (approver Role, ok bool) {
	approver, ok = approvers[r]
	return approver, ok
}

// SelfRegisters reports whether accounts of role r may be created
// through the public registration endpoint. Admin and Principal are
// provisioned out of band and never self-register.
func SelfRegisters(r Role) bool {
	switch r {
	case Student, Staff, HOD:
		return true
	}
	return false
}

// DashboardPath returns the dashboard root protected for role r.
func DashboardPath(r Role) string {
	return dashboards[r]
}

// Scope is the (department, section) pair narrowing which accounts an
// approver may act on. A nil field means "not scoped".
type Scope struct {
	DepartmentID *uuid.UUID
	SectionID    *uuid.UUID
}

// CanApprove decides whether an actor with the given role and scope may
// approve or reject a pending account of the target role and scope.
//
// The actor's role must be exactly ApproverFor(target role). Admin
// approves HODs of any department. A HOD approves Staff of their own
// department. Staff approve Students of their own department; when the
// student registered under a section, the staff member's section must
// match it (a sectionless student may be approved by any staff of the
// department).
func CanApprove(actorRole Role, actorScope Scope, targetRole Role, targetScope Scope) bool {
	approver, ok := ApproverFor(targetRole)
	if !ok || actorRole != approver {
		return false
	}

	switch targetRole {
	case HOD:
		// Admin is department-less; no scope to match.
		return true
	case Staff:
		return sameDepartment(actorScope, targetScope)
	case Student:
		if !sameDepartment(actorScope, targetScope) {
			return false
		}
		if targetScope.SectionID == nil {
			return true
		}
		return actorScope.SectionID != nil && *actorScope.SectionID == *targetScope.SectionID
	}
	return false
}

func sameDepartment(a, b Scope) bool {
	return a.DepartmentID != nil && b.DepartmentID != nil && *a.DepartmentID == *b.DepartmentID
}
