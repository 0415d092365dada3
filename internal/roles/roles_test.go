package roles

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestApproverFor(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		approver Role
		gated    bool
	}{
		{name: "student approved by staff", role: Student, approver: Staff, gated: true},
		{name: "staff approved by hod", role: Staff, approver: HOD, gated: true},
		{name: "hod approved by admin", role: HOD, approver: Admin, gated: true},
		{name: "principal has no approver", role: Principal, gated: false},
		{name: "admin has no approver", role: Admin, gated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approver, ok := ApproverFor(tt.role)
			assert.Equal(t, tt.gated, ok)
			if tt.gated {
				assert.Equal(t, tt.approver, approver)
			}
		})
	}
}

func TestSelfRegisters(t *testing.T) {
	assert.True(t, SelfRegisters(Student))
	assert.True(t, SelfRegisters(Staff))
	assert.True(t, SelfRegisters(HOD))
	assert.False(t, SelfRegisters(Principal))
	assert.False(t, SelfRegisters(Admin))
}

func TestParse(t *testing.T) {
	role, ok := Parse("Student")
	assert.True(t, ok)
	assert.Equal(t, Student, role)

	_, ok = Parse("student")
	assert.False(t, ok)

	_, ok = Parse("Janitor")
	assert.False(t, ok)
}

func TestDashboardPath(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range All {
		path := DashboardPath(r)
		assert.NotEmpty(t, path)
		assert.False(t, seen[path], "dashboard paths must be distinct")
		seen[path] = true
	}
}

func TestCanApprove(t *testing.T) {
	cse := uuid.New()
	ece := uuid.New()
	sectionA := uuid.New()
	sectionB := uuid.New()

	scoped := func(dept, section *uuid.UUID) Scope {
		return Scope{DepartmentID: dept, SectionID: section}
	}

	tests := []struct {
		name       string
		actorRole  Role
		actorScope Scope
		target     Role
		tgtScope   Scope
		want       bool
	}{
		{
			name:      "admin approves hod of any department",
			actorRole: Admin, actorScope: Scope{},
			target: HOD, tgtScope: scoped(&cse, nil),
			want: true,
		},
		{
			name:      "hod approves staff of same department",
			actorRole: HOD, actorScope: scoped(&cse, nil),
			target: Staff, tgtScope: scoped(&cse, nil),
			want: true,
		},
		{
			name:      "hod cannot approve staff of another department",
			actorRole: HOD, actorScope: scoped(&cse, nil),
			target: Staff, tgtScope: scoped(&ece, nil),
			want: false,
		},
		{
			name:      "staff approves student of same department and section",
			actorRole: Staff, actorScope: scoped(&cse, &sectionA),
			target: Student, tgtScope: scoped(&cse, &sectionA),
			want: true,
		},
		{
			name:      "staff cannot approve student of another section",
			actorRole: Staff, actorScope: scoped(&cse, &sectionA),
			target: Student, tgtScope: scoped(&cse, &sectionB),
			want: false,
		},
		{
			name:      "any staff of department approves sectionless student",
			actorRole: Staff, actorScope: scoped(&cse, &sectionA),
			target: Student, tgtScope: scoped(&cse, nil),
			want: true,
		},
		{
			name:      "sectionless staff cannot approve sectioned student",
			actorRole: Staff, actorScope: scoped(&cse, nil),
			target: Student, tgtScope: scoped(&cse, &sectionA),
			want: false,
		},
		{
			name:      "staff cannot approve staff",
			actorRole: Staff, actorScope: scoped(&cse, nil),
			target: Staff, tgtScope: scoped(&cse, nil),
			want: false,
		},
		{
			name:      "hod cannot approve student directly",
			actorRole: HOD, actorScope: scoped(&cse, nil),
			target: Student, tgtScope: scoped(&cse, nil),
			want: false,
		},
		{
			name:      "nobody approves principal",
			actorRole: Admin, actorScope: Scope{},
			target: Principal, tgtScope: Scope{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanApprove(tt.actorRole, tt.actorScope, tt.target, tt.tgtScope)
			assert.Equal(t, tt.want, got)
		})
	}
}
