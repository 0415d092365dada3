package gateway

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"campusgate/internal/auth"
	"campusgate/internal/model"
	"campusgate/internal/roles"
)

const testSecret = "gateway-test-secret"

func issueFor(t *testing.T, role roles.Role) string {
	t.Helper()
	svc := auth.NewJWTService(testSecret)
	token, err := svc.Issue(&model.Account{ID: uuid.New(), Role: role})
	assert.NoError(t, err)
	return token
}

func expiredFor(t *testing.T, role roles.Role) string {
	t.Helper()
	claims := &auth.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func TestGuard_Authorize(t *testing.T) {
	guard := NewGuard(auth.NewJWTService(testSecret))
	studentToken := issueFor(t, roles.Student)

	tests := []struct {
		name     string
		token    string
		required roles.Role
		admit    bool
	}{
		{name: "matching role admits", token: studentToken, required: roles.Student, admit: true},
		{name: "wrong role denies", token: studentToken, required: roles.Staff, admit: false},
		{name: "missing token denies", token: "", required: roles.Student, admit: false},
		{name: "garbage token denies", token: "garbage", required: roles.Student, admit: false},
		{name: "expired token denies", token: expiredFor(t, roles.Student), required: roles.Student, admit: false},
		{name: "token signed elsewhere denies", token: tamperedToken(t), required: roles.Student, admit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := guard.Authorize(tt.token, tt.required)
			assert.Equal(t, tt.admit, decision.Admit)
			if tt.admit {
				assert.Empty(t, decision.RedirectTo)
			} else {
				// Every denial redirects to the same place.
				assert.Equal(t, LoginPath, decision.RedirectTo)
			}
		})
	}
}

func tamperedToken(t *testing.T) string {
	t.Helper()
	svc := auth.NewJWTService("some-other-secret")
	token, err := svc.Issue(&model.Account{ID: uuid.New(), Role: roles.Student})
	assert.NoError(t, err)
	return token
}

func TestGuard_AuthorizeIsStable(t *testing.T) {
	guard := NewGuard(auth.NewJWTService(testSecret))
	token := issueFor(t, roles.HOD)

	first := guard.Authorize(token, roles.HOD)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, guard.Authorize(token, roles.HOD))
	}
}

func TestGuard_AuthorizePath(t *testing.T) {
	guard := NewGuard(auth.NewJWTService(testSecret))
	staffToken := issueFor(t, roles.Staff)

	assert.True(t, guard.AuthorizePath(staffToken, "/staff/dashboard").Admit)
	assert.False(t, guard.AuthorizePath(staffToken, "/student/dashboard").Admit)
	assert.False(t, guard.AuthorizePath(staffToken, "/admin/dashboard").Admit)
	// Paths outside the route table are unprotected.
	assert.True(t, guard.AuthorizePath("", "/register").Admit)
}

func TestGuard_Routes(t *testing.T) {
	guard := NewGuard(auth.NewJWTService(testSecret))
	routes := guard.Routes()
	assert.Len(t, routes, len(roles.All))
	for _, route := range routes {
		assert.Equal(t, roles.DashboardPath(route.Required), route.Path)
	}
}

func TestGuard_Home(t *testing.T) {
	guard := NewGuard(auth.NewJWTService(testSecret))

	assert.Equal(t, "/hod/dashboard", guard.Home(issueFor(t, roles.HOD)))
	assert.Equal(t, LoginPath, guard.Home("garbage"))
}

func TestSession_Lifecycle(t *testing.T) {
	sess := NewSession()
	assert.False(t, sess.Active())

	sess.Init("token", "2020CSE001")
	assert.True(t, sess.Active())
	assert.Equal(t, "token", sess.Token())
	assert.Equal(t, "2020CSE001", sess.RegNo())

	// Token and regNo are cleared together on logout.
	sess.Clear()
	assert.False(t, sess.Active())
	assert.Empty(t, sess.Token())
	assert.Empty(t, sess.RegNo())
}
