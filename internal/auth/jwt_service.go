package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"campusgate/internal/model"
	"campusgate/internal/roles"
)

// TokenValidity is the fixed validity window of a session token.
// Tokens are never refreshed in place; expiry requires re-login.
const TokenValidity = 12 * time.Hour

// Claims are the session token claims. Role and scope are fixed at
// issuance and never re-derived from the store during the token's
// lifetime; state-mutating endpoints must re-check the account instead
// of trusting these fields.
type Claims struct {
	Role       roles.Role `json:"role"`
	Department string     `json:"department,omitempty"`
	Section    string     `json:"section,omitempty"`
	RegNo      string     `json:"regNo,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and parses session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Issue signs a session token for an approved account. The subject is
// the account ID; the JTI allows revocation on logout.
func (s *JWTService) Issue(account *model.Account) (string, error) {
	claims := &Claims{
		Role: account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	if account.DepartmentID != nil {
		claims.Department = account.DepartmentID.String()
	}
	if account.SectionID != nil {
		claims.Section = account.SectionID.String()
	}
	if account.RegNo != nil {
		claims.RegNo = *account.RegNo
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a session token (signature, expiry) and returns its claims.
func (s *JWTService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
