package auth

import (
	"context"
	"time"

	"campusgate/internal/cache"
)

const (
	revokedTokenKeyPrefix   = "revoked:token:"
	revokedSubjectKeyPrefix = "revoked:subject:"
)

// RevocationStoreInterface defines the interface for token revocation operations.
type RevocationStoreInterface interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	RevokeSubject(ctx context.Context, subject string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID, subject string) (bool, error)
}

// RevocationStore tracks revoked session material in Redis. Tokens are
// revoked individually on logout; a whole subject is revoked when its
// pending registration is rejected after a token could have been
// issued. Entries expire with the longest possible token lifetime, so
// the set stays bounded.
type RevocationStore struct {
	cache *cache.Client
}

// Ensure RevocationStore implements RevocationStoreInterface
var _ RevocationStoreInterface = (*RevocationStore)(nil)

// NewRevocationStore creates a new revocation store.
func NewRevocationStore(cache *cache.Client) *RevocationStore {
	return &RevocationStore{cache: cache}
}

// RevokeToken marks a single token ID (JTI) as revoked until it would
// have expired anyway.
func (s *RevocationStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// RevokeSubject marks every outstanding token of an identity as revoked.
func (s *RevocationStore) RevokeSubject(ctx context.Context, subject string, ttl time.Duration) error {
	return s.cache.Set(ctx, revokedSubjectKeyPrefix+subject, []byte("1"), ttl)
}

// IsRevoked reports whether the token or its subject has been revoked.
// Redis being unreachable reads as "not revoked"; the account re-check
// on every mutating call remains the authoritative gate.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID, subject string) (bool, error) {
	data, err := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err == nil && data != nil {
		return true, nil
	}
	data, err = s.cache.Get(ctx, revokedSubjectKeyPrefix+subject)
	if err == nil && data != nil {
		return true, nil
	}
	return false, nil
}
