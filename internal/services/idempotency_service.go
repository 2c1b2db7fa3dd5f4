package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/repo"
)

// DefaultIdempotencyTTL bounds how long a key can be replayed.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyService remembers which resource a create request produced so a
// retry with the same Idempotency-Key can be answered without a second
// insert. Records are scoped per account and route.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
	Now func() time.Time
}

func (s *IdempotencyService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Lookup returns the live record for key, or nil when there is none.
func (s *IdempotencyService) Lookup(ctx context.Context, account domain.AccountID, scope, key string) (*domain.Idempotency, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, account, scope, key, s.now())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// Remember records that key produced resourceID with status. Losing a race
// to a concurrent request with the same key is not an error.
func (s *IdempotencyService) Remember(ctx context.Context, account domain.AccountID, scope, key string, resourceID int64, status int) error {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, account, scope, key, resourceID, status, s.now(), ttl)
	if errors.Is(err, apperr.ErrUniqueViolation) {
		return nil
	}
	return err
}

// Purge drops expired records.
func (s *IdempotencyService) Purge(ctx context.Context) (int64, error) {
	return repo.PurgeExpiredIdempotency(ctx, s.DB, s.now())
}
