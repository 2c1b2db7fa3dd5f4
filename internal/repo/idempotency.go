// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the Idempotency
// model used to implement safe-retry semantics for POST endpoints.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// GetIdempotency returns a non-expired record for (account, scope, key) or
// ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, account domain.AccountID, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(scope) == "" || strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("account_id = ? AND scope = ? AND key = ? AND expires_at > ?", account, scope, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return &rec, nil
}

// CreateIdempotency records that key produced resourceID with status at now,
// live for ttl. A concurrent insert of the same (account, scope, key) yields
// UniqueViolation.
func CreateIdempotency(ctx context.Context, db *gorm.DB, account domain.AccountID, scope, key string, resourceID int64, status int, now time.Time, ttl time.Duration) (*domain.Idempotency, error) {
	now = now.UTC()
	rec := &domain.Idempotency{
		ID:         uuid.NewString(),
		AccountID:  account,
		Scope:      scope,
		Key:        key,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, classifyWriteError(err)
	}
	return rec, nil
}

// PurgeExpiredIdempotency deletes records whose ExpiresAt is at or before now
// and returns how many were removed.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	if res.Error != nil {
		return 0, apperr.Persistence(res.Error)
	}
	return res.RowsAffected, nil
}
