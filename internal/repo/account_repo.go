// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Account
// model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// CreateAccount inserts an account with an already-hashed password. A taken
// email is reported as UniqueViolation; any other failure as Persistence.
func CreateAccount(ctx context.Context, db *gorm.DB, email, passwordHash string) (*domain.Account, error) {
	a := &domain.Account{Email: email, Password: passwordHash}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, classifyWriteError(err)
	}
	return a, nil
}

// GetAccountByEmail loads the account registered under email.
func GetAccountByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Account, error) {
	var a domain.Account
	if err := db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &a, nil
}
