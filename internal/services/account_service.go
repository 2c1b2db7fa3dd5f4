package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/auth"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/repo"
)

// AccountService registers accounts and logs them in.
type AccountService struct {
	DB     *gorm.DB
	Tokens *auth.TokenIssuer
}

// Login is the result of a successful login.
type Login struct {
	Token   string
	Session domain.Session
}

// normalizeEmail trims and lower-cases an address so lookups are
// case-insensitive.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates an account. A taken email fails with
// apperr.UniqueViolation.
func (s *AccountService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	ctx, span := otel.Tracer("services/AccountService").Start(ctx, "Register")
	defer span.End()

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.MissingParameters()
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	acc, err := repo.CreateAccount(ctx, s.DB, email, hash)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return acc, nil
}

// Login verifies the password for email and issues a session token. An
// unknown email fails with apperr.Persistence; a wrong password with
// apperr.WrongCredential.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Login, error) {
	ctx, span := otel.Tracer("services/AccountService").Start(ctx, "Login")
	defer span.End()

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.MissingParameters()
	}
	acc, err := repo.GetAccountByEmail(ctx, s.DB, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	ok, err := auth.VerifyPassword(acc.Password, password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !ok {
		return nil, apperr.WrongCredential()
	}

	token, sess, err := s.Tokens.Issue(acc.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &Login{Token: token, Session: sess}, nil
}

// Authenticate verifies a session token.
func (s *AccountService) Authenticate(token string) (domain.Session, error) {
	return s.Tokens.Verify(token)
}
