package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/auth"
)

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	return &AccountService{
		DB:     newSvcDB(t),
		Tokens: &auth.TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour},
	}
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	acc, err := s.Register(ctx, "  A@X.com ", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if acc.Email != "a@x.com" || acc.Password == "hunter2" {
		t.Fatalf("unexpected account: %+v", acc)
	}

	login, err := s.Login(ctx, "a@x.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	sess, err := s.Authenticate(login.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if sess.AccountID != acc.ID {
		t.Fatalf("session account = %d, want %d", sess.AccountID, acc.ID)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "a@x.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, "A@x.com", "pw2"); !errors.Is(err, apperr.ErrUniqueViolation) {
		t.Fatalf("expected UniqueViolation, got %v", err)
	}
}

func TestAccountService_Register_PasswordTooLong(t *testing.T) {
	s := newAccountService(t)

	_, err := s.Register(context.Background(), "a@x.com", strings.Repeat("p", 73))
	if !errors.Is(err, apperr.ErrParse) {
		t.Fatalf("expected Parse for a 73-byte password, got %v", err)
	}
	var n int64
	s.DB.Table("accounts").Count(&n)
	if n != 0 {
		t.Fatalf("no account may be stored, got %d", n)
	}
}

func TestAccountService_LoginFailures(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()
	if _, err := s.Register(ctx, "a@x.com", "right"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := s.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, apperr.ErrWrongCredential) {
		t.Fatalf("expected WrongCredential, got %v", err)
	}
	if _, err := s.Login(ctx, "nobody@x.com", "x"); !errors.Is(err, apperr.ErrPersistence) {
		t.Fatalf("expected Persistence for unknown email, got %v", err)
	}
	if _, err := s.Login(ctx, "", "x"); !errors.Is(err, apperr.ErrMissingParameters) {
		t.Fatalf("expected MissingParameters, got %v", err)
	}
	if _, err := s.Authenticate("garbage"); !errors.Is(err, apperr.ErrCredentialDecode) {
		t.Fatalf("expected CredentialDecode, got %v", err)
	}
}
