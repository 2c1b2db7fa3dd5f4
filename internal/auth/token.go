package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// DefaultTokenTTL is used when TokenIssuer.TTL is zero.
const DefaultTokenTTL = 24 * time.Hour

var errInvalidSubject = errors.New("auth: token subject is not an account id")

// TokenIssuer signs and verifies HS256 session tokens. The account id travels
// in the subject claim; nbf and exp bound the session.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time // test seam; defaults to time.Now
}

func (t *TokenIssuer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *TokenIssuer) ttl() time.Duration {
	if t.TTL > 0 {
		return t.TTL
	}
	return DefaultTokenTTL
}

// Issue returns a signed token for account together with the session it
// encodes.
func (t *TokenIssuer) Issue(account domain.AccountID) (string, domain.Session, error) {
	now := t.now().UTC().Truncate(time.Second)
	sess := domain.Session{
		AccountID: account,
		NotBefore: now,
		Expiry:    now.Add(t.ttl()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(account), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(sess.NotBefore),
		ExpiresAt: jwt.NewNumericDate(sess.Expiry),
	})
	signed, err := token.SignedString(t.Secret)
	if err != nil {
		return "", domain.Session{}, apperr.CredentialDecode(err)
	}
	return signed, sess, nil
}

// Verify checks the signature and time bounds of token and returns its
// session. Every failure is CredentialDecode.
func (t *TokenIssuer) Verify(token string) (domain.Session, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Session{}, apperr.CredentialDecode(err)
	}
	if !parsed.Valid {
		return domain.Session{}, apperr.CredentialDecode(jwt.ErrTokenUnverifiable)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Session{}, apperr.CredentialDecode(errInvalidSubject)
	}

	sess := domain.Session{AccountID: domain.AccountID(id)}
	if claims.NotBefore != nil {
		sess.NotBefore = claims.NotBefore.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		sess.Expiry = claims.ExpiresAt.Time.UTC()
	}
	return sess, nil
}
