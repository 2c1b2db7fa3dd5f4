package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
)

// Authenticator verifies a session token.
type Authenticator interface {
	Authenticate(token string) (domain.Session, error)
}

// Authenticate requires an "Authorization: Bearer <token>" header. A missing
// or malformed header is rejected as unauthorized; a token that fails
// verification as an invalid credential.
func Authenticate(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			Reject(c, apperr.Unauthorized())
			return
		}
		sess, err := a.Authenticate(token)
		if err != nil {
			Reject(c, err)
			return
		}
		middleware.SetSession(c, sess)
		c.Next()
	}
}

func bearerToken(h string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// session returns the principal set by Authenticate. Routes that call it are
// always mounted behind Authenticate; a missing session is still rejected.
func session(c *gin.Context) (domain.Session, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		Reject(c, apperr.Unauthorized())
	}
	return s, ok
}
