package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Context keys for the authenticated principal.
const (
	ctxKeySession   = "session"
	ctxKeyAccountID = "userID"
)

// SetSession attaches the verified session to the request. It also stamps
// the account id on the request-scoped logger so later log lines carry it.
func SetSession(c *gin.Context, s domain.Session) {
	c.Set(ctxKeySession, s)
	c.Set(ctxKeyAccountID, strconv.FormatInt(int64(s.AccountID), 10))

	lg := LoggerFrom(c).With().Int64("account_id", int64(s.AccountID)).Logger()
	c.Set(ctxKeyLogger, &lg)
}

// SessionFrom returns the session attached by SetSession.
func SessionFrom(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return domain.Session{}, false
	}
	s, ok := v.(domain.Session)
	return s, ok
}

// accountLabel returns the authenticated account id as a string, or "".
func accountLabel(c *gin.Context) string {
	return c.GetString(ctxKeyAccountID)
}
