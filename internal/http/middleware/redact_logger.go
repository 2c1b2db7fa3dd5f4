package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// RedactOptions configures RedactingLogger. MaskHeaders lists extra header
// names (case-insensitive) whose values are replaced wholesale; Authorization,
// Cookie, Set-Cookie, and Idempotency-Key are always masked.
type RedactOptions struct {
	MaskHeaders []string
}

// Patterns are applied in this order: UUIDs first so the phone pattern cannot
// eat their digit runs, then emails, then phone numbers.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

type scrubber struct {
	masked map[string]struct{}
}

func newScrubber(extra []string) *scrubber {
	s := &scrubber{masked: map[string]struct{}{
		"authorization":   {},
		"cookie":          {},
		"set-cookie":      {},
		"idempotency-key": {},
	}}
	for _, h := range extra {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			s.masked[h] = struct{}{}
		}
	}
	return s
}

func (s *scrubber) text(v string) string {
	if v == "" {
		return v
	}
	v = uuidRE.ReplaceAllString(v, "[REDACTED:id]")
	v = emailRE.ReplaceAllString(v, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(v, "[REDACTED:phone]")
}

func (s *scrubber) headers(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, ok := s.masked[strings.ToLower(k)]; ok {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = s.text(strings.Join(vv, ", "))
	}
	return out
}

// RedactingLogger is Logger with the query string and request headers
// scrubbed of emails, phone numbers, and UUIDs, and credential headers
// masked. Bodies are never logged.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	return accessLog(newScrubber(opts.MaskHeaders))
}
