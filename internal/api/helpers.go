package api

import (
	"context"
	"strings"

	"github.com/habitloop/habitloop-server/internal/derive"
	domainerrors "github.com/habitloop/habitloop-server/internal/errors"
)

// checkDateKey rejects path dates that are not canonical YYYY-MM-DD keys,
// so a malformed date can never mint a stray map entry.
func checkDateKey(date string) error {
	if _, err := derive.ParseDayKey(date); err != nil {
		return domainerrors.Validation("date must be formatted YYYY-MM-DD")
	}
	return nil
}

// clientKey derives the rate-limit bucket key for an auth request.
// Proxied requests are keyed by the first X-Forwarded-For hop; direct
// requests share one bucket, which is fine for a single-household server.
func clientKey(xForwardedFor string, _ context.Context) string {
	if xForwardedFor != "" {
		if i := strings.IndexByte(xForwardedFor, ','); i > 0 {
			return strings.TrimSpace(xForwardedFor[:i])
		}
		return strings.TrimSpace(xForwardedFor)
	}
	return "direct"
}
