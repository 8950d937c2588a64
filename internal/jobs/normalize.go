package jobs

import (
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Placeholders used when a provider omits a field.
const (
	PlaceholderMissing       = "N/A"
	PlaceholderLocation      = "Remote"
	PlaceholderDescription   = "No description available."
	PlaceholderURL           = "#"
	providerDateLayout       = time.RFC3339
	normalizedDateLayout     = "2006-01-02"
	providerDateLayoutLoose  = "2006-01-02 15:04:05"
	providerDateLayoutDateMs = "2006-01-02T15:04:05.000Z"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripHTML removes any markup from provider-supplied rich text fields.
func StripHTML(s string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// OrPlaceholder backfills an empty provider field with the given placeholder.
func OrPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}

	return strings.TrimSpace(value)
}

// NormalizeDate converts a provider timestamp into a short human-readable
// date. Unparseable values are passed through untouched so a provider's
// own human-readable wording ("3 days ago") survives; empty values become
// the missing placeholder.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlaceholderMissing
	}

	for _, layout := range []string{providerDateLayout, providerDateLayoutDateMs, providerDateLayoutLoose, normalizedDateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(normalizedDateLayout)
		}
	}

	return raw
}
