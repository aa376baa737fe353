// Package timeutil normalizes wall-clock input to absolute UTC instants and
// renders stored instants for display in an arbitrary IANA timezone.
//
// All persisted time values are UTC; zone-dependent reasoning happens only at
// the display boundary. Aggregation is keyed by slot id and never touches a
// timezone, so organizer/participant zone mismatches can only ever change the
// label a viewer sees, never the counts.
package timeutil

import (
	"os"
	"strings"
	"time"
)

// DisplayLayout matches the label shown next to every slot:
// "Wed, Mar 4, 2026 6:30 PM".
const DisplayLayout = "Mon, Jan 2, 2006 3:04 PM"

// InvalidSlotLabel is rendered when a stored instant is missing or corrupt.
// Display must never fail on bad data.
const InvalidSlotLabel = "Invalid slot"

// localInputLayouts are the accepted wall-clock shapes, most common first.
// The first two are what an HTML datetime-local control produces.
var localInputLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// NormalizeLocalInput parses a zone-less wall-clock string, interprets it in
// the process-local zone, and returns the equivalent UTC instant. The second
// return value reports whether the input was usable; empty or malformed input
// yields (zero, false) rather than an error so callers can drop bad form
// fields without failing the whole submission.
func NormalizeLocalInput(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range localInputLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatInZone renders an absolute instant in the named IANA zone using
// DisplayLayout. An empty zone name falls back to the process-local zone; a
// zone that cannot be loaded falls back to UTC. A zero instant renders as
// InvalidSlotLabel.
func FormatInZone(t time.Time, zone string) string {
	if t.IsZero() {
		return InvalidSlotLabel
	}
	loc := time.Local
	if zone = strings.TrimSpace(zone); zone != "" {
		parsed, err := time.LoadLocation(zone)
		if err != nil {
			parsed = time.UTC
		}
		loc = parsed
	}
	return t.In(loc).Format(DisplayLayout)
}

// FormatUTCStringInZone renders a stored ISO-8601 UTC string in the named
// zone. Unparseable input renders as InvalidSlotLabel.
func FormatUTCStringInZone(startUTC, zone string) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(startUTC))
	if err != nil {
		return InvalidSlotLabel
	}
	return FormatInZone(t, zone)
}

// DetectLocalZone returns the environment's IANA zone identifier, preferring
// an explicit TZ variable, then the resolved local zone name. "UTC" is the
// fallback when neither yields a usable name (time.Local reports the opaque
// name "Local" when loaded from /etc/localtime).
func DetectLocalZone() string {
	if tz := strings.TrimSpace(os.Getenv("TZ")); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	return "UTC"
}
