package service

import (
	"fmt"
	"strings"
	"time"
)

const maxFilenameLen = 200

// SanitizeFilename normalizes a user-supplied filename into a safe object
// name component: lower-cased, restricted to [a-z0-9.-], runs of dashes
// collapsed, dashes trimmed from both ends, capped at 200 characters.
// The transform is idempotent.
func SanitizeFilename(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	prevDash := false
	for _, r := range lower {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.':
			b.WriteRune(r)
			prevDash = false
		case prevDash:
			// collapse runs of '-'
		default:
			b.WriteByte('-')
			prevDash = true
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxFilenameLen {
		out = strings.TrimRight(out[:maxFilenameLen], "-")
	}
	return out
}

// ObjectName builds the stored object name for an upload: the creation
// timestamp in milliseconds, a separating dash, and the sanitized original
// filename. Uniqueness rests on no two uploads sharing the same millisecond
// and sanitized name.
func ObjectName(t time.Time, originalFilename string) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), SanitizeFilename(originalFilename))
}
