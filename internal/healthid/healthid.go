package healthid

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

// Prefix used by every worker health ID.
const Prefix = "WH"

var validPattern = regexp.MustCompile(`(?i)^WH-[A-Z0-9]+-[A-Z0-9]+$`)

// Generate derives a stable, human-presentable health ID from an opaque
// user reference. The same reference always maps to the same ID, so the
// card a worker sees before their first profile write never changes.
//
// The numeric part is a 32-bit signed accumulator over the reference's
// UTF-16 code units (hash = hash*31 + unit, wrapping at 32 bits), absolute
// value, low 8 digits zero-padded. This is a friendly label, not a
// collision-resistant identifier: the database's uniqueness constraint on
// health_id remains the source of truth.
func Generate(userRef string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(userRef)) {
		h = h*31 + int32(u)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%s-%s-%08d", Prefix, prefixOf(userRef), n%100000000)
}

// prefixOf takes the first 4 characters of the reference, uppercases them
// and replaces anything outside [A-Z0-9] with 'X'. Short references are
// padded with 'X'.
func prefixOf(userRef string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(userRef) {
		if b.Len() >= 4 {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('X')
		}
	}
	for b.Len() < 4 {
		b.WriteByte('X')
	}
	return b.String()
}

// Valid reports whether s looks like a health ID: the WH prefix plus two
// non-empty alphanumeric segments, case-insensitive.
func Valid(s string) bool {
	return validPattern.MatchString(s)
}

// Normalize uppercases a health ID so lookups are case-insensitive.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
