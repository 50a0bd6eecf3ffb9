package roster

// memberid.go derives a member ID when the source has no authoritative one.

import "strings"

// DefaultIDPrefix is the program/year prefix baked into generated IDs.
const DefaultIDPrefix = "CTBA2026"

// sanitizeID reduces a value to its ASCII letters and digits. The "nan"
// sentinel and blanks reduce to "".
func sanitizeID(s string) string {
	s = cleanCell(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildMemberID deterministically builds a member ID from the prefix plus
// the alphanumeric reduction of name, email, and membership type, in that
// order. Distinct members whose reduced fields coincide will collide; this
// is accepted because the builder is only a fallback when no authoritative
// ID exists upstream.
func BuildMemberID(prefix, name, email, membershipType string) string {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return prefix + sanitizeID(name) + sanitizeID(email) + sanitizeID(membershipType)
}
