// Package cards holds the text contracts the card renderer consumes:
// filenames, QR payloads, and line wrapping. The actual image/PDF/QR
// rendering lives outside this repository.
package cards

import (
	"regexp"
	"strings"

	"github.com/kaustavpaul/membership-card-ctba/internal/roster"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9 _-]+`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// SafePDFFileName converts a display name into a safe PDF filename. Only
// letters, digits, spaces, underscores, and hyphens are kept; whitespace
// collapses to underscores; an empty result falls back to "member.pdf".
func SafePDFFileName(name string) string {
	safe := strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(name, ""))
	safe = whitespaceRun.ReplaceAllString(safe, "_")
	if safe == "" {
		safe = "member"
	}
	return safe + ".pdf"
}

// QRPayload is the exact string encoded into a member's QR code: the
// trimmed member ID, no structured envelope.
func QRPayload(rec roster.MemberRecord) string {
	return strings.TrimSpace(rec.MemberID)
}

// WrapMembershipType word-wraps a membership type label to at most two
// display lines. fit reports whether a candidate line fits the card; the
// renderer supplies a pixel-width check, tests use FitRunes. Blank labels
// and the "nan" sentinel produce no lines. Words beyond the second line are
// discarded.
func WrapMembershipType(label string, fit func(string) bool) []string {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, "nan") {
		return nil
	}

	var lines []string
	cur := ""
	for _, w := range strings.Fields(label) {
		test := strings.TrimSpace(cur + " " + w)
		if fit(test) {
			cur = test
		} else {
			if cur != "" {
				lines = append(lines, cur)
			}
			cur = w
		}
		if len(lines) >= 2 {
			break
		}
	}
	if cur != "" && len(lines) < 2 {
		lines = append(lines, cur)
	}
	return lines
}

// FitRunes returns a fit function that allows up to n runes per line.
func FitRunes(n int) func(string) bool {
	return func(s string) bool {
		return len([]rune(s)) <= n
	}
}
