package cards

import (
	"reflect"
	"testing"

	"github.com/kaustavpaul/membership-card-ctba/internal/roster"
)

func TestSafePDFFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "John Doe", "John_Doe.pdf"},
		{"punctuation stripped", "  A/B:C*D?  ", "ABCD.pdf"},
		{"slashes and dots", "../../etc/passwd", "etcpasswd.pdf"},
		{"hyphen and underscore kept", "Mary-Jane_Watson", "Mary-Jane_Watson.pdf"},
		{"whitespace run collapses", "Ann   van  Dyk", "Ann_van_Dyk.pdf"},
		{"empty falls back", "", "member.pdf"},
		{"only unsafe chars falls back", "!!!***", "member.pdf"},
		{"non-ASCII stripped", "Zoë O'Brien", "Zo_OBrien.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafePDFFileName(tt.in); got != tt.want {
				t.Errorf("SafePDFFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestQRPayload(t *testing.T) {
	rec := roster.MemberRecord{MemberID: "  CTBA2026JoDoe  "}
	if got := QRPayload(rec); got != "CTBA2026JoDoe" {
		t.Errorf("QRPayload() = %q, want trimmed member ID", got)
	}
}

func TestWrapMembershipType(t *testing.T) {
	tests := []struct {
		name  string
		label string
		limit int
		want  []string
	}{
		{"fits one line", "Family", 20, []string{"Family"}},
		{"wraps to two lines", "Family Plus Premium", 11, []string{"Family Plus", "Premium"}},
		{"third line discarded", "One Two Three Four", 3, []string{"One", "Two"}},
		{"oversized single word kept", "Extraordinary", 5, []string{"Extraordinary"}},
		{"blank produces nothing", "   ", 20, nil},
		{"nan sentinel produces nothing", "NaN", 20, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapMembershipType(tt.label, FitRunes(tt.limit))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapMembershipType(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}
