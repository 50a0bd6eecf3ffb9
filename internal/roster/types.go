// Package roster provides the business logic for loading member records.
// It normalizes arbitrarily shaped tabular input (spreadsheet exports, CSV
// files, AppSheet rows) into a single canonical schema and has no UI or
// rendering dependencies.
package roster

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CountKind discriminates the value held by a Count.
type CountKind int

const (
	CountEmpty CountKind = iota
	CountInt
	CountText
)

// Count is the value of an Adult/Child cell. Source data mixes integers,
// floats like "3.0", free text, and blanks; parseable numbers are truncated
// to integers and anything else is preserved verbatim rather than rejected.
type Count struct {
	Kind CountKind
	Int  int64
	Text string
}

// IntCount returns a Count holding an integer value.
func IntCount(n int64) Count {
	return Count{Kind: CountInt, Int: n}
}

// TextCount returns a Count holding an opaque string value.
func TextCount(s string) Count {
	return Count{Kind: CountText, Text: s}
}

// String returns the display form of the count.
func (c Count) String() string {
	switch c.Kind {
	case CountInt:
		return strconv.FormatInt(c.Int, 10)
	case CountText:
		return c.Text
	default:
		return ""
	}
}

// MarshalJSON renders integers as JSON numbers, text verbatim, and empty
// counts as "".
func (c Count) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CountInt:
		return json.Marshal(c.Int)
	case CountText:
		return json.Marshal(c.Text)
	default:
		return json.Marshal("")
	}
}

// UnmarshalJSON accepts a JSON number or string and applies the same
// coercion as ParseCount.
func (c *Count) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		// The raw number text goes through ParseCount so out-of-range
		// values take the same text path as cell input.
		*c = ParseCount(string(data))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("count: expected number or string: %w", err)
	}
	*c = ParseCount(s)
	return nil
}

// ParseCount coerces a raw cell value into a Count. Values that parse as a
// float are truncated to an integer (so "3.0" becomes 3); blanks and the
// "nan" sentinel become empty; everything else passes through as text.
func ParseCount(raw string) Count {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return Count{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		// Go's float→int conversion is undefined outside int64 range;
		// infinities and values at or beyond ±2^63 stay text.
		if math.IsNaN(f) || math.IsInf(f, 0) || f < -(1<<63) || f >= 1<<63 {
			return TextCount(s)
		}
		return IntCount(int64(f))
	}
	return TextCount(s)
}

// MemberRecord is the canonical five-field member representation all sources
// converge to. Name and MemberID are non-empty after trimming; MemberID is
// the dedup key and the sole payload encoded into the member's QR code.
type MemberRecord struct {
	Name           string `json:"Name"`
	MemberID       string `json:"Member_ID"`
	MembershipType string `json:"Membership_Type"`
	Adult          Count  `json:"Adult"`
	Child          Count  `json:"Child"`
}

// LoadStats describes how many rows were read, kept, or dropped and why.
// It is computed once per load call and returned alongside the records,
// never stored.
type LoadStats struct {
	SourceRows               int `json:"source_rows"`
	KeptRowsBeforeDedup      int `json:"kept_rows_before_dedup,omitempty"`
	LoadedRows               int `json:"loaded_rows"`
	SkippedMissingName       int `json:"skipped_missing_name,omitempty"`
	SkippedMissingMemberID   int `json:"skipped_missing_member_id,omitempty"`
	DroppedDuplicateMemberID int `json:"dropped_duplicate_member_id,omitempty"`

	// SkippedRows is the generic counter used by the simple CSV path,
	// which does not distinguish skip reasons.
	SkippedRows int `json:"skipped_rows,omitempty"`
}

// RawRow maps a source-supplied column label to its cell value. Rows are
// ephemeral: they exist only between reading a source and normalization.
type RawRow map[string]string

// SchemaError reports that a required column could not be resolved in the
// source. It lists the available columns so a malformed sheet can be fixed
// without access to the server.
type SchemaError struct {
	Field   string   // canonical field, e.g. "Member ID"
	Hint    string   // expected header names, e.g. "'Member ID' or 'Unique Member ID'"
	Columns []string // columns actually present in the source
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("could not find a %s column", e.Field)
	if e.Hint != "" {
		msg += ". Expected something like " + e.Hint
	}
	return fmt.Sprintf("%s. Columns: [%s]", msg, strings.Join(e.Columns, ", "))
}
