package roster

// normalize.go converts raw rows into canonical MemberRecords.
//
// Per-row policy, in order: a row with a blank (or "nan") name is skipped;
// then a row with a blank (or "nan") member ID is skipped; membership type
// defaults to ""; adult/child counts go through ParseCount. Skips never
// abort a load, they are only tallied.

import "strings"

// rowCounters tallies per-row rejections during normalization.
type rowCounters struct {
	MissingName     int
	MissingMemberID int
}

// cleanCell trims a cell and collapses the spreadsheet "nan" sentinel to "".
// Source exports spell missing values as the literal text "nan"; a real
// future value "NAN" would be conflated, which is accepted behavior.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// normalizeRows applies the per-row policy to every raw row and returns the
// surviving records plus skip counters. It performs no I/O and never fails;
// schema problems are handled before this point.
func normalizeRows(rows []RawRow, cols columnMap) ([]MemberRecord, rowCounters) {
	var counters rowCounters
	records := make([]MemberRecord, 0, len(rows))

	for _, row := range rows {
		name := cleanCell(row[cols.Name])
		if name == "" {
			counters.MissingName++
			continue
		}

		memberID := cleanCell(row[cols.MemberID])
		if memberID == "" {
			counters.MissingMemberID++
			continue
		}

		membership := ""
		if cols.Membership != "" {
			membership = cleanCell(row[cols.Membership])
		}

		var adult, child Count
		if cols.Adult != "" {
			adult = ParseCount(row[cols.Adult])
		}
		if cols.Child != "" {
			child = ParseCount(row[cols.Child])
		}

		records = append(records, MemberRecord{
			Name:           name,
			MemberID:       memberID,
			MembershipType: membership,
			Adult:          adult,
			Child:          child,
		})
	}

	return records, counters
}
