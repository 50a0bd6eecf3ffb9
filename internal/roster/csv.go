package roster

// csv.go is the simple delimited-text path. Unlike the spreadsheet path it
// uses a looser header match with positional fallbacks (column 0 for the
// name, column 1 for the member ID) and reports only a generic skipped-rows
// counter.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvColumns resolves the CSV header using the loose rules of this path.
// Returns a SchemaError when no member-ID column can be determined.
func csvColumns(headers []string) (columnMap, error) {
	var cols columnMap

	cols.Name = headers[0]
	for _, h := range headers {
		if h == "Name" {
			cols.Name = h
			break
		}
	}
	if cols.Name == headers[0] {
		for _, h := range headers {
			hl := strings.ToLower(h)
			if strings.Contains(hl, "name") || strings.Contains(hl, "first") {
				cols.Name = h
				break
			}
		}
	}

	for _, h := range headers {
		if h == "Member_ID" {
			cols.MemberID = h
			break
		}
	}
	if cols.MemberID == "" {
		for _, h := range headers {
			hl := strings.ToLower(h)
			if strings.Contains(hl, "member") || strings.Contains(hl, "id") {
				cols.MemberID = h
				break
			}
		}
	}
	if cols.MemberID == "" {
		if len(headers) > 1 {
			cols.MemberID = headers[1]
		} else {
			return columnMap{}, &SchemaError{Field: "member ID", Columns: headers}
		}
	}

	for _, h := range headers {
		if h == "Membership_Type" || strings.Contains(strings.ToLower(h), "membership") {
			// A header already claimed as the ID column cannot double as
			// the membership type.
			if h != cols.MemberID && h != cols.Name {
				cols.Membership = h
			}
			break
		}
	}
	for _, h := range headers {
		if strings.EqualFold(h, "adult") {
			cols.Adult = h
			break
		}
	}
	for _, h := range headers {
		hl := strings.ToLower(h)
		if hl == "child" || hl == "kids" {
			cols.Child = h
			break
		}
	}

	return cols, nil
}

// LoadMembersCSV reads a delimited text stream into canonical records.
// Rows missing a name or member ID are dropped and tallied under the
// generic SkippedRows counter, as are duplicate member IDs.
func LoadMembersCSV(r io.Reader) ([]MemberRecord, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged exports are common

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, LoadStats{}, fmt.Errorf("csv is empty")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	cols, err := csvColumns(headers)
	if err != nil {
		return nil, LoadStats{}, err
	}

	raw := make([]RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rr := make(RawRow, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rr[h] = row[i]
			} else {
				rr[h] = ""
			}
		}
		raw = append(raw, rr)
	}

	records := make([]MemberRecord, 0, len(raw))
	for _, row := range raw {
		name := strings.TrimSpace(row[cols.Name])
		memberID := strings.TrimSpace(row[cols.MemberID])
		if name == "" || memberID == "" {
			continue
		}
		membership := ""
		if cols.Membership != "" {
			membership = strings.TrimSpace(row[cols.Membership])
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

	deduped, _ := dedupeByMemberID(records)

	stats := LoadStats{
		SourceRows:  len(raw),
		LoadedRows:  len(deduped),
		SkippedRows: len(raw) - len(deduped),
	}
	return deduped, stats, nil
}
