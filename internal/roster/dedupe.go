package roster

// dedupeByMemberID removes records whose member ID repeats an earlier
// record's ID. Order is preserved and the first occurrence wins. Returns the
// deduplicated records and the number dropped.
func dedupeByMemberID(records []MemberRecord) ([]MemberRecord, int) {
	seen := make(map[string]bool, len(records))
	out := make([]MemberRecord, 0, len(records))

	for _, rec := range records {
		if seen[rec.MemberID] {
			continue
		}
		seen[rec.MemberID] = true
		out = append(out, rec)
	}

	return out, len(records) - len(out)
}

// Normalize runs raw rows through the full pipeline: column resolution,
// per-row validation, and duplicate removal. This is the single
// normalization path shared by the Excel, CSV, and AppSheet loaders.
func Normalize(headers []string, rows []RawRow) ([]MemberRecord, LoadStats, error) {
	cols, err := resolveColumns(headers)
	if err != nil {
		return nil, LoadStats{}, err
	}

	records, counters := normalizeRows(rows, cols)
	deduped, dropped := dedupeByMemberID(records)

	stats := LoadStats{
		SourceRows:               len(rows),
		KeptRowsBeforeDedup:      len(records),
		LoadedRows:               len(deduped),
		SkippedMissingName:       counters.MissingName,
		SkippedMissingMemberID:   counters.MissingMemberID,
		DroppedDuplicateMemberID: dropped,
	}
	return deduped, stats, nil
}
