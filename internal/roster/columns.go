package roster

// columns.go resolves user-supplied column headers to canonical fields.
//
// Headers arrive in any order and casing ("Member ID", "unique member id",
// "Full Name", ...). Each canonical field declares an ordered list of
// candidate rules; the first rule that matches wins. A rule matches by exact
// header name (case-sensitive, then case-insensitive) or by requiring every
// listed substring to appear in the lowercased header.

import "strings"

// candidate is one resolution rule: an exact header name, or a set of
// substrings that must all be present (case-insensitive).
type candidate struct {
	exact string
	subs  []string
}

// Ordered candidate rules per canonical field. Order is the documented
// resolution priority; earlier rules win.
var (
	nameCandidates = []candidate{
		{exact: "Full Name"},
		{exact: "Member Name"},
		{subs: []string{"full", "name"}},
		{subs: []string{"name"}},
	}
	memberIDCandidates = []candidate{
		{exact: "Member ID"},
		{exact: "Member_ID"},
		{exact: "Unique Member ID"},
		{subs: []string{"member", "id"}},
	}
	membershipCandidates = []candidate{
		{exact: "Membership Type"},
		{exact: "Membership_Type"},
		{subs: []string{"membership", "type"}},
		{subs: []string{"membership"}},
	}
	adultCandidates = []candidate{
		{exact: "Adult"},
		{subs: []string{"adult"}},
	}
	childCandidates = []candidate{
		{exact: "Child"},
		{exact: "Kids"},
		{subs: []string{"child"}},
	}
)

// matchColumn returns the first header satisfying the rule, preferring a
// case-sensitive exact match, then case-insensitive, then the substring set.
func matchColumn(headers []string, rule candidate) (string, bool) {
	if rule.exact != "" {
		for _, h := range headers {
			if strings.TrimSpace(h) == rule.exact {
				return h, true
			}
		}
		low := strings.ToLower(rule.exact)
		for _, h := range headers {
			if strings.ToLower(strings.TrimSpace(h)) == low {
				return h, true
			}
		}
	}
	if len(rule.subs) > 0 {
		for _, h := range headers {
			hl := strings.ToLower(strings.TrimSpace(h))
			all := true
			for _, s := range rule.subs {
				if !strings.Contains(hl, strings.ToLower(s)) {
					all = false
					break
				}
			}
			if all {
				return h, true
			}
		}
	}
	return "", false
}

// resolveColumn evaluates candidate rules in priority order.
// Absence is not an error; callers decide whether a missing column is fatal.
func resolveColumn(headers []string, rules []candidate) (string, bool) {
	for _, rule := range rules {
		if h, ok := matchColumn(headers, rule); ok {
			return h, true
		}
	}
	return "", false
}

// columnMap holds the resolved source header for each canonical field.
// Empty string means the field could not be resolved.
type columnMap struct {
	Name       string
	MemberID   string
	Membership string
	Adult      string
	Child      string
}

// resolveColumns maps the source headers to canonical fields. Only the
// member-ID column is mandatory; its absence is a SchemaError naming the
// available columns. Name degrades to the first column as a last resort.
func resolveColumns(headers []string) (columnMap, error) {
	var cols columnMap

	if h, ok := resolveColumn(headers, nameCandidates); ok {
		cols.Name = h
	} else if len(headers) > 0 {
		cols.Name = headers[0]
	}

	h, ok := resolveColumn(headers, memberIDCandidates)
	if !ok {
		return columnMap{}, &SchemaError{
			Field:   "Member ID",
			Hint:    "'Member ID' or 'Unique Member ID'",
			Columns: headers,
		}
	}
	cols.MemberID = h

	cols.Membership, _ = resolveColumn(headers, membershipCandidates)
	cols.Adult, _ = resolveColumn(headers, adultCandidates)
	cols.Child, _ = resolveColumn(headers, childCandidates)

	return cols, nil
}
