package appsheet

import (
	"context"
	"sort"

	"github.com/kaustavpaul/membership-card-ctba/internal/roster"
)

// LoadMembers fetches the table and runs the rows through the same
// resolver/normalizer/deduplicator pipeline as the file-based loaders, so
// every source shares one normalization code path.
func LoadMembers(ctx context.Context, c *Client) ([]roster.MemberRecord, roster.LoadStats, error) {
	rows, err := c.FindRows(ctx)
	if err != nil {
		return nil, roster.LoadStats{}, err
	}
	if len(rows) == 0 {
		return []roster.MemberRecord{}, roster.LoadStats{}, nil
	}

	// Rows are JSON objects; collect the union of keys as the header set.
	// Sorted for a deterministic resolution order.
	seen := make(map[string]bool)
	var headers []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)

	raw := make([]roster.RawRow, len(rows))
	for i, row := range rows {
		raw[i] = roster.RawRow(row)
	}

	return roster.Normalize(headers, raw)
}
