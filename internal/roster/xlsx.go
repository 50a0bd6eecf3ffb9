package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet read when none is specified.
const DefaultSheet = "Sheet1"

// LoadMembersExcel reads a single worksheet from an XLSX stream and runs it
// through the normalization pipeline. The first row is the header row.
func LoadMembersExcel(r io.Reader, sheet string) ([]MemberRecord, LoadStats, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, LoadStats{}, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	raw := make([]RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; missing cells read as "".
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

	return Normalize(headers, raw)
}
