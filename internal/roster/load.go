package roster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat marks an upload in a format the loaders cannot read,
// such as a legacy binary .xls workbook.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// LoadMembersReader loads members from a spreadsheet or CSV stream,
// dispatching on the extension of filename. Sheet selects the worksheet for
// XLSX input and is ignored for CSV.
func LoadMembersReader(r io.Reader, filename, sheet string) ([]MemberRecord, LoadStats, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return LoadMembersExcel(r, sheet)
	case ".xls":
		return nil, LoadStats{}, fmt.Errorf("%w: legacy .xls workbooks are not supported; save %s as .xlsx",
			ErrUnsupportedFormat, filename)
	default:
		return LoadMembersCSV(r)
	}
}

// LoadMembersFile loads members from a spreadsheet or CSV file on disk.
func LoadMembersFile(path, sheet string) ([]MemberRecord, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	return LoadMembersReader(f, filepath.Base(path), sheet)
}
