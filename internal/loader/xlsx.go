package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm")
}

// Read returns the raw (unformatted) cell values of the sheet so that numeric
// timestamps and spreadsheet date serials survive untouched. An empty sheet
// name selects the first sheet.
func (xlsxReader) Read(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name, err := resolveSheet(f.GetSheetList(), sheet)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, nil
}

func resolveSheet(available []string, want string) (string, error) {
	if want == "" {
		if len(available) == 0 {
			return "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		return available[0], nil
	}
	for _, s := range available {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(want)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available sheets: %s)", ErrSheetNotFound, want, strings.Join(available, ", "))
}
