package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/loanlens-cli/internal/analysis"
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
)

var (
	// ErrUnsupported indicates a file extension no reader handles.
	ErrUnsupported = errors.New("unsupported spreadsheet format")
	// ErrSheetNotFound indicates the requested sheet is absent from the workbook.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrNoHeader indicates a sheet without a header row.
	ErrNoHeader = errors.New("sheet has no header row")
)

// Reader turns a spreadsheet file into rows of raw cell text, header first.
type Reader interface {
	CanRead(path string) bool
	Read(path, sheet string) ([][]string, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(xlsxReader{})
	Register(csvReader{})
}

func readerFor(path string) Reader {
	for _, r := range registry {
		if r.CanRead(path) {
			return r
		}
	}
	return nil
}

// Load reads the named sheet of path, validates it against schema and decodes
// every data row into a Loan. Read failures are returned as
// *loans.DataSourceError, schema violations as *loans.SchemaError. Cells that
// cannot be coerced become null and are counted in Table.Coerced.
func Load(path, sheet string, schema loans.Schema) (*loans.Table, error) {
	r := readerFor(path)
	if r == nil {
		return nil, &loans.DataSourceError{Path: path, Sheet: sheet, Err: fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))}
	}
	rows, err := r.Read(path, sheet)
	if err != nil {
		return nil, &loans.DataSourceError{Path: path, Sheet: sheet, Err: err}
	}
	if len(rows) == 0 || blankRow(rows[0]) {
		return nil, &loans.DataSourceError{Path: path, Sheet: sheet, Err: ErrNoHeader}
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	data := make([][]string, 0, len(rows)-1)
	rowNums := make([]int, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		data = append(data, row)
		rowNums = append(rowNums, i+2)
	}

	absent, err := schema.Validate(header, data)
	if err != nil {
		return nil, err
	}

	idx := loans.Index(header)
	type binding struct {
		col loans.Column
		pos int
	}
	var bound []binding
	for _, c := range schema.Columns {
		if j, ok := idx[c.Name]; ok {
			bound = append(bound, binding{col: c, pos: j})
		}
	}

	t := &loans.Table{
		Source:  path,
		Sheet:   sheet,
		Header:  header,
		Absent:  absent,
		Coerced: map[string]int{},
		Loans:   make([]loans.Loan, 0, len(data)),
	}
	for i, row := range data {
		l := loans.Loan{Row: rowNums[i]}
		for _, b := range bound {
			if b.pos >= len(row) {
				continue
			}
			if !b.col.Assign(&l, row[b.pos]) {
				t.Coerced[b.col.Name]++
			}
		}
		t.Loans = append(t.Loans, l)
	}
	t.Profile = analysis.Profile(header, data)
	return t, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
