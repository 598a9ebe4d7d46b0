package loans

import (
	"fmt"
	"strings"
)

// DataSourceError reports a spreadsheet that cannot be read: a missing or
// unreadable file, an unsupported format, or an absent sheet. It is fatal.
type DataSourceError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *DataSourceError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("data source %s (sheet %q): %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("data source %s: %v", e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// ColumnMismatch describes a column whose contents do not match its declared kind.
type ColumnMismatch struct {
	Column   string
	Expected Kind
	NonNull  int
}

// SchemaError lists every problem found while validating a sheet header
// against a Schema, rather than failing on the first one.
type SchemaError struct {
	Missing  []string
	Mistyped []ColumnMismatch
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing columns: "+strings.Join(e.Missing, ", "))
	}
	for _, m := range e.Mistyped {
		parts = append(parts, fmt.Sprintf("column %s: expected %s, no parseable value in %d non-null cells", m.Column, m.Expected, m.NonNull))
	}
	return "schema: " + strings.Join(parts, "; ")
}
