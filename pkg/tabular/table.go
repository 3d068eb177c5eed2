// Package tabular provides the in-memory table passed through the batch
// matching pipeline: an ordered header plus string rows, with helpers for
// column validation and for appending result columns without disturbing the
// original data.
package tabular

import (
	"strings"

	"github.com/openmetab/keggmatch/pkg/errors"
)

// Table is a rectangular, column-ordered table of strings.  Rows and header
// keep their construction order; appending columns produces a new Table and
// never mutates the receiver's existing cells.
type Table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// New creates an empty Table with the given header.
func New(header []string) *Table {
	t := &Table{
		header: append([]string(nil), header...),
		index:  make(map[string]int, len(header)),
	}
	for i, name := range t.header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t
}

// Header returns a copy of the column names in order.
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.header)
}

// Row returns a copy of row i.  Panics on out-of-range i, matching slice
// semantics.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Value returns the cell at row i, column name.  The second return is false
// when the column does not exist.
func (t *Table) Value(i int, column string) (string, bool) {
	ci, ok := t.index[column]
	if !ok {
		return "", false
	}
	return t.rows[i][ci], true
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// MissingColumns returns, in argument order, the names that are absent from
// the header.  An empty result means all requested columns exist.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// AppendRow adds a row.  The row must match the header width exactly.
func (t *Table) AppendRow(row []string) error {
	if len(row) != len(t.header) {
		return errors.Newf(errors.ErrCodeTableRagged,
			"row has %d cells, header has %d columns", len(row), len(t.header))
	}
	t.rows = append(t.rows, append([]string(nil), row...))
	return nil
}

// WithColumns returns a new Table extending the receiver with the given
// columns.  cells must contain one slice per existing row, each with one
// value per new column.  Original columns, rows and their order are
// preserved.
func (t *Table) WithColumns(names []string, cells [][]string) (*Table, error) {
	if len(cells) != t.Len() {
		return nil, errors.Newf(errors.ErrCodeTableRagged,
			"got %d cell rows for %d table rows", len(cells), t.Len())
	}
	out := New(append(t.Header(), names...))
	for i, row := range t.rows {
		extra := cells[i]
		if len(extra) != len(names) {
			return nil, errors.Newf(errors.ErrCodeTableRagged,
				"row %d: got %d cells for %d new columns", i, len(extra), len(names))
		}
		if err := out.AppendRow(append(append([]string(nil), row...), extra...)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Column returns a copy of the named column's values, or nil when the column
// does not exist.
func (t *Table) Column(name string) []string {
	ci, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[ci]
	}
	return out
}

// String renders a compact summary, useful in logs and error detail.
func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString("tabular.Table{columns=[")
	sb.WriteString(strings.Join(t.header, ", "))
	sb.WriteString("]}")
	return sb.String()
}
