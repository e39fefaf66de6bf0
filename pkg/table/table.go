// Package table provides tabula's in-memory table: an ordered header list
// and a list of rows of models.Value cells.
//
// Every row is expected to be as wide as the header list. New does not
// enforce this; Validate checks it and every loader in pkg/tableio runs it.
//
// Row selection comes in two explicit flavours. View* methods return a
// *View borrowing the source rows, so a cell changed through either side is
// visible through the other. Copy* methods return an owned *Table whose rows
// are independent of the source.
//
// A Table is not safe for concurrent mutation.
package table

import (
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/models"
)

// Table is an in-memory header + rows container
type Table struct {
	headers []string
	rows    [][]models.Value
}

// Empty returns a table with no headers and no rows
func Empty() *Table {
	return &Table{headers: []string{}, rows: [][]models.Value{}}
}

// New wraps headers and rows directly, without copying or validating them
func New(headers []string, rows [][]models.Value) *Table {
	if headers == nil {
		headers = []string{}
	}
	if rows == nil {
		rows = [][]models.Value{}
	}
	return &Table{headers: headers, rows: rows}
}

// FromStrings builds a table of string cells
func FromStrings(headers []string, records [][]string) *Table {
	rows := make([][]models.Value, len(records))
	for i, rec := range records {
		rows[i] = models.Strings(rec)
	}
	return New(headers, rows)
}

// Headers returns the column names. The slice is shared with the table.
func (t *Table) Headers() []string {
	return t.headers
}

// Rows returns the rows. The slices are shared with the table.
func (t *Table) Rows() [][]models.Value {
	return t.rows
}

// Row returns row i, shared with the table
func (t *Table) Row(i int) []models.Value {
	return t.rows[i]
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.headers)
}

// Validate checks that every row is as wide as the header list
func (t *Table) Validate() error {
	for i, row := range t.rows {
		if len(row) != len(t.headers) {
			return errors.Newf(errors.ErrorTypeShape,
				"row %d has %d values, expected %d", i, len(row), len(t.headers)).
				WithDetail("row", i).
				WithDetail("width", len(row)).
				WithDetail("headers", len(t.headers))
		}
	}
	return nil
}

// Copy returns an owned deep copy of the table
func (t *Table) Copy() *Table {
	headers := make([]string, len(t.headers))
	copy(headers, t.headers)
	return &Table{headers: headers, rows: copyRows(t.rows)}
}

// Equal reports whether two tables have the same headers and cell-for-cell
// equal rows
func (t *Table) Equal(o *Table) bool {
	if len(t.headers) != len(o.headers) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.headers {
		if t.headers[i] != o.headers[i] {
			return false
		}
	}
	for i := range t.rows {
		if len(t.rows[i]) != len(o.rows[i]) {
			return false
		}
		for j := range t.rows[i] {
			if !t.rows[i][j].Equal(o.rows[i][j]) {
				return false
			}
		}
	}
	return true
}

func copyRows(rows [][]models.Value) [][]models.Value {
	out := make([][]models.Value, len(rows))
	for i, row := range rows {
		r := make([]models.Value, len(row))
		copy(r, row)
		out[i] = r
	}
	return out
}
