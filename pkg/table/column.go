package table

import (
	"strconv"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// Column selects a column either by zero-based index or by header name.
// The zero Column selects index 0.
type Column struct {
	index  int
	name   string
	byName bool
}

// Index selects a column by position
func Index(i int) Column {
	return Column{index: i}
}

// Name selects a column by header name; duplicates resolve to the first match
func Name(name string) Column {
	return Column{name: name, byName: true}
}

// String returns the index or the name
func (c Column) String() string {
	if c.byName {
		return c.name
	}
	return strconv.Itoa(c.index)
}

// IsName reports whether c selects by header name
func (c Column) IsName() bool {
	return c.byName
}

// resolve returns the column's index in t
func (t *Table) resolve(c Column) (int, error) {
	if c.byName {
		for i, h := range t.headers {
			if h == c.name {
				return i, nil
			}
		}
		return 0, errors.Newf(errors.ErrorTypeColumn, "column %q not found", c.name).
			WithDetail("column", c.name)
	}
	if c.index < 0 || c.index >= len(t.headers) {
		return 0, errors.Newf(errors.ErrorTypeColumn, "column index %d out of range [0, %d)", c.index, len(t.headers)).
			WithDetail("column", c.index)
	}
	return c.index, nil
}
