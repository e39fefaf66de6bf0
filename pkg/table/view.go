package table

import (
	"github.com/ajitpratap0/tabula/pkg/models"
)

// View is a table that borrows its rows from a source table. Setting a cell
// through a view changes the source, and changes to source cells show
// through the view. The row list itself belongs to the view.
type View struct {
	*Table
	source *Table
}

// Source returns the table the view borrows from
func (v *View) Source() *Table {
	return v.source
}

// Owned returns an independent copy of the viewed rows
func (v *View) Owned() *Table {
	return v.Table.Copy()
}

func (t *Table) view(rows [][]models.Value) *View {
	return &View{Table: &Table{headers: t.headers, rows: rows}, source: t}
}

// ViewRange borrows rows [start, stop). Bounds are clamped to [0, Len()] and
// a range with stop <= start is empty.
func (t *Table) ViewRange(start, stop int) *View {
	start, stop = t.clamp(start, stop)
	return t.view(t.rows[start:stop:stop])
}

// ViewRow borrows the single row i, or nothing when i is out of range
func (t *Table) ViewRow(i int) *View {
	return t.ViewRange(i, i+1)
}

// ViewKeys borrows every row whose first cell equals one of keys, in source
// order
func (t *Table) ViewKeys(keys ...models.Value) *View {
	return t.view(t.matchKeys(keys))
}

// CopyRange returns an owned copy of rows [start, stop), clamped like
// ViewRange
func (t *Table) CopyRange(start, stop int) *Table {
	return t.ViewRange(start, stop).Owned()
}

// CopyRow returns an owned copy of the single row i
func (t *Table) CopyRow(i int) *Table {
	return t.CopyRange(i, i+1)
}

// CopyKeys returns an owned copy of every row whose first cell equals one of
// keys
func (t *Table) CopyKeys(keys ...models.Value) *Table {
	return t.ViewKeys(keys...).Owned()
}

func (t *Table) clamp(start, stop int) (int, int) {
	n := len(t.rows)
	start = min(max(start, 0), n)
	stop = min(max(stop, start), n)
	return start, stop
}

func (t *Table) matchKeys(keys []models.Value) [][]models.Value {
	rows := make([][]models.Value, 0)
	for _, row := range t.rows {
		if len(row) == 0 {
			continue
		}
		for _, k := range keys {
			if row[0].Equal(k) {
				rows = append(rows, row)
				break
			}
		}
	}
	return rows
}
