package table

import (
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/models"
)

// ColumnValues returns the values of one column in row order
func (t *Table) ColumnValues(col Column) ([]models.Value, error) {
	idx, err := t.resolve(col)
	if err != nil {
		return nil, err
	}
	values := make([]models.Value, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// SingleValue returns the cell at col of a table that has exactly one row
func (t *Table) SingleValue(col Column) (models.Value, error) {
	if err := t.requireSingleRow("SingleValue"); err != nil {
		return models.Value{}, err
	}
	values, err := t.ColumnValues(col)
	if err != nil {
		return models.Value{}, err
	}
	return values[0], nil
}

// SetColumnValues overwrites column col row by row. values must hold one
// value per row.
func (t *Table) SetColumnValues(values []models.Value, col Column) error {
	idx, err := t.resolve(col)
	if err != nil {
		return err
	}
	if len(values) != len(t.rows) {
		return errors.Newf(errors.ErrorTypeShape,
			"length of values (%d) does not match number of rows (%d)", len(values), len(t.rows)).
			WithDetail("values", len(values)).
			WithDetail("rows", len(t.rows))
	}
	for i, row := range t.rows {
		row[idx] = values[i]
	}
	return nil
}

// SetSingleValue overwrites the cell at col of a table that has exactly one
// row
func (t *Table) SetSingleValue(value models.Value, col Column) error {
	if err := t.requireSingleRow("SetSingleValue"); err != nil {
		return err
	}
	return t.SetColumnValues([]models.Value{value}, col)
}

func (t *Table) requireSingleRow(op string) error {
	if len(t.rows) != 1 {
		return errors.Newf(errors.ErrorTypeShape,
			"table must have exactly one row to use %s, has %d", op, len(t.rows)).
			WithDetail("rows", len(t.rows))
	}
	return nil
}
