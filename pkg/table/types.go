package table

import (
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/models"
	"github.com/ajitpratap0/tabula/pkg/schema"
)

// ColumnTypeInfo is the detected type of one column
type ColumnTypeInfo struct {
	Index  int               `json:"index"`
	Header string            `json:"header"`
	Type   models.ColumnType `json:"type"`
}

// ColumnTypes holds detected types in column order
type ColumnTypes []ColumnTypeInfo

// ByIndex keys the detected types by column index
func (ct ColumnTypes) ByIndex() map[int]models.ColumnType {
	out := make(map[int]models.ColumnType, len(ct))
	for _, c := range ct {
		out[c.Index] = c.Type
	}
	return out
}

// ByName keys the detected types by header name. When headers repeat, the
// last column with that name wins.
func (ct ColumnTypes) ByName() map[string]models.ColumnType {
	out := make(map[string]models.ColumnType, len(ct))
	for _, c := range ct {
		out[c.Header] = c.Type
	}
	return out
}

// DetectColumnTypes classifies every column with schema.Detect
func (t *Table) DetectColumnTypes() ColumnTypes {
	out := make(ColumnTypes, len(t.headers))
	values := make([]models.Value, len(t.rows))
	for i, header := range t.headers {
		for r, row := range t.rows {
			values[r] = row[i]
		}
		out[i] = ColumnTypeInfo{Index: i, Header: header, Type: schema.Detect(values)}
	}
	return out
}

// Coercion asks for one column to be converted to a type
type Coercion struct {
	Column Column
	Type   models.ColumnType
}

// Coerce builds a Coercion
func Coerce(col Column, typ models.ColumnType) Coercion {
	return Coercion{Column: col, Type: typ}
}

// CoerceColumnTypes converts the cells of each listed column in place, in
// the order given. It stops at the first cell that cannot be converted and
// returns a conversion error; cells converted before it stay converted.
func (t *Table) CoerceColumnTypes(coercions ...Coercion) error {
	for _, c := range coercions {
		idx, err := t.resolve(c.Column)
		if err != nil {
			return err
		}
		for r, row := range t.rows {
			converted, err := schema.Convert(row[idx], c.Type)
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeConversion,
					"cannot convert value "+quote(row[idx])+" in column "+c.Column.String()+" to "+string(c.Type)).
					WithDetail("column", c.Column.String()).
					WithDetail("value", row[idx].String()).
					WithDetail("target", string(c.Type)).
					WithDetail("row", r)
			}
			row[idx] = converted
		}
	}
	return nil
}

func quote(v models.Value) string {
	if v.Kind() == models.KindString {
		return `"` + v.String() + `"`
	}
	return v.String()
}
