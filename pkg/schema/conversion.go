package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ajitpratap0/tabula/pkg/models"
)

// Convert converts a cell to the given column type.
//
//   - integer: base-10 text (sign allowed, surrounding whitespace ignored),
//     a float truncated toward zero, or an integer
//   - float: float literal text, an integer, or a float
//   - timestamp: ISO-8601 text or a timestamp
//   - string: any cell, rendered with Value.String
//
// Anything else is an error.
func Convert(v models.Value, target models.ColumnType) (models.Value, error) {
	switch target {
	case models.TypeInteger:
		return toInteger(v)
	case models.TypeFloat:
		return toFloat(v)
	case models.TypeTimestamp:
		return toTimestamp(v)
	case models.TypeString:
		if v.Kind() == models.KindString {
			return v, nil
		}
		return models.String(v.String()), nil
	default:
		return models.Value{}, fmt.Errorf("unsupported column type %q", target)
	}
}

func toInteger(v models.Value) (models.Value, error) {
	switch v.Kind() {
	case models.KindInteger:
		return v, nil
	case models.KindFloat:
		f, _ := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
			return models.Value{}, fmt.Errorf("float %s has no integer representation", v)
		}
		return models.Int(int64(f)), nil
	case models.KindString:
		s, _ := v.Str()
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return models.Value{}, err
		}
		return models.Int(i), nil
	default:
		return models.Value{}, fmt.Errorf("cannot convert %s to integer", v.Kind())
	}
}

func toFloat(v models.Value) (models.Value, error) {
	switch v.Kind() {
	case models.KindFloat:
		return v, nil
	case models.KindInteger:
		i, _ := v.Int64()
		return models.Float(float64(i)), nil
	case models.KindString:
		s, _ := v.Str()
		f, err := parseFloat(s)
		if err != nil {
			return models.Value{}, err
		}
		return models.Float(f), nil
	default:
		return models.Value{}, fmt.Errorf("cannot convert %s to float", v.Kind())
	}
}

func toTimestamp(v models.Value) (models.Value, error) {
	switch v.Kind() {
	case models.KindTimestamp:
		return v, nil
	case models.KindString:
		s, _ := v.Str()
		return models.ParseTimestamp(s)
	default:
		return models.Value{}, fmt.Errorf("cannot convert %s to timestamp", v.Kind())
	}
}
