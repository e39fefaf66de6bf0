// Package schema provides column type detection and cell conversion for
// tabula tables.
//
// Detection is sequential: a column is classified by the first value that
// matches any rule, so a single leading value decides the type of the whole
// column: ["3", "3.5"] is an integer column.
package schema

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ajitpratap0/tabula/pkg/models"
)

// Classify returns the column type a single value indicates, or false when
// the value matches no rule.
//
// String values are checked in precedence order: all decimal digits, then a
// float literal, then an ISO-8601 timestamp. Values that already hold a
// typed payload classify by their kind.
func Classify(v models.Value) (models.ColumnType, bool) {
	switch v.Kind() {
	case models.KindInteger:
		return models.TypeInteger, true
	case models.KindFloat:
		return models.TypeFloat, true
	case models.KindTimestamp:
		return models.TypeTimestamp, true
	}

	s, _ := v.Str()
	if isDigits(s) {
		return models.TypeInteger, true
	}
	if isFloat(s) {
		return models.TypeFloat, true
	}
	if isTimestamp(s) {
		return models.TypeTimestamp, true
	}
	return "", false
}

// Detect classifies a column from its values in row order. The first value
// that matches a rule decides the column; a column where nothing matches is
// a string column.
func Detect(values []models.Value) models.ColumnType {
	for _, v := range values {
		if t, ok := Classify(v); ok {
			return t
		}
	}
	return models.TypeString
}

// isDigits reports whether s is non-empty and made only of ASCII digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isFloat(s string) bool {
	_, err := parseFloat(s)
	return err == nil
}

func isTimestamp(s string) bool {
	_, err := models.ParseTimestamp(s)
	return err == nil
}

// parseFloat parses a decimal float literal ignoring surrounding whitespace.
// Hexadecimal literals such as "0x1p-2" are rejected. Out of range literals
// are not an error; they round to ±Inf or zero.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	unsigned := s
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		unsigned = s[1:]
	}
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, nil
		}
		return 0, err
	}
	return f, nil
}
