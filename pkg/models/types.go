package models

import (
	"fmt"
	"strings"
)

// ColumnType is the classification the type engine assigns to a column
type ColumnType string

const (
	// TypeInteger marks a column of whole numbers
	TypeInteger ColumnType = "integer"
	// TypeFloat marks a column of floating point numbers
	TypeFloat ColumnType = "float"
	// TypeTimestamp marks a column of ISO-8601 timestamps
	TypeTimestamp ColumnType = "timestamp"
	// TypeString marks a column nothing else matched
	TypeString ColumnType = "string"
)

// String returns the type name
func (t ColumnType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known column types
func (t ColumnType) Valid() bool {
	switch t {
	case TypeInteger, TypeFloat, TypeTimestamp, TypeString:
		return true
	default:
		return false
	}
}

// Kind returns the cell kind values of this column type convert to
func (t ColumnType) Kind() Kind {
	switch t {
	case TypeInteger:
		return KindInteger
	case TypeFloat:
		return KindFloat
	case TypeTimestamp:
		return KindTimestamp
	default:
		return KindString
	}
}

// ParseColumnType parses a column type name. Common aliases (int, double,
// datetime, str, ...) are accepted.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer", "int", "long":
		return TypeInteger, nil
	case "float", "double", "real":
		return TypeFloat, nil
	case "timestamp", "datetime", "time":
		return TypeTimestamp, nil
	case "string", "str", "text":
		return TypeString, nil
	default:
		return "", fmt.Errorf("unknown column type %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ColumnType) UnmarshalText(b []byte) error {
	parsed, err := ParseColumnType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
