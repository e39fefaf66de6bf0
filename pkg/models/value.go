// Package models provides the cell and column type definitions shared by
// tabula's table, type engine and format adapters.
//
// A cell holds a Value, a small tagged union over the four kinds a table
// cell can take: string, integer, float and timestamp. Values are immutable
// and cheap to copy, so copying a row slice is enough to make a row
// independent of its source.
package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	// KindString is a text cell; the zero Value is the empty string
	KindString Kind = iota
	// KindInteger is a signed 64-bit integer cell
	KindInteger
	// KindFloat is a 64-bit floating point cell
	KindFloat
	// KindTimestamp is a point in time
	KindTimestamp
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Value is a single table cell
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	t    time.Time
	// zoned records whether a timestamp carried an explicit UTC offset
	zoned bool
}

// String creates a string cell
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Int creates an integer cell
func Int(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

// Float creates a float cell
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Time creates a timestamp cell with an explicit offset
func Time(t time.Time) Value {
	return Value{kind: KindTimestamp, t: t, zoned: true}
}

// LocalTime creates a timestamp cell without an offset. The wall clock of t
// is kept and its location is normalized to UTC.
func LocalTime(t time.Time) Value {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return Value{kind: KindTimestamp, t: wall}
}

// Strings converts a slice of raw strings into string cells
func Strings(ss []string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = String(s)
	}
	return out
}

// Kind returns the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the text of a string cell and whether v is one
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

// Int64 returns the integer of an integer cell and whether v is one
func (v Value) Int64() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// Float64 returns the float of a float cell and whether v is one
func (v Value) Float64() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Time returns the instant of a timestamp cell and whether v is one
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindTimestamp
}

// Zoned reports whether a timestamp cell carries an explicit offset
func (v Value) Zoned() bool {
	return v.kind == KindTimestamp && v.zoned
}

// Equal reports whether two cells hold the same kind and payload.
// Timestamps compare by instant, offset and zoned flag.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindTimestamp:
		if v.zoned != o.zoned || !v.t.Equal(o.t) {
			return false
		}
		_, vo := v.t.Zone()
		_, oo := o.t.Zone()
		return vo == oo
	default:
		return false
	}
}

// String renders the cell as text. Floats always carry a decimal point or
// an exponent so they stay distinguishable from integers.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return FormatFloat(v.f)
	case KindTimestamp:
		return FormatTime(v.t, v.zoned)
	default:
		return v.s
	}
}

// Interface returns the payload as a plain Go value (string, int64, float64
// or time.Time)
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindTimestamp:
		return v.t
	default:
		return v.s
	}
}

// MarshalText implements encoding.TextMarshaler
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// FormatFloat renders f with the shortest representation that round-trips
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
