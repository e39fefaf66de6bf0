package models

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted by ParseTimestamp. Fractional seconds are accepted after
// the seconds field by time.Parse even though the layouts omit them.
var (
	zonedLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04:05Z07",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04Z0700",
		"2006-01-02T15Z07:00",
		"20060102T150405Z07:00",
		"20060102T150405Z0700",
	}

	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15",
		"2006-01-02",
		"20060102T150405",
		"20060102T1504",
		"20060102",
	}
)

// ParseTimestamp parses an ISO-8601 date or date-time. The date and time
// may be separated by 'T' or a single space. Inputs with an offset (or 'Z')
// produce a zoned timestamp; inputs without one produce a local timestamp.
func ParseTimestamp(s string) (Value, error) {
	if len(s) < 8 {
		return Value{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
	}
	normalized := s
	if len(s) > 10 && s[10] == ' ' {
		normalized = s[:10] + "T" + s[11:]
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return Time(t), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return LocalTime(t), nil
		}
	}
	return Value{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// FormatTime renders t as ISO-8601 with a 'T' separator, fractional seconds
// only when non-zero, and the offset only for zoned timestamps.
func FormatTime(t time.Time, zoned bool) string {
	var b strings.Builder
	b.WriteString(t.Format("2006-01-02T15:04:05"))
	if ns := t.Nanosecond(); ns != 0 {
		frac := fmt.Sprintf("%09d", ns)
		if ns%1000 == 0 {
			frac = frac[:6]
		}
		b.WriteByte('.')
		b.WriteString(frac)
	}
	if zoned {
		b.WriteString(t.Format("-07:00"))
	}
	return b.String()
}
