// Package chunk partitions a row count into fixed-size ranges and derives
// the file name of each chunk.
package chunk

import (
	"path/filepath"
	"strconv"

	"github.com/ajitpratap0/tabula/pkg/compression"
)

// Range is a half-open row interval [Start, End)
type Range struct {
	Start int
	End   int
}

// Len returns the number of rows in r
func (r Range) Len() int {
	return r.End - r.Start
}

// Plan splits n rows into consecutive ranges of at most maxRows rows. With
// maxRows <= 0 the result is the single range [0, n), even when n is zero;
// otherwise zero rows produce no ranges.
func Plan(n, maxRows int) []Range {
	if maxRows <= 0 {
		return []Range{{Start: 0, End: n}}
	}
	ranges := make([]Range, 0, (n+maxRows-1)/maxRows)
	for start := 0; start < n; start += maxRows {
		ranges = append(ranges, Range{Start: start, End: min(start+maxRows, n)})
	}
	return ranges
}

// Path names the n-th chunk (1-indexed) of path: the file stem, "_part<n>",
// then the format extension ext in place of whatever extension path had. A
// trailing compression extension stays last, so "dir/a.b.txt.gz" with ext
// ".csv" becomes "dir/a.b_part1.csv.gz".
func Path(path, ext string, n int) string {
	base, _ := compression.SplitPath(path)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return stem + "_part" + strconv.Itoa(n) + ext + path[len(base):]
}
