// Package plain dumps a table as tab-separated text: the header line, then
// one line per row, every cell stringified. The output is not meant to be
// read back.
package plain

import (
	"bufio"
	"io"

	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/table"
)

// Encode writes t to w
func Encode(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)

	writeLine(bw, t.Headers())
	line := make([]string, 0, t.Width())
	for _, row := range t.Rows() {
		line = line[:0]
		for _, v := range row {
			line = append(line, v.String())
		}
		writeLine(bw, line)
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to write plain text")
	}
	return nil
}

// bufio.Writer keeps the first error and reports it from Flush
func writeLine(bw *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte('\t')
		}
		bw.WriteString(f)
	}
	bw.WriteByte('\n')
}
