// Package delimited encodes and decodes tables as comma-delimited,
// quote-aware text. The first record is the header; every later record is a
// row of string cells. Encoding stringifies cells with models.Value.String
// and terminates lines with "\n".
package delimited

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/models"
	"github.com/ajitpratap0/tabula/pkg/table"
)

// DefaultComma is the field delimiter used when none is configured
const DefaultComma = ','

var bom = []byte{0xEF, 0xBB, 0xBF}

// Options controls the delimiter of both directions
type Options struct {
	Comma rune
}

func (o Options) comma() rune {
	if o.Comma == 0 {
		return DefaultComma
	}
	return o.Comma
}

// Encode writes the header record followed by one record per row
func Encode(w io.Writer, t *table.Table, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.comma()

	if err := writeRecord(cw, w, t.Headers()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to write header")
	}

	record := make([]string, 0, t.Width())
	for i, row := range t.Rows() {
		record = record[:0]
		for _, v := range row {
			record = append(record, v.String())
		}
		if err := writeRecord(cw, w, record); err != nil {
			return errors.Wrap(err, errors.ErrorTypeWrite, "failed to write row").
				WithDetail("row", i)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to flush delimited writer")
	}
	return nil
}

// writeRecord writes record through cw. A record of one empty field is
// written as a quoted empty string, since a blank line reads back as no
// record at all.
func writeRecord(cw *csv.Writer, w io.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"\"\n")
	return err
}

// Decode reads a header record and string rows. An input without a header
// record, or with a record whose field count differs from the header's, is a
// format error. Line breaks inside quoted fields are kept byte for byte,
// "\r\n" included.
func Decode(r io.Reader, opts Options) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFormat, "failed to read delimited input")
	}
	data = keepQuotedCR(bytes.TrimPrefix(data, bom))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = opts.comma()
	cr.FieldsPerRecord = 0

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrorTypeFormat, "missing header record")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFormat, "failed to read header record")
	}

	rows := make([][]models.Value, 0)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			e := errors.Wrap(err, errors.ErrorTypeFormat, "malformed record")
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				e = e.WithDetail("line", pe.Line)
			}
			return nil, e
		}
		rows = append(rows, models.Strings(record))
	}

	return table.New(headers, rows), nil
}

// keepQuotedCR doubles the '\r' of every "\r\n" inside a quoted field.
// encoding/csv folds a line ending "\r\n" to "\n" even within quotes, and
// folds "\r\r\n" to "\r\n". Quote state toggles on every '"'; an escaped
// quote toggles twice, and any other stray quote is a parse error anyway.
func keepQuotedCR(data []byte) []byte {
	if bytes.IndexByte(data, '\r') < 0 {
		return data
	}

	out := make([]byte, 0, len(data)+len(data)/64)
	quoted := false
	for i, b := range data {
		switch {
		case b == '"':
			quoted = !quoted
		case quoted && b == '\r' && i+1 < len(data) && data[i+1] == '\n':
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	return out
}
