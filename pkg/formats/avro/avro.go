// Package avro stores tables in Apache Avro object container files.
//
// A file holds exactly one datum of the record schema
//
//	{headers: array<string>, rows: array<array<union{string, long, double, Timestamp}>>}
//
// so every cell keeps its kind across a round trip. Timestamp is a named
// record carrying the instant, the UTC offset and whether the offset was
// explicit.
package avro

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/linkedin/goavro/v2"

	"github.com/ajitpratap0/tabula/pkg/errors"
	jsonpool "github.com/ajitpratap0/tabula/pkg/json"
	"github.com/ajitpratap0/tabula/pkg/models"
	"github.com/ajitpratap0/tabula/pkg/table"
)

// Codec names an object container block compression codec
type Codec string

const (
	CodecNull    Codec = goavro.CompressionNullLabel
	CodecDeflate Codec = goavro.CompressionDeflateLabel
	CodecSnappy  Codec = goavro.CompressionSnappyLabel
)

// ParseCodec parses a block codec name; the empty string and "none" are
// CodecNull
func ParseCodec(s string) (Codec, error) {
	switch c := Codec(strings.ToLower(strings.TrimSpace(s))); c {
	case "", "none", CodecNull:
		return CodecNull, nil
	case CodecDeflate, CodecSnappy:
		return c, nil
	default:
		return "", fmt.Errorf("unsupported avro codec: %s", s)
	}
}

const (
	namespace     = "tabula"
	timestampName = namespace + ".Timestamp"
)

var (
	codecOnce sync.Once
	codec     *goavro.Codec
	codecErr  error
)

// Schema returns the JSON schema of the table datum
func Schema() (string, error) {
	timestamp := map[string]interface{}{
		"type": "record",
		"name": "Timestamp",
		"fields": []map[string]interface{}{
			{"name": "unix_seconds", "type": "long"},
			{"name": "nanos", "type": "int"},
			{"name": "offset_seconds", "type": "int"},
			{"name": "zoned", "type": "boolean"},
		},
	}
	cell := []interface{}{"string", "long", "double", timestamp}

	return jsonpool.MarshalString(map[string]interface{}{
		"type":      "record",
		"name":      "Table",
		"namespace": namespace,
		"fields": []map[string]interface{}{
			{"name": "headers", "type": map[string]interface{}{"type": "array", "items": "string"}},
			{"name": "rows", "type": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "array", "items": cell},
			}},
		},
	})
}

func tableCodec() (*goavro.Codec, error) {
	codecOnce.Do(func() {
		var schema string
		schema, codecErr = Schema()
		if codecErr != nil {
			return
		}
		codec, codecErr = goavro.NewCodec(schema)
	})
	return codec, codecErr
}

// Encode writes t to w as a single-datum object container
func Encode(w io.Writer, t *table.Table, compression Codec) error {
	c, err := tableCodec()
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to create Avro codec")
	}
	if compression == "" {
		compression = CodecNull
	}

	ocfWriter, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               w,
		Codec:           c,
		CompressionName: string(compression),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to create Avro writer").
			WithDetail("codec", string(compression))
	}

	if err := ocfWriter.Append([]interface{}{tableToNative(t)}); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to write Avro datum")
	}
	return nil
}

// Decode reads a single-datum object container. Anything that is not a
// container of exactly one table datum, or whose rows do not match the
// header width, is a format error.
func Decode(r io.Reader) (*table.Table, error) {
	ocfReader, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFormat, "not an Avro object container")
	}

	var datums []interface{}
	for ocfReader.Scan() {
		datum, err := ocfReader.Read()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFormat, "failed to read Avro datum")
		}
		datums = append(datums, datum)
	}
	if err := ocfReader.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFormat, "failed to read Avro container")
	}
	if len(datums) != 1 {
		return nil, errors.Newf(errors.ErrorTypeFormat, "expected one table datum, found %d", len(datums))
	}

	t, err := nativeToTable(datums[0])
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFormat, "decoded rows do not match headers")
	}
	return t, nil
}

func tableToNative(t *table.Table) map[string]interface{} {
	headers := make([]interface{}, len(t.Headers()))
	for i, h := range t.Headers() {
		headers[i] = h
	}

	rows := make([]interface{}, len(t.Rows()))
	for i, row := range t.Rows() {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = valueToNative(v)
		}
		rows[i] = cells
	}

	return map[string]interface{}{"headers": headers, "rows": rows}
}

func valueToNative(v models.Value) interface{} {
	switch v.Kind() {
	case models.KindInteger:
		i, _ := v.Int64()
		return goavro.Union("long", i)
	case models.KindFloat:
		f, _ := v.Float64()
		return goavro.Union("double", f)
	case models.KindTimestamp:
		t, _ := v.Time()
		_, offset := t.Zone()
		return goavro.Union(timestampName, map[string]interface{}{
			"unix_seconds":   t.Unix(),
			"nanos":          int32(t.Nanosecond()),
			"offset_seconds": int32(offset),
			"zoned":          v.Zoned(),
		})
	default:
		s, _ := v.Str()
		return goavro.Union("string", s)
	}
}

func nativeToTable(datum interface{}) (*table.Table, error) {
	record, ok := datum.(map[string]interface{})
	if !ok {
		return nil, structureError("datum is not a record")
	}

	rawHeaders, ok := record["headers"].([]interface{})
	if !ok {
		return nil, structureError("headers is not an array")
	}
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		if headers[i], ok = h.(string); !ok {
			return nil, structureError("header is not a string").WithDetail("column", i)
		}
	}

	rawRows, ok := record["rows"].([]interface{})
	if !ok {
		return nil, structureError("rows is not an array")
	}
	rows := make([][]models.Value, len(rawRows))
	for i, r := range rawRows {
		cells, ok := r.([]interface{})
		if !ok {
			return nil, structureError("row is not an array").WithDetail("row", i)
		}
		row := make([]models.Value, len(cells))
		for j, cell := range cells {
			v, err := nativeToValue(cell)
			if err != nil {
				return nil, err.WithDetail("row", i).WithDetail("column", j)
			}
			row[j] = v
		}
		rows[i] = row
	}

	return table.New(headers, rows), nil
}

func nativeToValue(cell interface{}) (models.Value, *errors.Error) {
	union, ok := cell.(map[string]interface{})
	if !ok || len(union) != 1 {
		return models.Value{}, structureError("cell is not a tagged union")
	}

	for name, payload := range union {
		switch name {
		case "string":
			if s, ok := payload.(string); ok {
				return models.String(s), nil
			}
		case "long":
			if i, ok := payload.(int64); ok {
				return models.Int(i), nil
			}
		case "double":
			if f, ok := payload.(float64); ok {
				return models.Float(f), nil
			}
		case timestampName:
			if ts, ok := payload.(map[string]interface{}); ok {
				return nativeToTimestamp(ts)
			}
		}
		return models.Value{}, structureError("unexpected cell branch").WithDetail("branch", name)
	}
	return models.Value{}, structureError("cell is not a tagged union")
}

func nativeToTimestamp(ts map[string]interface{}) (models.Value, *errors.Error) {
	sec, ok1 := ts["unix_seconds"].(int64)
	nanos, ok2 := ts["nanos"].(int32)
	offset, ok3 := ts["offset_seconds"].(int32)
	zoned, ok4 := ts["zoned"].(bool)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return models.Value{}, structureError("malformed timestamp")
	}

	t := time.Unix(sec, int64(nanos))
	if !zoned {
		return models.LocalTime(t.UTC()), nil
	}
	return models.Time(t.In(time.FixedZone("", int(offset)))), nil
}

func structureError(msg string) *errors.Error {
	return errors.New(errors.ErrorTypeFormat, msg)
}
