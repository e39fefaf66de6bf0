// Package formats describes the serializations tabula reads and writes
package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ajitpratap0/tabula/pkg/compression"
)

// Format identifies a table serialization
type Format string

const (
	// Text is comma-delimited, quote-aware text with a header record
	Text Format = "text"
	// Binary is an Avro object container holding one {headers, rows} datum
	Binary Format = "binary"
	// Plain is a write-only tab-separated dump
	Plain Format = "plain"
)

// Info provides information about a format
type Info struct {
	Format        Format
	Name          string
	Description   string
	FileExtension string
	MIMEType      string
	Readable      bool
	Chunkable     bool
}

// GetInfo returns information about a format, or nil for an unknown one
func GetInfo(format Format) *Info {
	switch format {
	case Text:
		return &Info{
			Format:        Text,
			Name:          "Delimited text",
			Description:   "Comma-delimited, quote-aware text with a header record",
			FileExtension: ".csv",
			MIMEType:      "text/csv",
			Readable:      true,
			Chunkable:     true,
		}
	case Binary:
		return &Info{
			Format:        Binary,
			Name:          "Apache Avro object container",
			Description:   "Binary {headers, rows} object preserving cell types",
			FileExtension: ".avro",
			MIMEType:      "application/avro",
			Readable:      true,
			Chunkable:     true,
		}
	case Plain:
		return &Info{
			Format:        Plain,
			Name:          "Plain text",
			Description:   "Tab-separated dump of stringified cells",
			FileExtension: ".txt",
			MIMEType:      "text/plain",
			Readable:      false,
			Chunkable:     false,
		}
	default:
		return nil
	}
}

// Parse parses a format name
func Parse(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, Binary, Plain:
		return f, nil
	case "csv":
		return Text, nil
	case "avro":
		return Binary, nil
	case "txt", "tsv":
		return Plain, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// FromPath infers a format from a file extension. Compression extensions
// are looked through; anything unrecognised is Text.
func FromPath(path string) Format {
	base, _ := compression.SplitPath(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".avro":
		return Binary
	case ".txt", ".tsv":
		return Plain
	default:
		return Text
	}
}
