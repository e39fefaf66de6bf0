// Package tabula loads, reshapes and saves small in-memory tables.
//
// A table is an ordered list of column headers plus rows of cells. Each
// cell holds one of four kinds: string, integer, float or timestamp. Tables
// are read from and written to comma-delimited text, optionally stream
// compressed, or Apache Avro object containers that keep cell kinds intact.
// Saves can split rows across numbered chunk files.
//
// # Packages
//
//   - pkg/models: cell values and column types
//   - pkg/table: the table, row views and copies, column access, type
//     detection and coercion
//   - pkg/schema: per-value type classification and conversion
//   - pkg/formats: the delimited, Avro and plain codecs
//   - pkg/tableio: file adapters with chunking, logging and metrics
//   - cmd/tabula: the command-line tool
//
// # Quick Start
//
//	t, err := tableio.LoadText("scores.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	types := t.DetectColumnTypes()      // [{0 id integer} {1 score integer}]
//	err = t.CoerceColumnTypes(
//	    table.Coerce(table.Name("score"), models.TypeFloat),
//	)
//
//	// scores_part1.csv and scores_part2.csv, two rows each at most
//	err = tableio.SaveText(t, "scores.csv", 2)
//
// # Views and Copies
//
// ViewRange, ViewRow and ViewKeys return views that share row storage with
// their source, so writes through a view are visible in the source. The
// CopyRange, CopyRow and CopyKeys variants return independent tables.
//
// # Type Detection
//
// Detection scans a column in row order and stops at the first value that
// looks like an integer, a float or an ISO-8601 timestamp, in that order of
// precedence. A column where nothing matches is a string column.
package tabula
