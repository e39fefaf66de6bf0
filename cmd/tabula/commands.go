package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/formats"
	"github.com/ajitpratap0/tabula/pkg/formats/plain"
	jsonpool "github.com/ajitpratap0/tabula/pkg/json"
	"github.com/ajitpratap0/tabula/pkg/models"
	"github.com/ajitpratap0/tabula/pkg/schema"
	"github.com/ajitpratap0/tabula/pkg/table"
)

// outputFlags are shared by every command that saves a table
type outputFlags struct {
	to      string
	maxRows int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.to, "to", "", "Output format (text, binary, plain); inferred from the output extension when empty")
	cmd.Flags().IntVar(&o.maxRows, "max-rows", 0, "Split output into chunk files of at most this many rows (0 writes one file)")
}

func (a *app) save(cmd *cobra.Command, t *table.Table, path string, o outputFlags) error {
	format := formats.FromPath(path)
	if o.to != "" {
		f, err := formats.Parse(o.to)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeValidation, "invalid --to")
		}
		format = f
	}

	maxRows := a.cfg.Chunking.MaxRows
	if cmd.Flags().Changed("max-rows") {
		maxRows = o.maxRows
	}
	if maxRows < 0 {
		return errors.New(errors.ErrorTypeValidation, "--max-rows must be >= 0")
	}
	return a.adapter.Save(t, path, format, maxRows)
}

func (a *app) convertCommand() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a table between formats",
		Long: `Convert a table between formats.

The input is read as an Avro container when it ends in .avro and as delimited
text otherwise, including .txt inputs. The output format follows --to, or the
output extension (.avro binary, .txt/.tsv plain, anything else text).`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.adapter.Load(args[0])
			if err != nil {
				return err
			}
			return a.save(cmd, t, args[1], out)
		},
	}
	out.register(cmd)
	return cmd
}

func (a *app) typesCommand() *cobra.Command {
	var byName bool
	cmd := &cobra.Command{
		Use:   "types <input>",
		Short: "Detect column types and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.adapter.Load(args[0])
			if err != nil {
				return err
			}
			types := t.DetectColumnTypes()
			if byName {
				return jsonpool.WriteIndented(cmd.OutOrStdout(), types.ByName())
			}
			return jsonpool.WriteIndented(cmd.OutOrStdout(), types)
		},
	}
	cmd.Flags().BoolVar(&byName, "by-name", false, "Key the result by header name instead of listing columns")
	return cmd
}

func (a *app) coerceCommand() *cobra.Command {
	var (
		out    outputFlags
		sets   []string
		byName bool
	)
	cmd := &cobra.Command{
		Use:   "coerce <input> <output>",
		Short: "Convert column types in place and save the result",
		Example: `  tabula coerce scores.csv scores.avro --set score=float --set 0=integer
  tabula coerce in.csv out.csv --by-name --set 2024=timestamp`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coercions, err := parseCoercions(sets, byName)
			if err != nil {
				return err
			}
			t, err := a.adapter.Load(args[0])
			if err != nil {
				return err
			}
			if err := t.CoerceColumnTypes(coercions...); err != nil {
				return err
			}
			a.log.Info("columns coerced", zap.Int("columns", len(coercions)), zap.Int("rows", t.Len()))
			return a.save(cmd, t, args[1], out)
		},
	}
	out.register(cmd)
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Coercion as column=type; repeatable and applied in order")
	cmd.Flags().BoolVar(&byName, "by-name", false, "Treat every column as a header name, even when it looks like an index")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

// parseCoercions turns col=type pairs into coercions. A column that parses
// as a non-negative integer is an index unless byName is set.
func parseCoercions(sets []string, byName bool) ([]table.Coercion, error) {
	coercions := make([]table.Coercion, 0, len(sets))
	for _, s := range sets {
		i := strings.LastIndexByte(s, '=')
		if i <= 0 || i == len(s)-1 {
			return nil, errors.Newf(errors.ErrorTypeValidation, "invalid --set %q, want column=type", s)
		}
		typ, err := models.ParseColumnType(s[i+1:])
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "invalid --set type").WithDetail("set", s)
		}
		coercions = append(coercions, table.Coerce(parseColumn(s[:i], byName), typ))
	}
	return coercions, nil
}

func parseColumn(s string, byName bool) table.Column {
	if !byName {
		if i, err := strconv.Atoi(s); err == nil && i >= 0 {
			return table.Index(i)
		}
	}
	return table.Name(s)
}

func (a *app) rowsCommand() *cobra.Command {
	var (
		start, stop int
		keys        []string
	)
	cmd := &cobra.Command{
		Use:   "rows <input>",
		Short: "Print a range of rows, or the rows whose first cell matches a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.adapter.Load(args[0])
			if err != nil {
				return err
			}

			var view *table.View
			switch {
			case len(keys) > 0:
				if cmd.Flags().Changed("start") || cmd.Flags().Changed("stop") {
					return errors.New(errors.ErrorTypeValidation, "--key cannot be combined with --start/--stop")
				}
				view = t.ViewKeys(keyValues(keys)...)
			case cmd.Flags().Changed("stop"):
				view = t.ViewRange(start, stop)
			default:
				view = t.ViewRange(start, t.Len())
			}
			return plain.Encode(cmd.OutOrStdout(), view.Table)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First row to print (0-based)")
	cmd.Flags().IntVar(&stop, "stop", 0, "Row to stop before; defaults to the end of the table")
	cmd.Flags().StringArrayVar(&keys, "key", nil, "Print rows whose first cell equals this key; repeatable")
	return cmd
}

// keyValues expands each key into the string cell plus every typed cell it
// converts to, so keys match loaded text and typed binary tables alike
func keyValues(keys []string) []models.Value {
	out := make([]models.Value, 0, len(keys))
	for _, k := range keys {
		raw := models.String(k)
		out = append(out, raw)
		for _, typ := range []models.ColumnType{models.TypeInteger, models.TypeFloat, models.TypeTimestamp} {
			if v, err := schema.Convert(raw, typ); err == nil {
				out = append(out, v)
			}
		}
	}
	return out
}

func (a *app) printCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print <input>",
		Short: "Print a whole table as tab-separated text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.adapter.Load(args[0])
			if err != nil {
				return err
			}
			return plain.Encode(cmd.OutOrStdout(), t)
		},
	}
}
