// Package tableio loads and saves tables as files.
//
// Text files use the delimited codec, optionally wrapped in a compression
// stream chosen by the file extension. Binary files are Avro object
// containers. Plain files are a write-only tab-separated dump.
//
// Saves with maxRows > 0 split the rows into ceil(rows/maxRows) chunk files,
// each repeating the header, named "<stem>_part<N>" plus the format's own
// extension (.csv or .avro) and any compression extension. Chunked saves are sequential and not atomic: chunks written
// before a failure stay on disk.
//
// Errors are *errors.Error values: not_found when an input is missing, file
// for other open failures, format for undecodable input and write for any
// save failure.
package tableio

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/internal/chunk"
	"github.com/ajitpratap0/tabula/pkg/config"
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/formats"
	"github.com/ajitpratap0/tabula/pkg/logger"
	"github.com/ajitpratap0/tabula/pkg/metrics"
	"github.com/ajitpratap0/tabula/pkg/table"
)

const (
	opLoadText   = "load_text"
	opSaveText   = "save_text"
	opLoadBinary = "load_binary"
	opSaveBinary = "save_binary"
	opSavePlain  = "save_plain"
)

// Adapter reads and writes table files with one configuration, logger and
// metrics collector. It holds no per-call state and is safe for concurrent
// use on distinct paths.
type Adapter struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates an adapter. A nil cfg uses config.Default, a nil log uses the
// global logger and a nil collector gets a fresh private one.
func New(cfg *config.Config, log *zap.Logger, collector *metrics.Collector) *Adapter {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Get()
	}
	if collector == nil {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
	}
	return &Adapter{
		cfg:     cfg,
		logger:  log.With(zap.String("component", "tableio")),
		metrics: collector,
	}
}

// Metrics returns the adapter's collector
func (a *Adapter) Metrics() *metrics.Collector {
	return a.metrics
}

// Load reads path as binary when its extension is .avro and as delimited
// text otherwise. Plain dumps are write-only, so a .txt input is read as text.
func (a *Adapter) Load(path string) (*table.Table, error) {
	if formats.FromPath(path) == formats.Binary {
		return a.LoadBinary(path)
	}
	return a.LoadText(path)
}

// Save writes t to path in format. maxRows applies to chunkable formats.
func (a *Adapter) Save(t *table.Table, path string, format formats.Format, maxRows int) error {
	switch format {
	case formats.Text:
		return a.SaveText(t, path, maxRows)
	case formats.Binary:
		return a.SaveBinary(t, path, maxRows)
	case formats.Plain:
		return a.SavePlain(t, path)
	default:
		return errors.Newf(errors.ErrorTypeValidation, "unsupported format: %s", format)
	}
}

// encodeFunc writes one table, or one chunk of it, to w
type encodeFunc func(w io.Writer, t *table.Table) error

// save writes t whole, or in chunks when maxRows > 0, and records metrics
func (a *Adapter) save(op string, format formats.Format, t *table.Table, path string, maxRows int, encode encodeFunc) error {
	timer := metrics.NewTimer(op)
	log := a.logger.With(zap.String("operation", op), zap.String("path", path))

	ranges := chunk.Plan(t.Len(), maxRows)
	for i, r := range ranges {
		target, part := path, t
		if maxRows > 0 {
			target = chunk.Path(path, formats.GetInfo(format).FileExtension, i+1)
			part = t.ViewRange(r.Start, r.End).Table
		}

		if err := writeFile(target, part, encode); err != nil {
			return a.fail(op, err, log)
		}
		a.metrics.FileWritten(string(format))
		log.Debug("file written",
			zap.String("file", target),
			zap.Int("chunk", i+1),
			zap.Int("rows", r.Len()))
	}

	a.metrics.RowsWritten(string(format), t.Len())
	duration := timer.Stop()
	a.metrics.ObserveDuration(op, duration)
	log.Info("table saved",
		zap.String("format", string(format)),
		zap.Int("rows", t.Len()),
		zap.Int("files", len(ranges)),
		zap.Duration("duration", duration))
	return nil
}

// load opens path and decodes it, recording metrics
func (a *Adapter) load(op string, format formats.Format, path string, decode func(r io.Reader) (*table.Table, error)) (*table.Table, error) {
	timer := metrics.NewTimer(op)
	log := a.logger.With(zap.String("operation", op), zap.String("path", path))

	f, err := openFile(path)
	if err != nil {
		return nil, a.fail(op, err, log)
	}
	defer f.Close()

	t, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, a.fail(op, annotate(err, path), log)
	}

	a.metrics.RowsRead(string(format), t.Len())
	duration := timer.Stop()
	a.metrics.ObserveDuration(op, duration)
	log.Info("table loaded",
		zap.String("format", string(format)),
		zap.Int("rows", t.Len()),
		zap.Int("columns", t.Width()),
		zap.Duration("duration", duration))
	return t, nil
}

func (a *Adapter) fail(op string, err error, log *zap.Logger) error {
	errType := errors.ErrorTypeInternal
	var e *errors.Error
	if errors.As(err, &e) {
		errType = e.Type
	}
	a.metrics.Error(op, string(errType))
	log.Error("operation failed", zap.String("error_type", string(errType)), zap.Error(err))
	return err
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the caller
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, errors.ErrorTypeNotFound, "file not found").
			WithDetail("path", path)
	}
	return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open file").
		WithDetail("path", path)
}

// writeFile creates path and encodes t into it. Every failure, including
// the final close, is a write error.
func writeFile(path string, t *table.Table, encode encodeFunc) (err error) {
	f, err := os.Create(path) //nolint:gosec // G304: path is supplied by the caller
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to create file").
			WithDetail("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, errors.ErrorTypeWrite, "failed to close file").
				WithDetail("path", path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := encode(bw, t); err != nil {
		return writeError(err, path)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to flush file").
			WithDetail("path", path)
	}
	return nil
}

// writeError makes sure a save failure reports as a write error
func writeError(err error, path string) error {
	if errors.IsType(err, errors.ErrorTypeWrite) {
		return annotate(err, path)
	}
	return errors.Wrap(err, errors.ErrorTypeWrite, "failed to encode table").
		WithDetail("path", path)
}

// annotate attaches path to a typed error, wrapping untyped ones
func annotate(err error, path string) error {
	var e *errors.Error
	if errors.As(err, &e) {
		if e.Detail("path") == nil {
			e.WithDetail("path", path)
		}
		return err
	}
	return errors.Wrap(err, errors.ErrorTypeInternal, "unexpected failure").
		WithDetail("path", path)
}

var (
	defaultOnce    sync.Once
	defaultAdapter *Adapter
)

// Default returns the adapter used by the package-level functions: default
// configuration, the global logger and a private collector.
func Default() *Adapter {
	defaultOnce.Do(func() {
		defaultAdapter = New(nil, nil, nil)
	})
	return defaultAdapter
}

// LoadText reads a delimited text file with the default adapter
func LoadText(path string) (*table.Table, error) {
	return Default().LoadText(path)
}

// SaveText writes a delimited text file with the default adapter
func SaveText(t *table.Table, path string, maxRows int) error {
	return Default().SaveText(t, path, maxRows)
}

// LoadBinary reads an Avro container file with the default adapter
func LoadBinary(path string) (*table.Table, error) {
	return Default().LoadBinary(path)
}

// SaveBinary writes an Avro container file with the default adapter
func SaveBinary(t *table.Table, path string, maxRows int) error {
	return Default().SaveBinary(t, path, maxRows)
}

// SavePlain writes a tab-separated dump with the default adapter
func SavePlain(t *table.Table, path string) error {
	return Default().SavePlain(t, path)
}
