package tableio

import (
	"io"

	"github.com/ajitpratap0/tabula/pkg/compression"
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/formats"
	"github.com/ajitpratap0/tabula/pkg/formats/delimited"
	"github.com/ajitpratap0/tabula/pkg/table"
)

// LoadText reads a delimited text file. The first record becomes the
// header and every other record a row of string cells. A path ending in a
// compression extension is decompressed first.
func (a *Adapter) LoadText(path string) (*table.Table, error) {
	comma, err := a.cfg.CommaRune()
	if err != nil {
		return nil, err
	}
	_, algorithm := compression.SplitPath(path)

	return a.load(opLoadText, formats.Text, path, func(r io.Reader) (*table.Table, error) {
		zr, err := compression.NewReader(r, algorithm)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFormat, "invalid compressed stream").
				WithDetail("compression", string(algorithm))
		}
		defer zr.Close()

		return delimited.Decode(zr, delimited.Options{Comma: comma})
	})
}

// SaveText writes t as delimited text, whole or in chunks of maxRows rows.
// A compression extension on path selects the stream compression; without
// one, the configured text compression applies and its extension is
// appended to path.
func (a *Adapter) SaveText(t *table.Table, path string, maxRows int) error {
	path, cc, err := a.textTarget(path)
	if err != nil {
		return a.fail(opSaveText, err, a.logger)
	}
	comma, _ := a.cfg.CommaRune()
	opts := delimited.Options{Comma: comma}

	return a.save(opSaveText, formats.Text, t, path, maxRows, func(w io.Writer, t *table.Table) error {
		zw, err := compression.NewWriter(w, cc)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeWrite, "failed to create compressed stream").
				WithDetail("compression", string(cc.Algorithm))
		}
		if err := delimited.Encode(zw, t, opts); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeWrite, "failed to finish compressed stream")
		}
		return nil
	})
}

func (a *Adapter) textTarget(path string) (string, compression.Config, error) {
	if _, err := a.cfg.CommaRune(); err != nil {
		return "", compression.Config{}, errors.Wrap(err, errors.ErrorTypeWrite, "invalid text settings")
	}
	cc, err := a.cfg.CompressionConfig()
	if err != nil {
		return "", compression.Config{}, errors.Wrap(err, errors.ErrorTypeWrite, "invalid text settings")
	}

	if _, algorithm := compression.SplitPath(path); algorithm != compression.None {
		cc.Algorithm = algorithm
		return path, cc, nil
	}
	return path + compression.Extension(cc.Algorithm), cc, nil
}
