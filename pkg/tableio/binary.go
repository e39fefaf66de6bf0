package tableio

import (
	"io"

	"github.com/ajitpratap0/tabula/pkg/formats"
	"github.com/ajitpratap0/tabula/pkg/formats/avro"
	"github.com/ajitpratap0/tabula/pkg/table"
)

// LoadBinary reads an Avro container file holding one table datum. Cell
// kinds are restored exactly.
func (a *Adapter) LoadBinary(path string) (*table.Table, error) {
	return a.load(opLoadBinary, formats.Binary, path, avro.Decode)
}

// SaveBinary writes t as Avro container files, whole or in chunks of
// maxRows rows, using the configured block codec.
func (a *Adapter) SaveBinary(t *table.Table, path string, maxRows int) error {
	codec := a.cfg.Codec()
	return a.save(opSaveBinary, formats.Binary, t, path, maxRows, func(w io.Writer, t *table.Table) error {
		return avro.Encode(w, t, codec)
	})
}
