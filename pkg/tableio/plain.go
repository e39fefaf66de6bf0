package tableio

import (
	"github.com/ajitpratap0/tabula/pkg/formats"
	"github.com/ajitpratap0/tabula/pkg/formats/plain"
	"github.com/ajitpratap0/tabula/pkg/table"
)

// SavePlain writes t as a tab-separated dump. It is never chunked.
func (a *Adapter) SavePlain(t *table.Table, path string) error {
	return a.save(opSavePlain, formats.Plain, t, path, 0, plain.Encode)
}
