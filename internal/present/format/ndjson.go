package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/foliate/pkg/api"
)

// WriteNDJSONCatalog writes entries as newline-delimited JSON objects.
func WriteNDJSONCatalog(w io.Writer, entries []api.CatalogEntry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
