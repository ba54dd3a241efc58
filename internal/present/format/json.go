package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/foliate/pkg/api"
)

func WriteJSONCatalog(w io.Writer, entries []api.CatalogEntry, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(entries)
}

func WriteJSONDocument(w io.Writer, d api.Document, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(d)
}
