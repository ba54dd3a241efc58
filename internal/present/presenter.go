package present

import (
	"io"

	"github.com/mithrel/foliate/internal/present/format"
	"github.com/mithrel/foliate/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModeJSON
	ModeNDJSON
)

// ParseMode parses a string like "plain", "json", "ndjson".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain", "":
		return ModePlain, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	default:
		return ModePlain, false
	}
}

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
}

// RenderCatalog renders the document catalog according to options.
func RenderCatalog(w io.Writer, entries []api.CatalogEntry, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONCatalog(w, entries, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONCatalog(w, entries)
	default:
		return format.WritePlainCatalog(w, entries, opts.Headers)
	}
}

// RenderDocument renders a single full document according to options.
func RenderDocument(w io.Writer, d api.Document, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONDocument(w, d, opts.JSONIndent)
	default:
		return format.WritePlainDocument(w, d)
	}
}
