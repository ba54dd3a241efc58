package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mithrel/foliate/pkg/api"
)

// TSV columns: id, name, created_unix_ms, last_accessed_unix_ms
var headerLine = "id\tname\tcreated_unix_ms\tlast_accessed_unix_ms\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func WritePlainCatalog(w io.Writer, entries []api.CatalogEntry, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s\t%s\t%d\t%d\n",
			esc(e.ID), esc(e.Name), unixMs(e.CreatedAt), unixMs(e.LastAccessed))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

func WritePlainDocument(w io.Writer, d api.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "id\t%s\n", esc(d.ID))
	_, _ = fmt.Fprintf(tw, "name\t%s\n", esc(d.Name))
	_, _ = fmt.Fprintf(tw, "created\t%s\n", d.CreatedAt.Local().Format(time.RFC3339))
	_, _ = fmt.Fprintf(tw, "modified\t%s\n", d.LastModified.Local().Format(time.RFC3339))
	if err := tw.Flush(); err != nil {
		return err
	}
	if d.Content != "" {
		if _, err := io.WriteString(w, "\n"+d.Content); err != nil {
			return err
		}
		if !strings.HasSuffix(d.Content, "\n") {
			_, _ = io.WriteString(w, "\n")
		}
	}
	return nil
}

func unixMs(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano() / int64(time.Millisecond)
}
