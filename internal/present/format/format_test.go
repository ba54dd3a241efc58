package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/foliate/pkg/api"
)

func sampleCatalog() []api.CatalogEntry {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []api.CatalogEntry{
		{ID: "id-1", Name: "notes", CreatedAt: created, LastAccessed: created},
		{ID: "id-2", Name: "has\ttab", CreatedAt: created.Add(time.Minute), LastAccessed: created.Add(time.Hour)},
	}
}

func TestWritePlainCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainCatalog(&buf, sampleCatalog(), true))
	out := buf.String()
	assert.Contains(t, out, "id\tname")
	assert.Contains(t, out, "id-1")
	assert.Contains(t, out, `has\ttab`, "tabs in names are escaped")
}

func TestWriteJSONCatalogRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONCatalog(&buf, sampleCatalog(), false))
	var got []api.CatalogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleCatalog(), got)
}

func TestWriteNDJSONCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSONCatalog(&buf, sampleCatalog()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var e api.CatalogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
	}
}

func TestWritePlainDocument(t *testing.T) {
	var buf bytes.Buffer
	d := api.Document{
		ID:           "id-1",
		Name:         "notes",
		Content:      "# hi",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		LastModified: time.Date(2026, 1, 2, 4, 4, 5, 0, time.UTC),
	}
	require.NoError(t, WritePlainDocument(&buf, d))
	out := buf.String()
	assert.Contains(t, out, "id-1")
	assert.Contains(t, out, "# hi")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
