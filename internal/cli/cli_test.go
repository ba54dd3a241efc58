package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mithrel/foliate/pkg/api"
)

// runCLI executes the root command with args against the env-configured
// data dir and returns stdout.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func setupCLI(t *testing.T) {
	t.Helper()
	t.Setenv("FOLIATE_DATA_DIR", t.TempDir())
	// Keep any real config file on the machine out of the test.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func TestDocLifecycle(t *testing.T) {
	setupCLI(t)

	out := runCLI(t, "doc", "new", "notes")
	fields := strings.Fields(out)
	require.NotEmpty(t, fields)
	id := fields[0]

	var entries []api.CatalogEntry
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "doc", "list", "-o", "json")), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "notes", entries[0].Name)
	require.Equal(t, id, entries[0].ID)

	runCLI(t, "doc", "rename", id, "journal")

	var doc api.Document
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "doc", "show", "journal", "-o", "json")), &doc))
	require.Equal(t, id, doc.ID)
	require.Equal(t, "journal", doc.Name)

	runCLI(t, "doc", "delete", id, "--yes")

	entries = nil
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "doc", "list", "-o", "json")), &entries))
	require.Empty(t, entries)
}

func TestDocNewDefaultName(t *testing.T) {
	setupCLI(t)

	runCLI(t, "doc", "new")
	runCLI(t, "doc", "new")

	var entries []api.CatalogEntry
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "doc", "list", "-o", "json")), &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "Untitled 1", entries[0].Name)
	require.Equal(t, "Untitled 2", entries[1].Name)
}

func TestDocShowRaw(t *testing.T) {
	setupCLI(t)

	out := runCLI(t, "doc", "new", "scratch")
	id := strings.Fields(out)[0]

	// A fresh document has empty content.
	require.Equal(t, "", runCLI(t, "doc", "show", id, "--raw"))
}

func TestDocShowUnknownFails(t *testing.T) {
	setupCLI(t)

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"doc", "show", "no-such-doc"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestDocDeleteNonInteractiveNeedsYes(t *testing.T) {
	setupCLI(t)

	out := runCLI(t, "doc", "new", "keepme")
	id := strings.Fields(out)[0]

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"doc", "delete", id})
	require.Error(t, cmd.ExecuteContext(context.Background()))

	// Still there.
	var entries []api.CatalogEntry
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "doc", "list", "-o", "json")), &entries))
	require.Len(t, entries, 1)
}

func TestConfigShowListsEveryOption(t *testing.T) {
	setupCLI(t)

	out := runCLI(t, "config", "show")
	for _, key := range []string{"data_dir", "autosave.debounce_ms", "editor.default_font_size", "log.level"} {
		require.Contains(t, out, key)
	}
}

func TestEphemeralLeavesNothingBehind(t *testing.T) {
	setupCLI(t)

	runCLI(t, "--ephemeral", "doc", "new", "ghost")

	var entries []api.CatalogEntry
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "doc", "list", "-o", "json")), &entries))
	require.Empty(t, entries)
}
