package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mithrel/foliate/pkg/api"
)

func TestRenderProducesOutput(t *testing.T) {
	r := New(60)
	out := r.Render("# Title\n\nbody text", api.DefaultSettings())
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}

func TestRenderThemes(t *testing.T) {
	r := New(60)
	light := r.Render("plain", api.Settings{Theme: api.ThemeLight})
	dark := r.Render("plain", api.Settings{Theme: api.ThemeDark})
	assert.NotEmpty(t, light)
	assert.NotEmpty(t, dark)
}

func TestRenderEmptyContent(t *testing.T) {
	r := New(0)
	assert.NotPanics(t, func() { r.Render("", api.DefaultSettings()) })
}
