package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 14, s.FontSize)
	assert.Equal(t, 1.6, s.LineHeight)
	assert.Equal(t, FontSystem, s.FontFamily)
	assert.Equal(t, ThemeLight, s.Theme)
	assert.True(t, s.LastModified.IsZero())
}

func TestSettingsClamped(t *testing.T) {
	t.Run("in-range values pass through", func(t *testing.T) {
		in := Settings{FontSize: 18, LineHeight: 1.4, FontFamily: FontMono, Theme: ThemeDark}
		assert.Equal(t, in, in.Clamped())
	})

	t.Run("out-of-range values clamp to nearest bound", func(t *testing.T) {
		got := Settings{FontSize: 99, LineHeight: 0.5, FontFamily: FontSerif, Theme: ThemeLight}.Clamped()
		assert.Equal(t, MaxFontSize, got.FontSize)
		assert.Equal(t, MinLineHeight, got.LineHeight)

		got = Settings{FontSize: 1, LineHeight: 9.9, FontFamily: FontSerif, Theme: ThemeLight}.Clamped()
		assert.Equal(t, MinFontSize, got.FontSize)
		assert.Equal(t, MaxLineHeight, got.LineHeight)
	})

	t.Run("unknown enums reset to defaults", func(t *testing.T) {
		got := Settings{FontSize: 14, LineHeight: 1.6, FontFamily: "comic-sans", Theme: "sepia"}.Clamped()
		assert.Equal(t, FontSystem, got.FontFamily)
		assert.Equal(t, ThemeLight, got.Theme)
	})
}

func TestNewID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.NotEmpty(t, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestContentSum(t *testing.T) {
	a := ContentSum("# hello")
	b := ContentSum("# hello")
	c := ContentSum("# hello!")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, ContentSum(""))
}
